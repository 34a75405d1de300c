package onvif

import (
	"strings"
)

// Fault is a decoded SOAP fault. Both SOAP 1.2 (Code/Value, Reason/Text)
// and legacy SOAP 1.1 (faultcode, faultstring) layouts are handled, since
// older firmwares still answer with the 1.1 shape.
type Fault struct {
	Code    string
	Subcode string
	Reason  string
}

// ParseFault returns the fault carried by a SOAP response body, or nil if
// the body holds no fault (including bodies that are not XML at all; those
// are reported by the normal response parsers instead).
func ParseFault(body []byte) *Fault {
	m, err := parseXML(body)
	if err != nil {
		return nil
	}
	f := &Fault{
		Code: pathString(m,
			"Envelope.Body.Fault.Code.Value",
			"Envelope.Body.Fault.faultcode"),
		Subcode: pathString(m,
			"Envelope.Body.Fault.Code.Subcode.Value",
			"Envelope.Body.Fault.Code.Subcode.Subcode.Value"),
		Reason: pathString(m,
			"Envelope.Body.Fault.Reason.Text",
			"Envelope.Body.Fault.faultstring"),
	}
	if f.Code == "" && f.Subcode == "" && f.Reason == "" {
		return nil
	}
	return f
}

// IsAuthFailure reports whether the fault signals bad credentials rather
// than an unsupported or malformed request. ONVIF uses the
// ter:NotAuthorized subcode; some vendors only set a descriptive reason.
func (f *Fault) IsAuthFailure() bool {
	for _, s := range []string{f.Code, f.Subcode, f.Reason} {
		l := strings.ToLower(s)
		if strings.Contains(l, "notauthorized") ||
			strings.Contains(l, "not authorized") ||
			strings.Contains(l, "failedauthentication") ||
			strings.Contains(l, "unauthorized") ||
			strings.Contains(l, "invalidsecurity") ||
			strings.Contains(l, "authentication failed") {
			return true
		}
	}
	return false
}

// IsNotSupported reports whether the fault signals that the camera does not
// implement the requested action.
func (f *Fault) IsNotSupported() bool {
	for _, s := range []string{f.Code, f.Subcode, f.Reason} {
		l := strings.ToLower(s)
		if strings.Contains(l, "actionnotsupported") ||
			strings.Contains(l, "not supported") ||
			strings.Contains(l, "optionalactionnotimplemented") {
			return true
		}
	}
	return false
}

// Detail renders the fault for error messages, preferring the human-readable
// reason over the code.
func (f *Fault) Detail() string {
	switch {
	case f.Reason != "" && f.Subcode != "":
		return f.Subcode + ": " + f.Reason
	case f.Reason != "":
		return f.Reason
	case f.Subcode != "":
		return f.Subcode
	default:
		return f.Code
	}
}

// StatusFromError maps any error produced by a Client operation or by
// validation onto the per-camera outcome taxonomy. It never panics and
// always yields a status; unrecognized errors become protocol errors with
// the error text as detail.
func StatusFromError(err error) (OperationStatus, string) {
	if err == nil {
		return StatusSuccess, ""
	}

	devErr := GetDeviceError(err)
	if devErr == nil {
		return StatusProtocolError, err.Error()
	}

	switch devErr.Type {
	case ErrTypeValidation:
		return StatusValidationFailed, devErr.Message
	case ErrTypeAuth:
		return StatusAuthFailure, devErr.Message
	case ErrTypeNetwork, ErrTypeTimeout, ErrTypeConnectionRefused:
		return StatusUnreachable, GetShortErrorMessage(devErr)
	case ErrTypeParse:
		return StatusInvalidResponse, devErr.Message
	case ErrTypeHTTP, ErrTypeFault:
		return StatusProtocolError, devErr.Message
	default:
		return StatusProtocolError, devErr.Message
	}
}
