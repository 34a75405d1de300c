package onvif

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a generic network-level error
	ErrTypeNetwork ErrorType = iota
	// ErrTypeAuth indicates an authentication failure (invalid credentials)
	ErrTypeAuth
	// ErrTypeHTTP indicates an HTTP-level error (non-200 status code)
	ErrTypeHTTP
	// ErrTypeParse indicates a parsing error (malformed XML, invalid response)
	ErrTypeParse
	// ErrTypeValidation indicates a validation error (bad IP, bad prefix)
	ErrTypeValidation
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the camera refused the connection
	ErrTypeConnectionRefused
	// ErrTypeFault indicates the camera returned a SOAP fault
	ErrTypeFault
	// ErrTypeUnknown indicates an unknown or unexpected error
	ErrTypeUnknown
)

// NetworkErrorSubtype provides more specific network error classification
type NetworkErrorSubtype int

const (
	NetworkErrorGeneral NetworkErrorSubtype = iota
	NetworkErrorTimeout
	NetworkErrorConnectionRefused
	NetworkErrorHostUnreachable
	NetworkErrorNetworkUnreachable
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeAuth:
		return "Authentication Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeFault:
		return "SOAP Fault"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// DeviceError represents an error that occurred while talking to a camera
type DeviceError struct {
	Type           ErrorType           // Category of error
	Message        string              // Human-readable error message
	StatusCode     int                 // HTTP status code (if applicable)
	FaultCode      string              // SOAP fault code (if applicable)
	Err            error               // Underlying error (if any)
	NetworkSubtype NetworkErrorSubtype // More specific network error type
	CameraIP       string              // Camera IP address (for context)
}

// Error implements the error interface
func (e *DeviceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes a transport error and returns a more specific
// error type. Targets are literal IPv4 addresses so DNS failures cannot occur;
// anything that is not a timeout or a recognized errno collapses into a
// generic network error.
func ClassifyNetworkError(err error, cameraIP string) *DeviceError {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) {
		return &DeviceError{
			Type:           ErrTypeTimeout,
			Message:        "Request timed out",
			Err:            err,
			NetworkSubtype: NetworkErrorTimeout,
			CameraIP:       cameraIP,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return &DeviceError{
				Type:           ErrTypeConnectionRefused,
				Message:        "Camera refused connection",
				Err:            err,
				NetworkSubtype: NetworkErrorConnectionRefused,
				CameraIP:       cameraIP,
			}
		}
		if errors.Is(opErr.Err, syscall.EHOSTUNREACH) {
			return &DeviceError{
				Type:           ErrTypeNetwork,
				Message:        "Host unreachable",
				Err:            err,
				NetworkSubtype: NetworkErrorHostUnreachable,
				CameraIP:       cameraIP,
			}
		}
		if errors.Is(opErr.Err, syscall.ENETUNREACH) {
			return &DeviceError{
				Type:           ErrTypeNetwork,
				Message:        "Network unreachable",
				Err:            err,
				NetworkSubtype: NetworkErrorNetworkUnreachable,
				CameraIP:       cameraIP,
			}
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		// url.Error wraps the interesting error; classify what's inside,
		// but keep the timeout flag url.Error itself carries.
		if urlErr.Timeout() {
			return &DeviceError{
				Type:           ErrTypeTimeout,
				Message:        "Request timed out",
				Err:            err,
				NetworkSubtype: NetworkErrorTimeout,
				CameraIP:       cameraIP,
			}
		}
		return ClassifyNetworkError(urlErr.Err, cameraIP)
	}

	return &DeviceError{
		Type:           ErrTypeNetwork,
		Message:        "Network error occurred",
		Err:            err,
		NetworkSubtype: NetworkErrorGeneral,
		CameraIP:       cameraIP,
	}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message string, err error, cameraIP string) *DeviceError {
	classified := ClassifyNetworkError(err, cameraIP)
	if classified != nil {
		classified.Message = message
		return classified
	}
	return &DeviceError{
		Type:     ErrTypeNetwork,
		Message:  message,
		Err:      err,
		CameraIP: cameraIP,
	}
}

// NewAuthError creates an authentication error
func NewAuthError(message string) *DeviceError {
	return &DeviceError{
		Type:       ErrTypeAuth,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewHTTPError creates an HTTP-level error
func NewHTTPError(statusCode int, message string) *DeviceError {
	return &DeviceError{
		Type:       ErrTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewFaultError creates an error for a SOAP fault returned by the camera
func NewFaultError(faultCode, message string) *DeviceError {
	return &DeviceError{
		Type:      ErrTypeFault,
		Message:   message,
		FaultCode: faultCode,
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *DeviceError {
	return &DeviceError{
		Type:    ErrTypeParse,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *DeviceError {
	return &DeviceError{
		Type:    ErrTypeValidation,
		Message: message,
	}
}

// IsNetworkError checks if an error is a transport-level error (including
// timeout and connection refused)
func IsNetworkError(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypeNetwork ||
			devErr.Type == ErrTypeTimeout ||
			devErr.Type == ErrTypeConnectionRefused
	}
	return false
}

// IsAuthError checks if an error is an authentication error
func IsAuthError(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypeAuth
	}
	return false
}

// IsHTTPError checks if an error is an HTTP error
func IsHTTPError(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypeHTTP
	}
	return false
}

// IsFaultError checks if an error is a SOAP fault error
func IsFaultError(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypeFault
	}
	return false
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypeParse
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypeValidation
	}
	return false
}

// GetDeviceError extracts the *DeviceError from an error chain, or nil
func GetDeviceError(err error) *DeviceError {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr
	}
	return nil
}

// GetTroubleshootingHint returns user-friendly troubleshooting advice for an error
func GetTroubleshootingHint(err error) string {
	var devErr *DeviceError
	if !errors.As(err, &devErr) {
		return "An unexpected error occurred. Please try again."
	}

	switch devErr.Type {
	case ErrTypeTimeout:
		return strings.Join([]string{
			"The camera did not respond in time.",
			"Troubleshooting:",
			"  • Check that the camera is powered on",
			"  • Verify the current IP address is correct",
			"  • Try increasing the timeout in the config file",
			"  • Ping the camera: ping " + devErr.CameraIP,
		}, "\n")

	case ErrTypeConnectionRefused:
		return strings.Join([]string{
			"The camera refused the connection on port 80.",
			"Troubleshooting:",
			"  • Some cameras expose ONVIF on a non-standard port (8080, 8000)",
			"  • Check that ONVIF is enabled in the camera's web interface",
			"  • The camera may be rebooting after a previous change",
		}, "\n")

	case ErrTypeAuth:
		return strings.Join([]string{
			"Authentication failed.",
			"Troubleshooting:",
			"  • Verify the username and password",
			"  • Some cameras require a dedicated ONVIF user account",
			"  • Check the camera clock: WS-Security digests are time-sensitive",
		}, "\n")

	case ErrTypeNetwork:
		hint := []string{"Network communication failed."}
		switch devErr.NetworkSubtype {
		case NetworkErrorHostUnreachable:
			hint = append(hint, "The camera is not reachable on the network.",
				"Troubleshooting:",
				"  • Verify the camera IP address is correct",
				"  • Check that you're on the same LAN segment as the camera",
				"  • The camera may already be on its new address")
		case NetworkErrorNetworkUnreachable:
			hint = append(hint, "Your computer cannot reach the camera's subnet.",
				"Troubleshooting:",
				"  • Check your network adapter settings and routes",
				"  • Verify the subnet in the config file")
		default:
			hint = append(hint, "Troubleshooting:",
				"  • Check your network connection",
				"  • Verify the camera is powered on and cabled")
		}
		return strings.Join(hint, "\n")

	case ErrTypeFault:
		return strings.Join([]string{
			"The camera rejected the request with a SOAP fault.",
			"Troubleshooting:",
			"  • The interface token may be wrong - run 'onvifcfg show' to list tokens",
			"  • Some firmwares do not support SetNetworkInterfaces",
			"  • Try the camera's web interface for IP changes instead",
		}, "\n")

	case ErrTypeHTTP:
		if devErr.StatusCode == http.StatusNotFound {
			return "The ONVIF device service was not found at /onvif/device_service. The camera may use a non-standard path or not support ONVIF."
		}
		if devErr.StatusCode >= 500 {
			return fmt.Sprintf("The camera returned an error (HTTP %d). This is a firmware issue - try rebooting the camera.", devErr.StatusCode)
		}
		return fmt.Sprintf("The camera returned HTTP error %d. Check the request parameters.", devErr.StatusCode)

	case ErrTypeParse:
		return "Failed to parse the camera's response. The endpoint may not be an ONVIF service (check for a login page or proxy answering on that address)."

	case ErrTypeValidation:
		return "The configuration values are invalid. Check the error message for details."

	default:
		return "An error occurred. Please check the error message for details."
	}
}

// GetShortErrorMessage returns a concise, user-friendly error message
func GetShortErrorMessage(err error) string {
	var devErr *DeviceError
	if !errors.As(err, &devErr) {
		return err.Error()
	}

	switch devErr.Type {
	case ErrTypeTimeout:
		return "Camera not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Camera refused connection - check ONVIF port"
	case ErrTypeAuth:
		return "Authentication failed - check credentials"
	case ErrTypeNetwork:
		switch devErr.NetworkSubtype {
		case NetworkErrorHostUnreachable:
			return "Camera unreachable - check network connection"
		case NetworkErrorNetworkUnreachable:
			return "Network unreachable - check routes"
		default:
			return "Network error - check connection"
		}
	case ErrTypeFault:
		if devErr.FaultCode != "" {
			return fmt.Sprintf("Camera rejected request (%s)", devErr.FaultCode)
		}
		return "Camera rejected request (SOAP fault)"
	case ErrTypeHTTP:
		return fmt.Sprintf("Camera error (HTTP %d)", devErr.StatusCode)
	case ErrTypeParse:
		return "Failed to parse camera response"
	case ErrTypeValidation:
		return devErr.Message
	default:
		return devErr.Message
	}
}
