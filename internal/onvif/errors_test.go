package onvif

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyNetworkError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantType    ErrorType
		wantSubtype NetworkErrorSubtype
	}{
		{
			name:        "Timeout",
			err:         timeoutErr{},
			wantType:    ErrTypeTimeout,
			wantSubtype: NetworkErrorTimeout,
		},
		{
			name:        "Connection refused",
			err:         &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED},
			wantType:    ErrTypeConnectionRefused,
			wantSubtype: NetworkErrorConnectionRefused,
		},
		{
			name:        "Host unreachable",
			err:         &net.OpError{Op: "dial", Err: syscall.EHOSTUNREACH},
			wantType:    ErrTypeNetwork,
			wantSubtype: NetworkErrorHostUnreachable,
		},
		{
			name:        "Network unreachable",
			err:         &net.OpError{Op: "dial", Err: syscall.ENETUNREACH},
			wantType:    ErrTypeNetwork,
			wantSubtype: NetworkErrorNetworkUnreachable,
		},
		{
			name:        "Wrapped in url.Error",
			err:         &url.Error{Op: "Post", URL: "http://192.168.1.64/onvif/device_service", Err: &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}},
			wantType:    ErrTypeConnectionRefused,
			wantSubtype: NetworkErrorConnectionRefused,
		},
		{
			name:        "Generic error",
			err:         fmt.Errorf("something broke"),
			wantType:    ErrTypeNetwork,
			wantSubtype: NetworkErrorGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			devErr := ClassifyNetworkError(tt.err, "192.168.1.64")
			if devErr == nil {
				t.Fatal("Expected a classified error, got nil")
			}
			if devErr.Type != tt.wantType {
				t.Errorf("Expected type %v, got %v", tt.wantType, devErr.Type)
			}
			if devErr.NetworkSubtype != tt.wantSubtype {
				t.Errorf("Expected subtype %v, got %v", tt.wantSubtype, devErr.NetworkSubtype)
			}
			if devErr.CameraIP != "192.168.1.64" {
				t.Errorf("Expected camera IP on error, got %q", devErr.CameraIP)
			}
		})
	}

	if got := ClassifyNetworkError(nil, "192.168.1.64"); got != nil {
		t.Errorf("Expected nil for nil error, got %v", got)
	}
}

func TestDeviceErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("connection reset")
	devErr := NewNetworkError("request failed", inner, "192.168.1.64")

	if !errors.Is(devErr, inner) {
		t.Error("Expected errors.Is to find the wrapped error")
	}
	if !strings.Contains(devErr.Error(), "caused by") {
		t.Errorf("Expected wrapped error in message, got %q", devErr.Error())
	}
}

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{"Auth", NewAuthError("bad digest"), IsAuthError},
		{"HTTP", NewHTTPError(500, "server error"), IsHTTPError},
		{"Fault", NewFaultError("ter:InvalidArgVal", "bad token"), IsFaultError},
		{"Parse", NewParseError("bad xml", nil), IsParseError},
		{"Validation", NewValidationError("bad prefix"), IsValidationError},
		{"Network", NewNetworkError("down", fmt.Errorf("x"), "192.168.1.64"), IsNetworkError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.pred(tt.err) {
				t.Errorf("Expected predicate to match %v", tt.err)
			}
			// A predicate must reject every other category
			if tt.name != "Auth" && IsAuthError(tt.err) {
				t.Errorf("IsAuthError matched %v", tt.err)
			}
		})
	}

	if IsNetworkError(fmt.Errorf("plain")) {
		t.Error("Expected plain errors to not match IsNetworkError")
	}
}

func TestIsNetworkErrorCoversTransportTypes(t *testing.T) {
	// Timeout and connection refused count as network errors for batch
	// classification purposes
	if !IsNetworkError(ClassifyNetworkError(timeoutErr{}, "192.168.1.64")) {
		t.Error("Expected timeout to count as network error")
	}
	refused := &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}
	if !IsNetworkError(ClassifyNetworkError(refused, "192.168.1.64")) {
		t.Error("Expected connection refused to count as network error")
	}
}

func TestGetDeviceError(t *testing.T) {
	devErr := NewAuthError("digest rejected")
	wrapped := fmt.Errorf("camera 192.168.1.64: %w", devErr)

	got := GetDeviceError(wrapped)
	if got == nil {
		t.Fatal("Expected to extract DeviceError from chain")
	}
	if got.Type != ErrTypeAuth {
		t.Errorf("Expected auth error, got %v", got.Type)
	}

	if GetDeviceError(fmt.Errorf("plain")) != nil {
		t.Error("Expected nil for a plain error")
	}
}

func TestGetTroubleshootingHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"Timeout mentions ping", ClassifyNetworkError(timeoutErr{}, "192.168.1.64"), "ping 192.168.1.64"},
		{"Refused mentions port", NewNetworkError("refused", &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, "192.168.1.64"), "non-standard port"},
		{"Auth mentions clock", NewAuthError("bad digest"), "camera clock"},
		{"Fault mentions token", NewFaultError("ter:InvalidArgVal", "bad token"), "interface token"},
		{"404 mentions service path", NewHTTPError(404, "not found"), "/onvif/device_service"},
		{"500 mentions firmware", NewHTTPError(503, "unavailable"), "firmware"},
		{"Parse mentions non-ONVIF endpoint", NewParseError("bad xml", nil), "ONVIF service"},
		{"Plain error gets generic hint", fmt.Errorf("plain"), "unexpected error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := GetTroubleshootingHint(tt.err)
			if !strings.Contains(hint, tt.want) {
				t.Errorf("Expected hint to contain %q, got:\n%s", tt.want, hint)
			}
		})
	}
}

func TestGetShortErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"Timeout", ClassifyNetworkError(timeoutErr{}, "192.168.1.64"), "Camera not responding (timeout)"},
		{"Auth", NewAuthError("bad digest"), "Authentication failed - check credentials"},
		{"Fault with code", NewFaultError("ter:InvalidArgVal", "bad"), "Camera rejected request (ter:InvalidArgVal)"},
		{"Fault without code", NewFaultError("", "bad"), "Camera rejected request (SOAP fault)"},
		{"HTTP", NewHTTPError(502, "bad gateway"), "Camera error (HTTP 502)"},
		{"Validation passes message through", NewValidationError("prefix out of range"), "prefix out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetShortErrorMessage(tt.err); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}

	if got := GetShortErrorMessage(fmt.Errorf("plain")); got != "plain" {
		t.Errorf("Expected plain message passthrough, got %q", got)
	}
}
