package onvif

import (
	"errors"
	"testing"
)

const mockSOAP11Fault = `<?xml version="1.0" encoding="UTF-8"?>
<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/">
  <SOAP-ENV:Body>
    <SOAP-ENV:Fault>
      <faultcode>SOAP-ENV:Client</faultcode>
      <faultstring>Sender not Authorized</faultstring>
    </SOAP-ENV:Fault>
  </SOAP-ENV:Body>
</SOAP-ENV:Envelope>`

func TestParseFault_SOAP12(t *testing.T) {
	fault := ParseFault([]byte(mockAuthFault))

	if fault == nil {
		t.Fatal("ParseFault() = nil, want fault")
	}

	if fault.Subcode != "ter:NotAuthorized" {
		t.Errorf("Subcode = %s, want ter:NotAuthorized", fault.Subcode)
	}

	if !fault.IsAuthFailure() {
		t.Error("IsAuthFailure() = false for ter:NotAuthorized")
	}
}

func TestParseFault_SOAP11(t *testing.T) {
	fault := ParseFault([]byte(mockSOAP11Fault))

	if fault == nil {
		t.Fatal("ParseFault() = nil, want fault")
	}

	if fault.Reason != "Sender not Authorized" {
		t.Errorf("Reason = %s", fault.Reason)
	}

	if !fault.IsAuthFailure() {
		t.Error("IsAuthFailure() = false for 'Sender not Authorized'")
	}
}

func TestParseFault_NotSupported(t *testing.T) {
	fault := ParseFault([]byte(mockNotSupportedFault))

	if fault == nil {
		t.Fatal("ParseFault() = nil, want fault")
	}

	if fault.IsAuthFailure() {
		t.Error("IsAuthFailure() = true for ActionNotSupported")
	}

	if !fault.IsNotSupported() {
		t.Error("IsNotSupported() = false for ActionNotSupported")
	}
}

func TestParseFault_NoFault(t *testing.T) {
	if fault := ParseFault([]byte(mockSetResponse)); fault != nil {
		t.Errorf("ParseFault() = %+v for a normal response, want nil", fault)
	}
}

func TestParseFault_NotXML(t *testing.T) {
	if fault := ParseFault([]byte("total garbage <")); fault != nil {
		t.Errorf("ParseFault() = %+v for garbage, want nil", fault)
	}
}

func TestFault_Detail(t *testing.T) {
	tests := []struct {
		name  string
		fault Fault
		want  string
	}{
		{"reason and subcode", Fault{Subcode: "ter:NotAuthorized", Reason: "nope"}, "ter:NotAuthorized: nope"},
		{"reason only", Fault{Reason: "nope"}, "nope"},
		{"subcode only", Fault{Subcode: "ter:NotAuthorized"}, "ter:NotAuthorized"},
		{"code only", Fault{Code: "env:Sender"}, "env:Sender"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fault.Detail(); got != tt.want {
				t.Errorf("Detail() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want OperationStatus
	}{
		{"nil", nil, StatusSuccess},
		{"auth", NewAuthError("bad credentials"), StatusAuthFailure},
		{"validation", NewValidationError("bad prefix"), StatusValidationFailed},
		{"network", NewNetworkError("down", errors.New("dial tcp"), "10.0.0.1"), StatusUnreachable},
		{"parse", NewParseError("not xml", nil), StatusInvalidResponse},
		{"http", NewHTTPError(404, "unexpected status code: 404"), StatusProtocolError},
		{"fault", NewFaultError("env:Receiver", "ter:ActionNotSupported"), StatusProtocolError},
		{"plain error", errors.New("something odd"), StatusProtocolError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, detail := StatusFromError(tt.err)
			if got != tt.want {
				t.Errorf("StatusFromError() = %v, want %v", got, tt.want)
			}
			if tt.err != nil && detail == "" {
				t.Error("StatusFromError() returned empty detail for an error")
			}
		})
	}
}
