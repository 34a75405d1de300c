package onvif

import (
	"fmt"
	"strings"
	"time"
)

// CameraTarget identifies a single camera in a batch: the address it answers
// on today and the address it should be moved to.
type CameraTarget struct {
	// CurrentIP is the IPv4 address the camera currently answers on
	CurrentIP string

	// NewIP is the IPv4 address to assign via SetNetworkInterfaces
	NewIP string
}

// String returns "current -> new" for display and logging.
func (t CameraTarget) String() string {
	return fmt.Sprintf("%s -> %s", t.CurrentIP, t.NewIP)
}

// NetworkConfig holds the network parameters shared by every target in a
// batch. It is read-only for the duration of a run.
type NetworkConfig struct {
	// Gateway is the IPv4 default gateway to configure on each camera
	Gateway string

	// PrefixLength is the CIDR prefix length (0-32) for the new addresses
	PrefixLength int

	// InterfaceToken is the ONVIF token of the NIC to reconfigure (e.g. "eth0")
	InterfaceToken string

	// Timeout is the per-request HTTP deadline
	Timeout time.Duration
}

// Credentials holds the camera login used for WS-Security authentication.
// Held in memory only; never written to disk by this package.
type Credentials struct {
	Username string
	Password string
}

// OperationStatus classifies the outcome of one camera operation.
type OperationStatus int

const (
	// StatusSuccess means the camera accepted the command (HTTP 200, no SOAP
	// fault). It does NOT guarantee the camera fully reconfigured itself -
	// some firmwares acknowledge and then ignore the change, or require a
	// reboot before it takes effect.
	StatusSuccess OperationStatus = iota

	// StatusAuthFailure means HTTP 401 or a SOAP fault indicating bad credentials
	StatusAuthFailure

	// StatusUnreachable means a transport-level failure: timeout, connection
	// refused, host or network unreachable
	StatusUnreachable

	// StatusProtocolError means HTTP 404/500 or a SOAP fault indicating the
	// operation is unsupported or was rejected
	StatusProtocolError

	// StatusInvalidResponse means the camera answered with something that is
	// not parseable SOAP/XML
	StatusInvalidResponse

	// StatusValidationFailed means the target was rejected before any network
	// call was attempted (bad IPv4 literal, prefix out of range)
	StatusValidationFailed
)

// String returns a short machine-friendly name for the status.
func (s OperationStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusAuthFailure:
		return "auth_failure"
	case StatusUnreachable:
		return "unreachable"
	case StatusProtocolError:
		return "protocol_error"
	case StatusInvalidResponse:
		return "invalid_response"
	case StatusValidationFailed:
		return "validation_failed"
	default:
		return fmt.Sprintf("OperationStatus(%d)", s)
	}
}

// OperationResult is the outcome of one camera update. Exactly one is
// produced per CameraTarget, in input order, regardless of failure.
type OperationResult struct {
	// Target is the camera this result belongs to
	Target CameraTarget

	// Status is the classified outcome
	Status OperationStatus

	// Detail is a human-readable explanation (error text, fault string,
	// or "command accepted")
	Detail string

	// RebootNeeded reports the camera's RebootNeeded flag from the
	// SetNetworkInterfacesResponse, when present
	RebootNeeded bool

	// Duration is how long the operation took, including the HTTP round trip
	Duration time.Duration

	// Response is a snippet of the camera's last raw SOAP response, only
	// populated when the runner's CaptureResponses flag is set
	Response string
}

// OK reports whether the camera accepted the command.
func (r OperationResult) OK() bool {
	return r.Status == StatusSuccess
}

// NetworkInterfaceInfo is the subset of a GetNetworkInterfaces response that
// matters for an IP migration: which tokens exist, what addresses the camera
// currently holds, and whether DHCP is on.
type NetworkInterfaceInfo struct {
	Tokens        []string // interface tokens, first one is used as fallback
	Addresses     []string // IPv4 addresses the camera reports
	PrefixLengths []int    // prefix lengths paired with Addresses where known
	HwAddress     string   // MAC address, when reported
	DHCPEnabled   bool
}

// HasAddress reports whether the camera lists the given IPv4 address.
func (ni *NetworkInterfaceInfo) HasAddress(ip string) bool {
	for _, a := range ni.Addresses {
		if a == ip {
			return true
		}
	}
	return false
}

// DeviceInformation holds the GetDeviceInformation response fields.
type DeviceInformation struct {
	Manufacturer    string
	Model           string
	FirmwareVersion string
	SerialNumber    string
	HardwareID      string
}

// String returns a one-line identity summary, e.g. "Hikvision DS-2CD2042 (fw V5.4.5)".
func (di *DeviceInformation) String() string {
	parts := []string{}
	if di.Manufacturer != "" {
		parts = append(parts, di.Manufacturer)
	}
	if di.Model != "" {
		parts = append(parts, di.Model)
	}
	s := strings.Join(parts, " ")
	if s == "" {
		s = "Unknown camera"
	}
	if di.FirmwareVersion != "" {
		s += fmt.Sprintf(" (fw %s)", di.FirmwareVersion)
	}
	return s
}

// SubnetMaskFromPrefix converts a CIDR prefix length to a dotted-quad subnet
// mask, e.g. 24 -> "255.255.255.0". The prefix must already be validated to
// the [0,32] range.
func SubnetMaskFromPrefix(prefix int) string {
	var mask uint32
	if prefix > 0 {
		mask = ^uint32(0) << (32 - prefix)
	}
	return fmt.Sprintf("%d.%d.%d.%d",
		byte(mask>>24), byte(mask>>16), byte(mask>>8), byte(mask))
}
