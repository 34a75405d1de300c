package onvif

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/muurk/onvifcfg/internal/logging"
)

const (
	// DeviceServicePath is the fixed ONVIF device management endpoint path
	DeviceServicePath = "/onvif/device_service"

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// soapContentType is the SOAP 1.2 content type ONVIF devices expect
	soapContentType = "application/soap+xml; charset=utf-8"
)

// Client talks to a single camera's ONVIF device management service.
// Each method performs exactly one authenticated SOAP round trip with a
// fresh WS-Security token; no state is carried between calls.
type Client struct {
	// Endpoint is the full device service URL (e.g. "http://192.168.1.64/onvif/device_service")
	Endpoint string

	// CameraIP is the camera's address, kept for error context
	CameraIP string

	// Username for WS-Security UsernameToken authentication
	Username string

	// Password for WS-Security UsernameToken authentication
	Password string

	// HTTPClient is the underlying HTTP client; its Timeout is the
	// per-request deadline
	HTTPClient *http.Client

	// lastBody holds the most recent response body for verbose display
	lastBody []byte
}

// NewClient creates a client for the camera at the given IPv4 address,
// using the standard ONVIF device service path.
func NewClient(ip string, creds Credentials) *Client {
	return &Client{
		Endpoint:   fmt.Sprintf("http://%s%s", ip, DeviceServicePath),
		CameraIP:   ip,
		Username:   creds.Username,
		Password:   creds.Password,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// NewClientWithEndpoint creates a client with a full service URL. Used by
// tests and for cameras on non-standard ports.
func NewClientWithEndpoint(endpoint string, creds Credentials) *Client {
	ip := endpoint
	if i := strings.Index(ip, "://"); i >= 0 {
		ip = ip[i+3:]
	}
	if i := strings.IndexAny(ip, ":/"); i >= 0 {
		ip = ip[:i]
	}
	return &Client{
		Endpoint:   endpoint,
		CameraIP:   ip,
		Username:   creds.Username,
		Password:   creds.Password,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// SetAuth replaces the credentials used for subsequent requests
func (c *Client) SetAuth(username, password string) {
	c.Username = username
	c.Password = password
}

// credentials returns the client's credentials as a value
func (c *Client) credentials() Credentials {
	return Credentials{Username: c.Username, Password: c.Password}
}

// call performs one authenticated SOAP round trip: fresh token, POST, status
// and fault inspection. On success it returns the raw response body. Every
// failure path returns a *DeviceError so callers can classify the outcome.
func (c *Client) call(action string, build func(*SecurityToken) string) ([]byte, error) {
	token, err := NewSecurityToken(c.credentials())
	if err != nil {
		return nil, NewParseError("failed to build security token", err)
	}

	envelope := build(token)

	req, err := http.NewRequest(http.MethodPost, c.Endpoint, strings.NewReader(envelope))
	if err != nil {
		return nil, NewNetworkError("failed to create request", err, c.CameraIP)
	}
	req.Header.Set("Content-Type", soapContentType)
	req.Header.Set("SOAPAction", action)

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, NewNetworkError("request failed", err, c.CameraIP)
	}
	defer func() { _ = resp.Body.Close() }()
	logging.LogRequest(c.CameraIP, action, resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read response body", err, c.CameraIP)
	}
	c.lastBody = body

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, NewAuthError("authentication failed (check credentials)")
	}

	// Some firmwares answer auth and usage errors as HTTP 400/500 with a
	// fault body; prefer the fault detail over the bare status code.
	if fault := ParseFault(body); fault != nil {
		if fault.IsAuthFailure() {
			return nil, NewAuthError(fault.Detail())
		}
		return nil, NewFaultError(fault.Code, fault.Detail())
	}

	if resp.StatusCode != http.StatusOK {
		return nil, NewHTTPError(resp.StatusCode,
			fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
	}

	return body, nil
}

// GetDeviceInformation retrieves the camera's identity (manufacturer, model,
// firmware, serial number).
func (c *Client) GetDeviceInformation() (*DeviceInformation, error) {
	body, err := c.call(ActionGetDeviceInformation, BuildGetDeviceInformationEnvelope)
	if err != nil {
		return nil, err
	}
	return parseDeviceInformation(body)
}

// GetNetworkInterfaces retrieves the camera's current network interface
// configuration: tokens, addresses, DHCP state.
func (c *Client) GetNetworkInterfaces() (*NetworkInterfaceInfo, error) {
	body, err := c.call(ActionGetNetworkInterfaces, BuildGetNetworkInterfacesEnvelope)
	if err != nil {
		return nil, err
	}
	return parseNetworkInterfaces(body)
}

// SetNetworkInterfaces assigns the static address newIP to the camera using
// the shared NetworkConfig. Returns the camera's RebootNeeded flag. The
// config and newIP must be validated before calling; nothing is re-checked
// here.
//
// A nil error means the camera ACCEPTED the command. Whether the camera
// actually moves to newIP is firmware-dependent; use VerifyMigration to
// confirm.
func (c *Client) SetNetworkInterfaces(cfg NetworkConfig, newIP string) (rebootNeeded bool, err error) {
	body, err := c.call(ActionSetNetworkInterfaces, func(t *SecurityToken) string {
		return BuildSetNetworkInterfacesEnvelope(t, cfg, newIP)
	})
	if err != nil {
		return false, err
	}
	return parseSetNetworkInterfacesResponse(body)
}

// SetDHCP enables or disables DHCP on the given interface. Some cameras
// ignore a static address assignment while DHCP is still on, so the batch
// runner disables DHCP first when the camera reports it enabled.
func (c *Client) SetDHCP(interfaceToken string, enable bool) error {
	body, err := c.call(ActionSetNetworkInterfaces, func(t *SecurityToken) string {
		return BuildSetDHCPEnvelope(t, interfaceToken, enable)
	})
	if err != nil {
		return err
	}
	if !strings.Contains(string(body), "SetNetworkInterfacesResponse") {
		return NewParseError("camera did not acknowledge DHCP change", nil)
	}
	return nil
}

// LastResponse returns a snippet of the most recent response body, for
// verbose display. Empty until a request has read a body.
func (c *Client) LastResponse() string {
	return Snippet(c.lastBody, 2000)
}

// Ping performs a cheap reachability check by requesting device information.
// Returns nil if the camera answers the ONVIF endpoint at all, even with an
// auth fault: an auth failure still proves the device is there.
func (c *Client) Ping() error {
	_, err := c.GetDeviceInformation()
	if err != nil && !IsAuthError(err) {
		return err
	}
	return nil
}
