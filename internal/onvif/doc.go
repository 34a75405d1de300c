// Package onvif implements the ONVIF device management client used to
// re-address IP cameras in bulk.
//
// This package speaks SOAP 1.2 with WS-Security UsernameToken (PasswordDigest)
// authentication to each camera's device service at
// http://<ip>/onvif/device_service. It covers the small slice of ONVIF needed
// for an IP migration: GetDeviceInformation, GetNetworkInterfaces, and
// SetNetworkInterfaces.
//
// # Usage Example
//
//	creds := onvif.Credentials{Username: "admin", Password: "secret"}
//	cfg := onvif.NetworkConfig{
//	    Gateway:        "192.168.1.1",
//	    PrefixLength:   24,
//	    InterfaceToken: "eth0",
//	    Timeout:        10 * time.Second,
//	}
//
//	runner := onvif.NewRunner(cfg, creds)
//	results := runner.Run([]onvif.CameraTarget{
//	    {CurrentIP: "192.168.1.64", NewIP: "10.0.0.11"},
//	    {CurrentIP: "192.168.1.65", NewIP: "10.0.0.12"},
//	})
//
//	for _, r := range results {
//	    fmt.Println(onvif.FormatResult(r))
//	}
//
// # Outcome Classification
//
// Every camera yields exactly one OperationResult; no outcome escapes as a
// panic or an unclassified error:
//   - Success: HTTP 200 with no SOAP fault. The camera ACCEPTED the command;
//     whether the address actually changes is firmware-dependent. Enable
//     verification on the Runner to poll the new address.
//   - AuthFailure: HTTP 401 or an authentication-related SOAP fault.
//   - Unreachable: timeout, connection refused, or host/network unreachable.
//   - ProtocolError: unexpected HTTP status or a non-auth SOAP fault.
//   - InvalidResponse: a reply that is not parseable XML.
//   - ValidationFailed: the target was rejected before any network traffic.
//
// # Authentication
//
// Each request carries a freshly generated WS-Security header: a random
// 16-byte nonce, a UTC created timestamp, and
// Base64(SHA1(nonce + created + password)). Nonces are never reused across
// requests. Credentials live in memory only; nothing in this package writes
// them to disk.
//
// # Batch Semantics
//
// The Runner processes targets strictly sequentially in input order, applies
// no retries, and never aborts the batch on a per-camera failure. Results
// come back in input order, one per target.
package onvif
