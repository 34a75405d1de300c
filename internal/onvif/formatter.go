package onvif

import (
	"fmt"
	"strconv"
	"strings"
)

// Summary returns a one-line summary of the interface state
func (ni *NetworkInterfaceInfo) Summary() string {
	dhcp := "static"
	if ni.DHCPEnabled {
		dhcp = "DHCP"
	}
	return fmt.Sprintf("%s @ %s (%s)", ni.TokenOrDefault(), strings.Join(ni.Addresses, ", "), dhcp)
}

// TokenOrDefault returns the first interface token, or the conventional
// default when the camera reported none
func (ni *NetworkInterfaceInfo) TokenOrDefault() string {
	if len(ni.Tokens) > 0 {
		return ni.Tokens[0]
	}
	return DefaultInterfaceToken
}

// FormatInterfaces returns a formatted string with the camera's network
// interface state
func (ni *NetworkInterfaceInfo) FormatInterfaces() string {
	var b strings.Builder

	b.WriteString("=== Network Interfaces ===\n")
	b.WriteString(fmt.Sprintf("Tokens:       %s\n", joinOrNone(ni.Tokens)))
	b.WriteString(fmt.Sprintf("MAC Address:  %s\n", orNone(ni.HwAddress)))
	b.WriteString(fmt.Sprintf("Addresses:    %s\n", joinOrNone(ni.Addresses)))
	prefixes := make([]string, len(ni.PrefixLengths))
	for i, p := range ni.PrefixLengths {
		prefixes[i] = strconv.Itoa(p)
	}
	b.WriteString(fmt.Sprintf("Prefixes:     %s\n", joinOrNone(prefixes)))
	b.WriteString(fmt.Sprintf("DHCP:         %v\n", ni.DHCPEnabled))

	return b.String()
}

// FormatDeviceInfo returns a formatted string with camera identification
func (di *DeviceInformation) FormatDeviceInfo() string {
	var b strings.Builder

	b.WriteString("=== Device Information ===\n")
	b.WriteString(fmt.Sprintf("Manufacturer: %s\n", orNone(di.Manufacturer)))
	b.WriteString(fmt.Sprintf("Model:        %s\n", orNone(di.Model)))
	b.WriteString(fmt.Sprintf("Firmware:     %s\n", orNone(di.FirmwareVersion)))
	b.WriteString(fmt.Sprintf("Serial:       %s\n", orNone(di.SerialNumber)))

	return b.String()
}

// FormatChange returns a formatted string showing what will be applied to
// one camera. Passwords are never included.
func FormatChange(target CameraTarget, cfg NetworkConfig) string {
	var b strings.Builder

	b.WriteString("=== Planned Change ===\n")
	b.WriteString(fmt.Sprintf("  Camera:    %s\n", target.CurrentIP))
	b.WriteString(fmt.Sprintf("  New IP:    %s/%d\n", target.NewIP, cfg.PrefixLength))
	b.WriteString(fmt.Sprintf("  Netmask:   %s\n", SubnetMaskFromPrefix(cfg.PrefixLength)))
	b.WriteString(fmt.Sprintf("  Gateway:   %s\n", cfg.Gateway))
	b.WriteString(fmt.Sprintf("  Interface: %s\n", cfg.InterfaceToken))

	return b.String()
}

// FormatResult returns a one-line rendering of a single camera's outcome
func FormatResult(r OperationResult) string {
	mark := "FAIL"
	if r.OK() {
		mark = "OK"
	}
	line := fmt.Sprintf("[%s] %s (%s)", mark, r.Target.String(), r.Status)
	if r.Detail != "" {
		line += ": " + r.Detail
	}
	return line
}

// FormatSummary returns a multi-line batch summary: one line per camera in
// batch order, then the tally.
func FormatSummary(results []OperationResult) string {
	var b strings.Builder

	b.WriteString("=== Batch Summary ===\n")
	for _, r := range results {
		b.WriteString(FormatResult(r))
		b.WriteString("\n")
	}
	ok := CountSuccesses(results)
	b.WriteString(fmt.Sprintf("\n%d succeeded, %d failed (of %d)\n", ok, len(results)-ok, len(results)))

	return b.String()
}

func joinOrNone(vals []string) string {
	if len(vals) == 0 {
		return "(none)"
	}
	return strings.Join(vals, ", ")
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
