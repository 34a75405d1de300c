package onvif

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/clbanning/mxj"
)

// Response parsing is deliberately namespace-agnostic: vendors prefix the
// same elements differently (tds:, tt:, env:, SOAP-ENV:), and mxj keys maps
// by local element name only. Paths below therefore never carry prefixes.

// parseXML decodes a SOAP response body into a navigable map, wrapping
// decode failures as parse errors.
func parseXML(body []byte) (mxj.Map, error) {
	m, err := mxj.NewMapXml(body)
	if err != nil {
		return nil, NewParseError("response is not valid XML", err)
	}
	return m, nil
}

// pathString returns the first string value at any of the candidate paths,
// or "" if none resolve. Candidates absorb the structural differences
// between firmwares.
func pathString(m mxj.Map, candidates ...string) string {
	for _, path := range candidates {
		if v, err := m.ValueForPathString(path); err == nil && v != "" {
			return v
		}
	}
	return ""
}

// pathStrings collects every string value found under the given path,
// flattening single values, lists, and nested maps with a "#text" key.
func pathStrings(m mxj.Map, path string) []string {
	vals, err := m.ValuesForPath(path)
	if err != nil {
		return nil
	}
	var out []string
	for _, v := range vals {
		switch t := v.(type) {
		case string:
			out = append(out, t)
		case map[string]interface{}:
			if s, ok := t["#text"].(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func parseDeviceInformation(body []byte) (*DeviceInformation, error) {
	m, err := parseXML(body)
	if err != nil {
		return nil, err
	}
	resp := "Envelope.Body.GetDeviceInformationResponse."
	info := &DeviceInformation{
		Manufacturer:    pathString(m, resp+"Manufacturer"),
		Model:           pathString(m, resp+"Model"),
		FirmwareVersion: pathString(m, resp+"FirmwareVersion"),
		SerialNumber:    pathString(m, resp+"SerialNumber"),
		HardwareID:      pathString(m, resp+"HardwareId"),
	}
	if info.Manufacturer == "" && info.Model == "" {
		return nil, NewParseError("response has no GetDeviceInformationResponse element", nil)
	}
	return info, nil
}

func parseNetworkInterfaces(body []byte) (*NetworkInterfaceInfo, error) {
	m, err := parseXML(body)
	if err != nil {
		return nil, err
	}
	iface := "Envelope.Body.GetNetworkInterfacesResponse.NetworkInterfaces"

	info := &NetworkInterfaceInfo{
		Tokens:    pathStrings(m, iface+".-token"),
		HwAddress: pathString(m, iface+".Info.HwAddress"),
	}

	// Addresses may come from the manual list, the DHCP lease, or both.
	for _, path := range []string{
		iface + ".IPv4.Config.Manual.Address",
		iface + ".IPv4.Config.FromDHCP.Address",
	} {
		info.Addresses = append(info.Addresses, pathStrings(m, path)...)
	}
	for _, path := range []string{
		iface + ".IPv4.Config.Manual.PrefixLength",
		iface + ".IPv4.Config.FromDHCP.PrefixLength",
	} {
		for _, s := range pathStrings(m, path) {
			if n, err := strconv.Atoi(s); err == nil {
				info.PrefixLengths = append(info.PrefixLengths, n)
			}
		}
	}

	if dhcp := pathString(m, iface+".IPv4.Config.DHCP"); dhcp != "" {
		info.DHCPEnabled = strings.EqualFold(dhcp, "true")
	}

	if len(info.Tokens) == 0 && len(info.Addresses) == 0 {
		return nil, NewParseError("response has no NetworkInterfaces element", nil)
	}
	return info, nil
}

func parseSetNetworkInterfacesResponse(body []byte) (rebootNeeded bool, err error) {
	m, perr := parseXML(body)
	if perr != nil {
		return false, perr
	}
	v := pathString(m, "Envelope.Body.SetNetworkInterfacesResponse.RebootNeeded")
	if v == "" {
		// An empty SetNetworkInterfacesResponse element is a valid
		// acknowledgement on some firmwares.
		if vals, e := m.ValuesForPath("Envelope.Body.SetNetworkInterfacesResponse"); e == nil && len(vals) > 0 {
			return false, nil
		}
		return false, NewParseError(
			fmt.Sprintf("camera did not acknowledge the change: %s", Snippet(body, 120)), nil)
	}
	return strings.EqualFold(v, "true"), nil
}

// Snippet returns a trimmed, length-capped view of a response body for
// error messages and logs.
func Snippet(body []byte, max int) string {
	s := strings.TrimSpace(string(body))
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > max {
		s = s[:max] + "..."
	}
	return s
}
