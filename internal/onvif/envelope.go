package onvif

import (
	"fmt"
)

// SOAP action URIs for the device management operations this tool uses.
const (
	ActionSetNetworkInterfaces = "http://www.onvif.org/ver10/device/wsdl/SetNetworkInterfaces"
	ActionGetNetworkInterfaces = "http://www.onvif.org/ver10/device/wsdl/GetNetworkInterfaces"
	ActionGetDeviceInformation = "http://www.onvif.org/ver10/device/wsdl/GetDeviceInformation"
)

// DefaultInterfaceToken is the interface token used when neither the
// configuration nor the camera supplies one. "eth0" matches the wired
// interface name on nearly every IP camera in the field.
const DefaultInterfaceToken = "eth0"

// envelopeTemplate wraps a security header and a body fragment into a SOAP
// 1.2 envelope with the ONVIF device management namespaces declared.
const envelopeTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope"
    xmlns:tds="http://www.onvif.org/ver10/device/wsdl"
    xmlns:tt="http://www.onvif.org/ver10/schema">
  %s
  <s:Body>
    %s
  </s:Body>
</s:Envelope>`

// setNetworkInterfacesBody assigns a static IPv4 address. The shape follows
// what mainstream camera firmwares accept: Enabled on both the interface and
// the IPv4 block, a single Manual entry, DHCP off, IPv6 explicitly disabled,
// and the gateway as a sibling IPv4Gateway element. MTU is pinned to 1500 -
// some firmwares fault when Info is present without it.
const setNetworkInterfacesBody = `<tds:SetNetworkInterfaces>
      <tds:InterfaceToken>%s</tds:InterfaceToken>
      <tds:NetworkInterface>
        <tt:Enabled>true</tt:Enabled>
        <tt:Info>
          <tt:Name>%s</tt:Name>
          <tt:MTU>1500</tt:MTU>
        </tt:Info>
        <tt:IPv4>
          <tt:Enabled>true</tt:Enabled>
          <tt:Config>
            <tt:Manual>
              <tt:Address>%s</tt:Address>
              <tt:PrefixLength>%d</tt:PrefixLength>
            </tt:Manual>
            <tt:DHCP>false</tt:DHCP>
          </tt:Config>
        </tt:IPv4>
        <tt:IPv6><tt:Enabled>false</tt:Enabled></tt:IPv6>
      </tds:NetworkInterface>
      <tds:IPv4Gateway>
        <tt:Address>%s</tt:Address>
      </tds:IPv4Gateway>
    </tds:SetNetworkInterfaces>`

// setDHCPBody toggles DHCP on the given interface without touching the
// manual address list.
const setDHCPBody = `<tds:SetNetworkInterfaces>
      <tds:InterfaceToken>%s</tds:InterfaceToken>
      <tds:NetworkInterface>
        <tt:Enabled>true</tt:Enabled>
        <tt:IPv4>
          <tt:Enabled>true</tt:Enabled>
          <tt:DHCP>%t</tt:DHCP>
        </tt:IPv4>
      </tds:NetworkInterface>
    </tds:SetNetworkInterfaces>`

// BuildSetNetworkInterfacesEnvelope builds the authenticated envelope that
// moves a camera to newIP. The NetworkConfig and newIP must already be
// validated; this function only assembles XML.
func BuildSetNetworkInterfacesEnvelope(token *SecurityToken, cfg NetworkConfig, newIP string) string {
	body := fmt.Sprintf(setNetworkInterfacesBody,
		xmlEscape(cfg.InterfaceToken),
		xmlEscape(cfg.InterfaceToken),
		newIP,
		cfg.PrefixLength,
		cfg.Gateway,
	)
	return fmt.Sprintf(envelopeTemplate, token.Header(), body)
}

// BuildSetDHCPEnvelope builds the authenticated envelope that enables or
// disables DHCP on the given interface.
func BuildSetDHCPEnvelope(token *SecurityToken, interfaceToken string, enable bool) string {
	body := fmt.Sprintf(setDHCPBody, xmlEscape(interfaceToken), enable)
	return fmt.Sprintf(envelopeTemplate, token.Header(), body)
}

// BuildGetNetworkInterfacesEnvelope builds the authenticated
// GetNetworkInterfaces request.
func BuildGetNetworkInterfacesEnvelope(token *SecurityToken) string {
	return fmt.Sprintf(envelopeTemplate, token.Header(), `<tds:GetNetworkInterfaces/>`)
}

// BuildGetDeviceInformationEnvelope builds the authenticated
// GetDeviceInformation request.
func BuildGetDeviceInformationEnvelope(token *SecurityToken) string {
	return fmt.Sprintf(envelopeTemplate, token.Header(), `<tds:GetDeviceInformation/>`)
}
