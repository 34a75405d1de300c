package onvif

import (
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"time"
)

// nonceSize is the number of random bytes in a WS-Security nonce. ONVIF
// devices accept anything reasonable; 16 bytes matches common client stacks.
const nonceSize = 16

// createdFormat is the timestamp layout ONVIF devices expect in wsu:Created.
const createdFormat = "2006-01-02T15:04:05.000Z"

// SecurityToken is a single-use WS-Security UsernameToken. Each token binds
// one request: the nonce and timestamp are fresh per call and must never be
// reused, otherwise a captured request could be replayed.
type SecurityToken struct {
	Username    string
	NonceB64    string // Base64 of the raw nonce bytes
	Created     string // UTC timestamp in createdFormat
	PasswordB64 string // Base64(SHA1(nonce + created + password))
}

// NewSecurityToken builds a fresh UsernameToken for the given credentials
// using the current UTC time and a random nonce.
func NewSecurityToken(creds Credentials) (*SecurityToken, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return newSecurityToken(creds, nonce, time.Now().UTC()), nil
}

// newSecurityToken is the deterministic core, split out so tests can pin the
// nonce and timestamp.
func newSecurityToken(creds Credentials, nonce []byte, now time.Time) *SecurityToken {
	created := now.UTC().Format(createdFormat)

	// PasswordDigest = Base64(SHA1(nonce + created + password)), with the
	// RAW nonce bytes, not their Base64 form.
	h := sha1.New()
	h.Write(nonce)
	h.Write([]byte(created))
	h.Write([]byte(creds.Password))

	return &SecurityToken{
		Username:    creds.Username,
		NonceB64:    base64.StdEncoding.EncodeToString(nonce),
		Created:     created,
		PasswordB64: base64.StdEncoding.EncodeToString(h.Sum(nil)),
	}
}

// securityHeaderTemplate is the wsse:Security header fragment. The
// mustUnderstand attribute tells strict devices to reject the request rather
// than silently ignore the token.
const securityHeaderTemplate = `<s:Header>
    <wsse:Security s:mustUnderstand="1"
        xmlns:wsse="http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd"
        xmlns:wsu="http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd">
      <wsse:UsernameToken>
        <wsse:Username>%s</wsse:Username>
        <wsse:Password Type="http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0#PasswordDigest">%s</wsse:Password>
        <wsse:Nonce EncodingType="http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-soap-message-security-1.0#Base64Binary">%s</wsse:Nonce>
        <wsu:Created>%s</wsu:Created>
      </wsse:UsernameToken>
    </wsse:Security>
  </s:Header>`

// Header renders the token as a SOAP header fragment ready to splice into an
// envelope.
func (t *SecurityToken) Header() string {
	return fmt.Sprintf(securityHeaderTemplate,
		xmlEscape(t.Username), t.PasswordB64, t.NonceB64, t.Created)
}

// xmlEscape escapes the characters that would break an XML text node.
// Usernames and interface tokens come from operator input, so this is the
// minimum hygiene before template substitution.
func xmlEscape(s string) string {
	var out []byte
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '>':
			out = append(out, "&gt;"...)
		case '"':
			out = append(out, "&quot;"...)
		case '\'':
			out = append(out, "&apos;"...)
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}
