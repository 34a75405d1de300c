package onvif

import (
	"strings"
	"testing"
	"time"
)

// Known-answer vector computed independently:
//
//	nonce   = 16 bytes 0x00..0x0f
//	created = 2024-01-15T10:30:00.000Z
//	digest  = Base64(SHA1(nonce + created + "secret"))
func TestNewSecurityToken_KnownDigest(t *testing.T) {
	nonce := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	token := newSecurityToken(Credentials{Username: "admin", Password: "secret"}, nonce, now)

	if token.Created != "2024-01-15T10:30:00.000Z" {
		t.Errorf("Created = %s, want 2024-01-15T10:30:00.000Z", token.Created)
	}

	if token.NonceB64 != "AAECAwQFBgcICQoLDA0ODw==" {
		t.Errorf("NonceB64 = %s, want AAECAwQFBgcICQoLDA0ODw==", token.NonceB64)
	}

	// Digest must hash the RAW nonce bytes, not their Base64 form. A token
	// computed over the Base64 string would differ from this value.
	want := "lod1ETywTSvYRr1XOMWtdI0Y1W8="
	if token.PasswordB64 != want {
		t.Errorf("PasswordB64 = %s, want %s", token.PasswordB64, want)
	}
}

// Every digest input must feed the hash: a token that ignored the nonce,
// the timestamp, or the password would still authenticate after any of
// them changed.
func TestNewSecurityToken_DigestCoversEveryInput(t *testing.T) {
	baseNonce := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	baseTime := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	baseCreds := Credentials{Username: "admin", Password: "secret"}

	base := newSecurityToken(baseCreds, baseNonce, baseTime)
	if base.PasswordB64 != "lod1ETywTSvYRr1XOMWtdI0Y1W8=" {
		t.Fatalf("base digest = %s, known vector broken", base.PasswordB64)
	}

	otherNonce := append([]byte{0xff}, baseNonce[1:]...)

	tests := []struct {
		name  string
		token *SecurityToken
	}{
		{"Different nonce", newSecurityToken(baseCreds, otherNonce, baseTime)},
		{"Different created time", newSecurityToken(baseCreds, baseNonce, baseTime.Add(time.Second))},
		{"Different password", newSecurityToken(Credentials{Username: "admin", Password: "Secret"}, baseNonce, baseTime)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.token.PasswordB64 == base.PasswordB64 {
				t.Errorf("digest unchanged: %s", tt.token.PasswordB64)
			}
		})
	}
}

func TestNewSecurityToken_FreshNoncePerToken(t *testing.T) {
	creds := Credentials{Username: "admin", Password: "secret"}

	t1, err := NewSecurityToken(creds)
	if err != nil {
		t.Fatalf("NewSecurityToken() error = %v", err)
	}
	t2, err := NewSecurityToken(creds)
	if err != nil {
		t.Fatalf("NewSecurityToken() error = %v", err)
	}

	if t1.NonceB64 == t2.NonceB64 {
		t.Error("consecutive tokens reused the same nonce")
	}
}

func TestSecurityToken_Header(t *testing.T) {
	nonce := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	token := newSecurityToken(Credentials{Username: "admin", Password: "secret"}, nonce, now)
	header := token.Header()

	for _, want := range []string{
		"<wsse:Username>admin</wsse:Username>",
		"#PasswordDigest",
		"#Base64Binary",
		"<wsu:Created>2024-01-15T10:30:00.000Z</wsu:Created>",
		`s:mustUnderstand="1"`,
	} {
		if !strings.Contains(header, want) {
			t.Errorf("Header() missing %q", want)
		}
	}

	// The raw password must never appear in the header
	if strings.Contains(header, "secret") {
		t.Error("Header() leaks the raw password")
	}
}

func TestSecurityToken_HeaderEscapesUsername(t *testing.T) {
	nonce := make([]byte, nonceSize)
	token := newSecurityToken(Credentials{Username: `ad<min>&"'`, Password: "p"}, nonce, time.Now())

	header := token.Header()

	if strings.Contains(header, "<min>") {
		t.Error("Header() did not escape markup in the username")
	}
	if !strings.Contains(header, "ad&lt;min&gt;&amp;&quot;&apos;") {
		t.Errorf("Header() escaped username incorrectly: %s", header)
	}
}

func TestXMLEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a&b", "a&amp;b"},
		{"<tag>", "&lt;tag&gt;"},
		{`"quoted"`, "&quot;quoted&quot;"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := xmlEscape(tt.in); got != tt.want {
			t.Errorf("xmlEscape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
