package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// SignatureHeader is the header carrying the HMAC signature of the raw body.
const SignatureHeader = "X-Hub-Signature-256"

// SignaturePrefix is the algorithm prefix on the signature header value.
const SignaturePrefix = "sha256="

// VerifySignature verifies an HMAC-SHA256 hex signature computed over the
// raw request body with the shared secret. If headerValue starts with
// SignaturePrefix, the prefix is stripped before decoding.
func VerifySignature(body []byte, secret, headerValue string) error {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return fmt.Errorf("webhook secret is required")
	}
	if strings.TrimSpace(headerValue) == "" {
		return fmt.Errorf("signature header is missing")
	}

	got := strings.TrimSpace(headerValue)
	got = strings.TrimSpace(strings.TrimPrefix(got, SignaturePrefix))

	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	expected := mac.Sum(nil)

	gotBytes, err := hex.DecodeString(got)
	if err != nil {
		return fmt.Errorf("invalid signature encoding")
	}
	if !hmac.Equal(expected, gotBytes) {
		return fmt.Errorf("signature mismatch")
	}
	return nil
}

// Sign computes the signature header value for a body and secret.
// Used by the CLI and by tests to produce valid intake requests.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	return SignaturePrefix + hex.EncodeToString(mac.Sum(nil))
}
