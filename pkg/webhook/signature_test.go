package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"ref":"refs/heads/master"}`)
	secret := "s3cr3t"
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	sig := "sha256=" + hex.EncodeToString(mac.Sum(nil))

	if err := VerifySignature(body, secret, sig); err != nil {
		t.Fatalf("expected ok, got error: %v", err)
	}
}

func TestVerifySignature_NoPrefix(t *testing.T) {
	body := []byte("abc")
	secret := "k"
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	sig := hex.EncodeToString(mac.Sum(nil))

	if err := VerifySignature(body, secret, sig); err != nil {
		t.Fatalf("expected ok, got error: %v", err)
	}
}

func TestVerifySignature_Mismatch(t *testing.T) {
	if err := VerifySignature([]byte("abc"), "k", "sha256=00ff"); err == nil {
		t.Fatalf("expected error for bad signature")
	}
	if err := VerifySignature([]byte("abc"), "k", ""); err == nil {
		t.Fatalf("expected error for missing header")
	}
	if err := VerifySignature([]byte("abc"), "", "sha256=00ff"); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	if err := VerifySignature([]byte("abc"), "k", "sha256=zz"); err == nil {
		t.Fatalf("expected error for bad encoding")
	}
}

func TestSignRoundTrip(t *testing.T) {
	body := []byte(`{"ref":"refs/heads/master","after":"deadbeef"}`)
	sig := Sign(body, "shared")
	if err := VerifySignature(body, "shared", sig); err != nil {
		t.Fatalf("Sign output did not verify: %v", err)
	}
	if err := VerifySignature([]byte("tampered"), "shared", sig); err == nil {
		t.Fatalf("expected tampered body to fail verification")
	}
}
