package service

import (
	"strings"
	"testing"
)

func TestHashPasswordProducesDistinctHashes(t *testing.T) {
	h1, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	// bcrypt salts internally, so two hashes of the same password differ.
	if h1 == h2 {
		t.Error("expected distinct hashes for the same password")
	}
	if !strings.HasPrefix(h1, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", h1)
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !VerifyPassword("s3cret-password", hash) {
		t.Error("expected correct password to verify")
	}
	if VerifyPassword("wrong-password", hash) {
		t.Error("expected wrong password to fail verification")
	}
	if VerifyPassword("s3cret-password", "not-a-hash") {
		t.Error("expected garbage hash to fail verification")
	}
	if VerifyPassword("", hash) {
		t.Error("expected empty password to fail verification")
	}
}
