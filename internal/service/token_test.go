package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vitrinecms/vitrine/internal/model"
)

func testAdmin() *model.Admin {
	return &model.Admin{
		ID:       1,
		Email:    "admin@example.com",
		Name:     "Site Admin",
		Role:     "admin",
		IsActive: true,
	}
}

func TestNewTokenCodecRequiresSecret(t *testing.T) {
	if _, err := NewTokenCodec(""); err == nil {
		t.Fatal("expected error for empty secret")
	}
	if _, err := NewTokenCodec("a-real-secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	codec, err := NewTokenCodec("test-secret")
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}

	token, err := codec.Issue(testAdmin(), time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := codec.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.AdminID != 1 {
		t.Errorf("AdminID = %d, want 1", claims.AdminID)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("Email = %q, want admin@example.com", claims.Email)
	}
	if claims.Name != "Site Admin" {
		t.Errorf("Name = %q, want Site Admin", claims.Name)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, want admin", claims.Role)
	}
	if claims.Issuer != "vitrine" {
		t.Errorf("Issuer = %q, want vitrine", claims.Issuer)
	}
}

func TestIssueDefaultsEmptyRole(t *testing.T) {
	codec, _ := NewTokenCodec("test-secret")

	admin := testAdmin()
	admin.Role = ""
	token, err := codec.Issue(admin, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := codec.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Role != model.DefaultAdminRole {
		t.Errorf("Role = %q, want %q", claims.Role, model.DefaultAdminRole)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	codec, _ := NewTokenCodec("test-secret")

	token, err := codec.Issue(testAdmin(), -time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := codec.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Parse expired token: got %v, want ErrInvalidToken", err)
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	codec, _ := NewTokenCodec("test-secret")

	token, err := codec.Issue(testAdmin(), time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip one byte in the payload segment; the signature no longer matches.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := codec.Parse(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Parse tampered token: got %v, want ErrInvalidToken", err)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer, _ := NewTokenCodec("secret-one")
	verifier, _ := NewTokenCodec("secret-two")

	token, err := issuer.Issue(testAdmin(), time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := verifier.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Parse with wrong secret: got %v, want ErrInvalidToken", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	codec, _ := NewTokenCodec("test-secret")

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := codec.Parse(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Parse(%q): got %v, want ErrInvalidToken", tok, err)
		}
	}
}
