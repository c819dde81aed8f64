package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vitrinecms/vitrine/internal/model"
	"github.com/vitrinecms/vitrine/internal/service"
)

func newTestCodec(t *testing.T) *service.TokenCodec {
	t.Helper()
	codec, err := service.NewTokenCodec("test-secret")
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	return codec
}

func issueTestToken(t *testing.T, codec *service.TokenCodec, ttl time.Duration) string {
	t.Helper()
	token, err := codec.Issue(&model.Admin{
		ID:    7,
		Email: "admin@example.com",
		Name:  "Site Admin",
		Role:  "admin",
	}, ttl)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return token
}

func TestAuthorize(t *testing.T) {
	codec := newTestCodec(t)
	valid := issueTestToken(t, codec, time.Hour)
	expired := issueTestToken(t, codec, -time.Minute)

	tests := []struct {
		name         string
		cookieHeader string
		authHeader   string
		wantErr      error
	}{
		{
			name:    "no token",
			wantErr: ErrNoToken,
		},
		{
			name:         "valid cookie",
			cookieHeader: "admin-token=" + valid,
		},
		{
			name:       "valid bearer",
			authHeader: "Bearer " + valid,
		},
		{
			name:         "expired cookie",
			cookieHeader: "admin-token=" + expired,
			wantErr:      ErrInvalidToken,
		},
		{
			name:       "garbage bearer",
			authHeader: "Bearer not-a-token",
			wantErr:    ErrInvalidToken,
		},
		{
			name:       "malformed auth header",
			authHeader: valid,
			wantErr:    ErrNoToken,
		},
		{
			// The cookie is authoritative: a bad cookie fails the gate even
			// when the bearer header carries a perfectly good token.
			name:         "bad cookie shadows valid bearer",
			cookieHeader: "admin-token=tampered",
			authHeader:   "Bearer " + valid,
			wantErr:      ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := Authorize(tt.cookieHeader, tt.authHeader, codec)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got err %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if claims == nil {
					t.Fatal("expected claims on success")
				}
				if claims.AdminID != 7 {
					t.Errorf("AdminID = %d, want 7", claims.AdminID)
				}
			} else if claims != nil {
				t.Error("expected nil claims on failure")
			}
		})
	}
}

func TestRequireAdminRejectsWithUniformBody(t *testing.T) {
	codec := newTestCodec(t)

	handlerRan := false
	guarded := RequireAdmin(codec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerRan = true
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		cookie     string
		auth       string
		wantReason string
	}{
		{
			name:       "no token",
			wantReason: "No authentication token provided",
		},
		{
			name:       "bad token",
			cookie:     "admin-token=tampered",
			wantReason: "Invalid or expired token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerRan = false
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/me", nil)
			if tt.cookie != "" {
				req.Header.Set("Cookie", tt.cookie)
			}
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()

			guarded.ServeHTTP(rec, req)

			if handlerRan {
				t.Error("handler ran despite failed gate")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal body: %v", err)
			}
			if body["error"] != tt.wantReason {
				t.Errorf("error = %q, want %q", body["error"], tt.wantReason)
			}
		})
	}
}

func TestRequireAdminAttachesClaims(t *testing.T) {
	codec := newTestCodec(t)
	token := issueTestToken(t, codec, time.Hour)

	var got *service.Claims
	guarded := RequireAdmin(codec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetAdmin(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/me", nil)
	req.Header.Set("Cookie", "admin-token="+token)
	rec := httptest.NewRecorder()

	guarded.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got == nil {
		t.Fatal("expected claims in request context")
	}
	if got.Email != "admin@example.com" {
		t.Errorf("Email = %q, want admin@example.com", got.Email)
	}
}

func TestGetAdminWithoutGate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetAdmin(req.Context()) != nil {
		t.Error("expected nil claims for unauthenticated context")
	}
}
