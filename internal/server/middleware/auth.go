package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vitrinecms/vitrine/internal/service"
)

type contextKeyAuth string

// AdminClaimsKey is the context key for the authenticated admin identity.
const AdminClaimsKey contextKeyAuth = "admin_claims"

// Gate failure reasons. The middleware writes these strings verbatim as the
// "error" field of the 401 body, so every guarded endpoint fails identically.
var (
	ErrNoToken      = errors.New("No authentication token provided")
	ErrInvalidToken = errors.New("Invalid or expired token")
)

// Authorize is the authorization gate as a pure function of the request's
// Cookie and Authorization headers. It extracts a candidate token (cookie
// first, bearer header as fallback) and verifies it with the codec. It
// performs no I/O and never touches the admin store: once a token exists,
// authorization is fully offline.
func Authorize(cookieHeader, authHeader string, codec *service.TokenCodec) (*service.Claims, error) {
	token := service.ExtractToken(cookieHeader, authHeader)
	if token == "" {
		return nil, ErrNoToken
	}
	claims, err := codec.Parse(token)
	if err != nil {
		// Expired, tampered, and malformed all collapse into one reason;
		// the caller must not learn which.
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RequireAdmin returns an HTTP middleware guarding privileged routes. It runs
// the authorization gate before the handler: on failure it short-circuits
// with a 401 so no mutation can execute, on success it attaches the admin
// claims to the request context.
func RequireAdmin(codec *service.TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := Authorize(r.Header.Get("Cookie"), r.Header.Get("Authorization"), codec)
			if err != nil {
				writeAuthError(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), AdminClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdmin extracts the authenticated admin claims from the context.
// Returns nil for an unauthenticated request.
func GetAdmin(ctx context.Context) *service.Claims {
	if c, ok := ctx.Value(AdminClaimsKey).(*service.Claims); ok {
		return c
	}
	return nil
}

func writeAuthError(w http.ResponseWriter, reason error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": reason.Error()})
}
