package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vitrinecms/vitrine/internal/model"
	"github.com/vitrinecms/vitrine/internal/store"
)

var (
	// ErrMissingCredentials is returned before any store lookup when email
	// or password is empty.
	ErrMissingCredentials = errors.New("email and password are required")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases share one error so login responses can't be used to
	// enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDeactivated is returned for a correct password against a
	// deactivated account. No token is issued.
	ErrAccountDeactivated = errors.New("account is deactivated")
)

// AuthService turns operator credentials into signed admin tokens.
type AuthService struct {
	store *store.Store
	codec *TokenCodec
	ttl   time.Duration
}

// NewAuthService creates an AuthService issuing tokens with the given ttl;
// ttl <= 0 means DefaultTokenTTL.
func NewAuthService(st *store.Store, codec *TokenCodec, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &AuthService{store: st, codec: codec, ttl: ttl}
}

// TokenTTL returns the lifetime of issued tokens, which also drives the
// session cookie's Max-Age.
func (s *AuthService) TokenTTL() time.Duration {
	return s.ttl
}

// Codec exposes the token codec for the authorization middleware.
func (s *AuthService) Codec() *TokenCodec {
	return s.codec
}

// Login authenticates an operator and issues an admin token. Single pass,
// no internal retries:
//
//  1. empty email or password → ErrMissingCredentials, no lookup
//  2. unknown email → ErrInvalidCredentials
//  3. deactivated account → ErrAccountDeactivated
//  4. wrong password → ErrInvalidCredentials
//  5. otherwise issue a token and update last_login_at (best effort: a
//     failed bookkeeping write never fails the login)
//
// Any other error is an infrastructure failure the caller maps to a 500.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.Admin, error) {
	if email == "" || password == "" {
		return "", nil, ErrMissingCredentials
	}

	admin, err := s.store.GetAdminByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("admin lookup: %w", err)
	}

	if !admin.IsActive {
		return "", nil, ErrAccountDeactivated
	}

	if !VerifyPassword(password, admin.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.codec.Issue(admin, s.ttl)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	// The token is already valid once issued; the last-login write is pure
	// bookkeeping and must not fail the login.
	_ = s.store.UpdateAdminLastLogin(ctx, admin.ID)

	return token, admin, nil
}
