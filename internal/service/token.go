package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vitrinecms/vitrine/internal/model"
)

// DefaultTokenTTL is how long an issued admin token stays valid. There is no
// revocation list; a token lives until it expires.
const DefaultTokenTTL = 30 * 24 * time.Hour

const tokenIssuer = "vitrine"

// ErrInvalidToken is returned by Parse for every rejection: bad signature,
// malformed payload, or expiry. The causes are deliberately not distinguished
// so callers can't leak them to clients.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity embedded in an admin token. Fields are copied from
// the admin record at issuance and may go stale if the record changes later.
type Claims struct {
	AdminID int64  `json:"admin_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies admin tokens with an HMAC-SHA256 secret.
// It performs no I/O and is safe for concurrent use.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a codec from the server signing secret. An empty
// secret is a configuration error: the process must refuse to start rather
// than sign tokens with a guessable key.
func NewTokenCodec(secret string) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("token signing secret is not configured")
	}
	return &TokenCodec{secret: []byte(secret)}, nil
}

// Issue creates a signed token carrying the admin's identity, valid for ttl.
func (c *TokenCodec) Issue(admin *model.Admin, ttl time.Duration) (string, error) {
	now := time.Now()
	role := admin.Role
	if role == "" {
		role = model.DefaultAdminRole
	}
	claims := Claims{
		AdminID: admin.ID,
		Email:   admin.Email,
		Name:    admin.Name,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Parse verifies a token's signature and expiry and returns its claims.
// Any failure yields ErrInvalidToken.
func (c *TokenCodec) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
