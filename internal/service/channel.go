package service

import (
	"net/url"
	"strings"
)

// AdminTokenCookie is the cookie name carrying the admin token.
const AdminTokenCookie = "admin-token"

// ParseCookieHeader splits a raw Cookie header into a name→value map.
// It deliberately works on the plain string rather than an *http.Request so
// extraction stays testable without building requests. Values are
// URL-decoded; undecodable values are kept verbatim.
func ParseCookieHeader(raw string) map[string]string {
	cookies := map[string]string{}
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, found := strings.Cut(part, "=")
		if !found || name == "" {
			continue
		}
		if decoded, err := url.QueryUnescape(value); err == nil {
			value = decoded
		}
		cookies[name] = value
	}
	return cookies
}

// TokenFromCookieHeader returns the admin token from a raw Cookie header,
// or "" when the cookie is absent.
func TokenFromCookieHeader(raw string) string {
	return ParseCookieHeader(raw)[AdminTokenCookie]
}

// TokenFromAuthHeader returns the bearer token from an Authorization header.
// The header must be exactly "Bearer <token>"; any other shape yields "".
func TokenFromAuthHeader(raw string) string {
	parts := strings.Split(raw, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// ExtractToken locates the admin token on a request given its Cookie and
// Authorization headers. The cookie wins; the bearer header is consulted
// only when no cookie token exists.
func ExtractToken(cookieHeader, authHeader string) string {
	if token := TokenFromCookieHeader(cookieHeader); token != "" {
		return token
	}
	return TokenFromAuthHeader(authHeader)
}
