package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/vitrinecms/vitrine/internal/model"
	"github.com/vitrinecms/vitrine/internal/server/middleware"
	"github.com/vitrinecms/vitrine/internal/service"
)

// AuthHandler serves the admin session endpoints: login, logout, and token
// introspection.
type AuthHandler struct {
	auth          *service.AuthService
	secureCookies bool
}

// NewAuthHandler creates an AuthHandler. secureCookies should be true in
// production so the session cookie is only sent over HTTPS.
func NewAuthHandler(auth *service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: auth, secureCookies: secureCookies}
}

// loginRequest is the expected payload for the Login endpoint.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is the response payload for a successful login.
type loginResponse struct {
	Success bool              `json:"success"`
	Token   string            `json:"token"`
	Admin   model.PublicAdmin `json:"admin"`
}

// Login authenticates the operator and issues an admin token, returned both
// in the body and as an HTTP-only cookie.
// POST /api/v1/admin/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, admin, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			writeError(w, http.StatusBadRequest, "Email and password are required")
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, service.ErrAccountDeactivated):
			writeError(w, http.StatusUnauthorized, "Account is deactivated")
		default:
			writeError(w, http.StatusInternalServerError, "Authentication error")
		}
		return
	}

	http.SetCookie(w, h.sessionCookie(token, h.auth.TokenTTL()))
	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Token:   token,
		Admin:   admin.Public(),
	})
}

// Logout clears the session cookie. Tokens are stateless, so the server keeps
// no session to invalidate; clients should also discard the token itself.
// POST /api/v1/admin/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.deletionCookie())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// Me returns the identity attached by the authorization gate. It lets the
// admin UI restore a session from the cookie alone.
// GET /api/v1/admin/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetAdmin(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, middleware.ErrNoToken.Error())
		return
	}
	writeJSON(w, http.StatusOK, model.PublicAdmin{
		ID:    claims.AdminID,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	})
}

// sessionCookie builds the admin-token cookie: HTTP-only, SameSite=Lax,
// Secure in production, Max-Age matching the token ttl.
func (h *AuthHandler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     service.AdminTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().UTC().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		Secure:   h.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// deletionCookie overwrites the session cookie so the browser drops it.
func (h *AuthHandler) deletionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     service.AdminTokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
		Secure:   h.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
