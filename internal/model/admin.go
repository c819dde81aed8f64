package model

import "time"

// Admin represents the site operator who manages portfolio content through
// the admin API. Passwords are stored as bcrypt hashes.
type Admin struct {
	ID           int64      `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"` // bcrypt hash, never expose
	Name         string     `json:"name" db:"name"`
	Role         string     `json:"role" db:"role"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// DefaultAdminRole is assigned when an admin record carries no explicit role.
const DefaultAdminRole = "admin"

// PublicAdmin is the subset of Admin fields safe to return from the API.
type PublicAdmin struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Public returns the admin's API-safe representation.
func (a *Admin) Public() PublicAdmin {
	role := a.Role
	if role == "" {
		role = DefaultAdminRole
	}
	return PublicAdmin{ID: a.ID, Email: a.Email, Name: a.Name, Role: role}
}
