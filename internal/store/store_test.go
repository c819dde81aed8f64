package store

import (
	"context"
	"errors"
	"testing"

	"github.com/vitrinecms/vitrine/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestCreateAndGetAdmin(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	admin := &model.Admin{
		Email:        "Admin@Example.COM",
		PasswordHash: "$2a$10$fakehash",
		Name:         "Site Admin",
		IsActive:     true,
	}
	if err := st.CreateAdmin(ctx, admin); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if admin.ID == 0 {
		t.Error("expected ID to be populated")
	}
	if admin.Email != "admin@example.com" {
		t.Errorf("email not lowercased: %q", admin.Email)
	}
	if admin.Role != model.DefaultAdminRole {
		t.Errorf("Role = %q, want default %q", admin.Role, model.DefaultAdminRole)
	}

	got, err := st.GetAdminByEmail(ctx, "ADMIN@example.com")
	if err != nil {
		t.Fatalf("GetAdminByEmail: %v", err)
	}
	if got.ID != admin.ID {
		t.Errorf("ID = %d, want %d", got.ID, admin.ID)
	}
	if got.PasswordHash != "$2a$10$fakehash" {
		t.Errorf("PasswordHash = %q", got.PasswordHash)
	}
	if got.LastLoginAt != nil {
		t.Error("expected nil LastLoginAt before any login")
	}
}

func TestGetAdminByEmailNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.GetAdminByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestHasAnyAdmin(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	has, err := st.HasAnyAdmin(ctx)
	if err != nil {
		t.Fatalf("HasAnyAdmin: %v", err)
	}
	if has {
		t.Error("expected no admins in a fresh store")
	}

	if err := st.CreateAdmin(ctx, &model.Admin{
		Email:        "admin@example.com",
		PasswordHash: "hash",
		IsActive:     true,
	}); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	has, err = st.HasAnyAdmin(ctx)
	if err != nil {
		t.Fatalf("HasAnyAdmin: %v", err)
	}
	if !has {
		t.Error("expected HasAnyAdmin true after create")
	}
}

func TestUpdateAdminLastLogin(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	admin := &model.Admin{Email: "admin@example.com", PasswordHash: "hash", IsActive: true}
	if err := st.CreateAdmin(ctx, admin); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	if err := st.UpdateAdminLastLogin(ctx, admin.ID); err != nil {
		t.Fatalf("UpdateAdminLastLogin: %v", err)
	}

	got, err := st.GetAdminByEmail(ctx, admin.Email)
	if err != nil {
		t.Fatalf("GetAdminByEmail: %v", err)
	}
	if got.LastLoginAt == nil {
		t.Error("expected LastLoginAt to be set")
	}
}

func TestSetAdminActive(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	admin := &model.Admin{Email: "admin@example.com", PasswordHash: "hash", IsActive: true}
	if err := st.CreateAdmin(ctx, admin); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	if err := st.SetAdminActive(ctx, admin.ID, false); err != nil {
		t.Fatalf("SetAdminActive: %v", err)
	}
	got, _ := st.GetAdminByEmail(ctx, admin.Email)
	if got.IsActive {
		t.Error("expected IsActive false after deactivation")
	}

	if err := st.SetAdminActive(ctx, admin.ID, true); err != nil {
		t.Fatalf("SetAdminActive: %v", err)
	}
	got, _ = st.GetAdminByEmail(ctx, admin.Email)
	if !got.IsActive {
		t.Error("expected IsActive true after reactivation")
	}
}

func TestListAdmins(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if err := st.CreateAdmin(ctx, &model.Admin{Email: email, PasswordHash: "hash", IsActive: true}); err != nil {
			t.Fatalf("CreateAdmin(%s): %v", email, err)
		}
	}

	admins, err := st.ListAdmins(ctx)
	if err != nil {
		t.Fatalf("ListAdmins: %v", err)
	}
	if len(admins) != 2 {
		t.Fatalf("got %d admins, want 2", len(admins))
	}
}
