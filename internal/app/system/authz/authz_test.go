package authz_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ycyw/humanitieshub/internal/app/system/auth"
	"github.com/ycyw/humanitieshub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func reqWithUser(id, name, role string) *http.Request {
	r := httptest.NewRequest("GET", "/", nil)
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:    id,
		Name:  name,
		Email: "test@hk.ycef.com",
		Role:  role,
	})
}

func TestUserCtx_NoUser(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)

	role, name, userID, ok := authz.UserCtx(r)

	if ok {
		t.Error("expected ok=false with no user")
	}
	if role != "visitor" {
		t.Errorf("expected role 'visitor', got %q", role)
	}
	if name != "" {
		t.Errorf("expected empty name, got %q", name)
	}
	if userID != primitive.NilObjectID {
		t.Errorf("expected NilObjectID, got %v", userID)
	}
}

func TestUserCtx_ValidUser(t *testing.T) {
	r := reqWithUser("507f1f77bcf86cd799439011", "Ms. Thompson", "staff")

	role, name, userID, ok := authz.UserCtx(r)

	if !ok {
		t.Fatal("expected ok=true for valid user")
	}
	if role != "staff" {
		t.Errorf("expected role 'staff', got %q", role)
	}
	if name != "Ms. Thompson" {
		t.Errorf("expected name 'Ms. Thompson', got %q", name)
	}
	want, _ := primitive.ObjectIDFromHex("507f1f77bcf86cd799439011")
	if userID != want {
		t.Errorf("expected userID %v, got %v", want, userID)
	}
}

func TestUserCtx_RoleLowercased(t *testing.T) {
	r := reqWithUser("507f1f77bcf86cd799439011", "Test", "ADMIN")

	role, _, _, ok := authz.UserCtx(r)

	if !ok {
		t.Fatal("expected ok=true")
	}
	if role != "admin" {
		t.Errorf("expected lowercased role 'admin', got %q", role)
	}
}

func TestUserCtx_MalformedID_FailsClosed(t *testing.T) {
	r := reqWithUser("not-a-valid-objectid", "Test", "admin")

	role, _, userID, ok := authz.UserCtx(r)

	if ok {
		t.Error("expected ok=false for malformed user ID")
	}
	if role != "visitor" {
		t.Errorf("expected role 'visitor', got %q", role)
	}
	if userID != primitive.NilObjectID {
		t.Errorf("expected NilObjectID, got %v", userID)
	}
}

func TestIsAdmin(t *testing.T) {
	if !authz.IsAdmin(reqWithUser("507f1f77bcf86cd799439011", "A", "admin")) {
		t.Error("expected IsAdmin=true for admin")
	}
	if authz.IsAdmin(reqWithUser("507f1f77bcf86cd799439011", "S", "staff")) {
		t.Error("expected IsAdmin=false for staff")
	}
	if authz.IsAdmin(httptest.NewRequest("GET", "/", nil)) {
		t.Error("expected IsAdmin=false with no user")
	}
}

func TestIsStaff(t *testing.T) {
	if !authz.IsStaff(reqWithUser("507f1f77bcf86cd799439011", "S", "staff")) {
		t.Error("expected IsStaff=true for staff")
	}
	if authz.IsStaff(reqWithUser("507f1f77bcf86cd799439011", "A", "admin")) {
		t.Error("expected IsStaff=false for admin")
	}
}

func TestIsSuperAdmin(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r = auth.WithTestUser(r, &auth.SessionUser{
		ID:           "507f1f77bcf86cd799439011",
		Name:         "Kelsey Lowe",
		Role:         "admin",
		IsSuperAdmin: true,
	})

	if !authz.IsSuperAdmin(r) {
		t.Error("expected IsSuperAdmin=true")
	}
	if authz.IsSuperAdmin(reqWithUser("507f1f77bcf86cd799439011", "A", "admin")) {
		t.Error("expected IsSuperAdmin=false for plain admin")
	}
}

func TestHasAnyRole(t *testing.T) {
	r := reqWithUser("507f1f77bcf86cd799439011", "S", "staff")

	if !authz.HasAnyRole(r, "admin", "staff") {
		t.Error("expected HasAnyRole to match staff")
	}
	if authz.HasAnyRole(r, "admin") {
		t.Error("expected HasAnyRole to reject staff for admin-only")
	}
	if authz.HasAnyRole(httptest.NewRequest("GET", "/", nil), "staff") {
		t.Error("expected HasAnyRole=false with no user")
	}
}

func TestHasAnyRole_TrimsAndLowercases(t *testing.T) {
	r := reqWithUser("507f1f77bcf86cd799439011", "S", "Staff")

	if !authz.HasAnyRole(r, "  STAFF  ") {
		t.Error("expected HasAnyRole to normalize wanted roles")
	}
}

func TestRole(t *testing.T) {
	role, ok := authz.Role(reqWithUser("507f1f77bcf86cd799439011", "A", "Admin"))
	if !ok || role != "admin" {
		t.Errorf("expected (admin, true), got (%q, %v)", role, ok)
	}

	role, ok = authz.Role(httptest.NewRequest("GET", "/", nil))
	if ok {
		t.Errorf("expected ok=false with no user, got role %q", role)
	}
}
