package userinfo_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ycyw/humanitieshub/internal/app/features/userinfo"
	"github.com/ycyw/humanitieshub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestServeUserInfo_Unauthenticated(t *testing.T) {
	handler := userinfo.NewHandler()

	req := httptest.NewRequest("GET", "/api/user", nil)
	rec := httptest.NewRecorder()

	handler.ServeUserInfo(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json")
	}

	var response map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response JSON: %v", err)
	}
	if isAuth, ok := response["isAuthenticated"].(bool); !ok || isAuth {
		t.Errorf("isAuthenticated: got %v, want false", response["isAuthenticated"])
	}
	if name, _ := response["name"].(string); name != "" {
		t.Errorf("name: got %q, want empty string", name)
	}
}

func TestServeUserInfo_Authenticated(t *testing.T) {
	handler := userinfo.NewHandler()

	sessionUser := &auth.SessionUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Ms. Thompson",
		Email: "thompson@hk.ycef.com",
		Role:  "staff",
	}

	req := httptest.NewRequest("GET", "/api/user", nil)
	req = auth.WithTestUser(req, sessionUser)
	rec := httptest.NewRecorder()

	handler.ServeUserInfo(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response JSON: %v", err)
	}
	if isAuth, ok := response["isAuthenticated"].(bool); !ok || !isAuth {
		t.Errorf("isAuthenticated: got %v, want true", response["isAuthenticated"])
	}
	if name, _ := response["name"].(string); name != "Ms. Thompson" {
		t.Errorf("name: got %q, want %q", name, "Ms. Thompson")
	}
	if email, _ := response["email"].(string); email != "thompson@hk.ycef.com" {
		t.Errorf("email: got %q, want %q", email, "thompson@hk.ycef.com")
	}
	if role, _ := response["role"].(string); role != "staff" {
		t.Errorf("role: got %q, want %q", role, "staff")
	}
}
