package login_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/ycyw/humanitieshub/internal/app/features/errors"
	"github.com/ycyw/humanitieshub/internal/app/features/login"
	"github.com/ycyw/humanitieshub/internal/app/system/auth"
	"github.com/ycyw/humanitieshub/internal/domain/models"
	"github.com/ycyw/humanitieshub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const testDomain = "hk.ycef.com"

func newTestHandler(t *testing.T) (*login.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)

	// Create a session manager for testing (dev mode, weak key allowed)
	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	handler := login.NewHandler(db, sessionMgr, errLog, testDomain, "superadmin@ycyw.example", false, logger)
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

func postLogin(handler *login.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()

	// Failure paths render a template, which panics without booted templates
	func() {
		defer func() { recover() }()
		handler.HandleLoginPost(rec, req)
	}()
	return rec
}

func hasSessionCookie(rec *httptest.ResponseRecorder) bool {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" && c.Value != "" {
			return true
		}
	}
	return false
}

func TestHandleLoginPost_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUserWithPassword(ctx, "Ms. Thompson", "thompson@hk.ycef.com",
		models.RoleStaff, true, "correct horse battery")

	rec := postLogin(handler, url.Values{
		"email":    {"thompson@hk.ycef.com"},
		"password": {"correct horse battery"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if location := rec.Header().Get("Location"); location != "/dashboard" {
		t.Errorf("Location: got %q, want %q", location, "/dashboard")
	}
	if !hasSessionCookie(rec) {
		t.Error("expected session cookie to be set")
	}
}

func TestHandleLoginPost_WithReturnURL(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUserWithPassword(ctx, "Ms. Thompson", "thompson@hk.ycef.com",
		models.RoleStaff, true, "correct horse battery")

	rec := postLogin(handler, url.Values{
		"email":    {"thompson@hk.ycef.com"},
		"password": {"correct horse battery"},
		"return":   {"/resources"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if location := rec.Header().Get("Location"); location != "/resources" {
		t.Errorf("Location: got %q, want %q", location, "/resources")
	}
}

func TestHandleLoginPost_WrongPassword(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUserWithPassword(ctx, "Ms. Thompson", "thompson@hk.ycef.com",
		models.RoleStaff, true, "correct horse battery")

	rec := postLogin(handler, url.Values{
		"email":    {"thompson@hk.ycef.com"},
		"password": {"not the password"},
	})

	if hasSessionCookie(rec) {
		t.Error("session cookie must not be set for a wrong password")
	}
}

func TestHandleLoginPost_UnapprovedUser(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUserWithPassword(ctx, "New Joiner", "new@hk.ycef.com",
		models.RoleStaff, false, "correct horse battery")

	rec := postLogin(handler, url.Values{
		"email":    {"new@hk.ycef.com"},
		"password": {"correct horse battery"},
	})

	if rec.Code == http.StatusSeeOther {
		t.Error("unapproved user must not be signed in")
	}
	if hasSessionCookie(rec) {
		t.Error("session cookie must not be set before approval")
	}
}

func TestHandleLoginPost_WrongDomain(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUserWithPassword(ctx, "Outsider", "outsider@gmail.com",
		models.RoleStaff, true, "correct horse battery")

	rec := postLogin(handler, url.Values{
		"email":    {"outsider@gmail.com"},
		"password": {"correct horse battery"},
	})

	if hasSessionCookie(rec) {
		t.Error("session cookie must not be set for a non-institutional email")
	}
}

func TestHandleLoginPost_SuperAdminBypassesDomain(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// The configured super-admin email is outside the institutional domain
	fixtures.CreateUserWithPassword(ctx, "Platform Admin", "superadmin@ycyw.example",
		models.RoleAdmin, true, "correct horse battery")

	rec := postLogin(handler, url.Values{
		"email":    {"SuperAdmin@ycyw.example"},
		"password": {"correct horse battery"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if !hasSessionCookie(rec) {
		t.Error("expected session cookie for the super-admin")
	}
}

func TestHandleLoginPost_NonexistentEmail(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := postLogin(handler, url.Values{
		"email":    {"nobody@hk.ycef.com"},
		"password": {"whatever"},
	})

	if hasSessionCookie(rec) {
		t.Error("session cookie must not be set for a nonexistent user")
	}
}

func TestHandleLoginPost_CaseInsensitiveEmail(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUserWithPassword(ctx, "Ms. Thompson", "thompson@hk.ycef.com",
		models.RoleStaff, true, "correct horse battery")

	rec := postLogin(handler, url.Values{
		"email":    {"  THOMPSON@HK.YCEF.COM  "},
		"password": {"correct horse battery"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d (email should be normalized)", http.StatusSeeOther, rec.Code)
	}
}

func postSignup(handler *login.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/login/signup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	func() {
		defer func() { recover() }()
		handler.HandleSignupPost(rec, req)
	}()
	return rec
}

func TestHandleSignupPost_CreatesUnapprovedUser(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := postSignup(handler, url.Values{
		"name":             {"Mr. Davies"},
		"email":            {"davies@hk.ycef.com"},
		"school":           {"Hong Kong"},
		"password":         {"fieldwork2026"},
		"confirm_password": {"fieldwork2026"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if location := rec.Header().Get("Location"); location != "/login?signup=1" {
		t.Errorf("Location: got %q", location)
	}

	var u models.User
	err := fixtures.DB().Collection("users").
		FindOne(ctx, bson.M{"email_ci": "davies@hk.ycef.com"}).Decode(&u)
	if err != nil {
		t.Fatalf("expected signup user to exist: %v", err)
	}
	if u.IsApproved {
		t.Error("signup must start unapproved")
	}
	if u.Role != models.RoleStaff {
		t.Errorf("Role: got %q, want %q", u.Role, models.RoleStaff)
	}
	if u.PasswordHash == "" {
		t.Error("expected password hash to be stored")
	}
}

func TestHandleSignupPost_WrongDomainRejected(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	postSignup(handler, url.Values{
		"name":             {"Outsider"},
		"email":            {"outsider@gmail.com"},
		"password":         {"fieldwork2026"},
		"confirm_password": {"fieldwork2026"},
	})

	count, err := fixtures.DB().Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 0 {
		t.Error("non-institutional signup must not create a user")
	}
}

func TestHandleSignupPost_PasswordMismatch(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	postSignup(handler, url.Values{
		"name":             {"Mr. Davies"},
		"email":            {"davies@hk.ycef.com"},
		"password":         {"fieldwork2026"},
		"confirm_password": {"fieldwork2027"},
	})

	count, err := fixtures.DB().Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 0 {
		t.Error("mismatched passwords must not create a user")
	}
}

func TestHandleSignupPost_DuplicateEmail(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateStaff(ctx, "Ms. Thompson", "thompson@hk.ycef.com")

	postSignup(handler, url.Values{
		"name":             {"Impostor"},
		"email":            {"THOMPSON@hk.ycef.com"},
		"password":         {"fieldwork2026"},
		"confirm_password": {"fieldwork2026"},
	})

	count, err := fixtures.DB().Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("duplicate signup must not create a second user, got %d", count)
	}
}

func TestHandleLoginPost_ThrottledAfterRepeatedFailures(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUserWithPassword(ctx, "Ms. Thompson", "thompson@hk.ycef.com",
		models.RoleStaff, true, "correct horse battery")

	for i := 0; i < 5; i++ {
		postLogin(handler, url.Values{
			"email":    {"thompson@hk.ycef.com"},
			"password": {"wrong guess"},
		})
	}

	// The per-email window is exhausted, so even the right password is
	// rejected until it expires.
	rec := postLogin(handler, url.Values{
		"email":    {"thompson@hk.ycef.com"},
		"password": {"correct horse battery"},
	})
	if hasSessionCookie(rec) {
		t.Error("throttled attempt must not create a session")
	}
}
