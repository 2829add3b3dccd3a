package profile_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/ycyw/humanitieshub/internal/app/features/errors"
	"github.com/ycyw/humanitieshub/internal/app/features/profile"
	userstore "github.com/ycyw/humanitieshub/internal/app/store/users"
	"github.com/ycyw/humanitieshub/internal/domain/models"
	"github.com/ycyw/humanitieshub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*profile.Handler, *testutil.Fixtures, *userstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := profile.NewHandler(db, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	return handler, testutil.NewFixtures(t, db), userstore.New(db)
}

func asUser(u models.User) testutil.TestUser {
	return testutil.TestUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

func postForm(handler http.HandlerFunc, path string, form url.Values, user testutil.TestUser) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.WithUser(req, user)
	rec := httptest.NewRecorder()

	// Error paths render templates, which panic without booted templates
	func() {
		defer func() { recover() }()
		handler(rec, req)
	}()
	return rec
}

func TestHandleUpdate_SavesSchoolAndSubjects(t *testing.T) {
	handler, fixtures, users := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateStaff(ctx, "Ms. Thompson", "thompson@hk.ycef.com")
	school := models.Schools[0]

	rec := postForm(handler.HandleUpdate, "/profile", url.Values{
		"school":   {school},
		"subjects": {"History", "Geography"},
	}, asUser(u))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if location := rec.Header().Get("Location"); location != "/profile?saved=1" {
		t.Errorf("Location: got %q", location)
	}

	doc, err := users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if doc.School != school {
		t.Errorf("School: got %q, want %q", doc.School, school)
	}
	if len(doc.SubjectsTaught) != 2 {
		t.Errorf("SubjectsTaught: got %v", doc.SubjectsTaught)
	}
}

func TestHandleUpdate_DropsUnknownSubjects(t *testing.T) {
	handler, fixtures, users := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateStaff(ctx, "Ms. Thompson", "thompson@hk.ycef.com")

	postForm(handler.HandleUpdate, "/profile", url.Values{
		"subjects": {"History", "Astrology"},
	}, asUser(u))

	doc, err := users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(doc.SubjectsTaught) != 1 || doc.SubjectsTaught[0] != "History" {
		t.Errorf("SubjectsTaught: got %v, want [History]", doc.SubjectsTaught)
	}
}

func TestHandleSubscription_SubscribeAndUnsubscribe(t *testing.T) {
	handler, fixtures, users := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateStaff(ctx, "Ms. Thompson", "thompson@hk.ycef.com")

	rec := postForm(handler.HandleSubscription, "/profile/subscriptions", url.Values{
		"topic":  {"History"},
		"action": {"subscribe"},
	}, asUser(u))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	doc, err := users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !doc.IsSubscribed("History") {
		t.Error("expected a History subscription")
	}

	postForm(handler.HandleSubscription, "/profile/subscriptions", url.Values{
		"topic":  {"History"},
		"action": {"unsubscribe"},
	}, asUser(u))

	doc, err = users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if doc.IsSubscribed("History") {
		t.Error("expected the History subscription removed")
	}
}

func TestHandleSubscription_DuplicateSubscribeIsIdempotent(t *testing.T) {
	handler, fixtures, users := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateStaff(ctx, "Ms. Thompson", "thompson@hk.ycef.com")

	form := url.Values{"topic": {"Year 9"}, "action": {"subscribe"}}
	postForm(handler.HandleSubscription, "/profile/subscriptions", form, asUser(u))
	postForm(handler.HandleSubscription, "/profile/subscriptions", form, asUser(u))

	doc, err := users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(doc.Subscriptions) != 1 {
		t.Errorf("Subscriptions: got %v, want a single entry", doc.Subscriptions)
	}
}

func TestHandleSubscription_UnknownTopicRejected(t *testing.T) {
	handler, fixtures, users := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateStaff(ctx, "Ms. Thompson", "thompson@hk.ycef.com")

	postForm(handler.HandleSubscription, "/profile/subscriptions", url.Values{
		"topic":  {"Everything"},
		"action": {"subscribe"},
	}, asUser(u))

	doc, err := users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(doc.Subscriptions) != 0 {
		t.Errorf("Subscriptions: got %v, want none", doc.Subscriptions)
	}
}
