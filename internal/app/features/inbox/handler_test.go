package inbox_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	uierrors "github.com/ycyw/humanitieshub/internal/app/features/errors"
	"github.com/ycyw/humanitieshub/internal/app/features/inbox"
	userstore "github.com/ycyw/humanitieshub/internal/app/store/users"
	"github.com/ycyw/humanitieshub/internal/domain/models"
	"github.com/ycyw/humanitieshub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*inbox.Handler, *testutil.Fixtures, *userstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := inbox.NewHandler(db, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
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

func post(handler http.HandlerFunc, path string, user testutil.TestUser, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, nil)
	req = testutil.WithUser(req, user)
	if id != "" {
		req = testutil.WithChiURLParam(req, "id", id)
	}
	rec := httptest.NewRecorder()

	// Error paths render templates, which panic without booted templates
	func() {
		defer func() { recover() }()
		handler(rec, req)
	}()
	return rec
}

func pushNotification(t *testing.T, users *userstore.Store, u models.User, title string) models.Notification {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	n := models.Notification{
		ID:         uuid.NewString(),
		Type:       models.NotificationSystem,
		Title:      title,
		Message:    "message body",
		Timestamp:  time.Now().UTC(),
		TargetType: models.TargetResource,
	}
	if err := users.PushNotification(ctx, u.ID, n); err != nil {
		t.Fatalf("PushNotification failed: %v", err)
	}
	return n
}

func TestHandleMarkRead_MarksOnlyTargetEntry(t *testing.T) {
	handler, fixtures, users := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateStaff(ctx, "Ms. Thompson", "thompson@hk.ycef.com")
	first := pushNotification(t, users, u, "first")
	pushNotification(t, users, u, "second")

	rec := post(handler.HandleMarkRead, "/inbox/"+first.ID+"/read", asUser(u), first.ID)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	doc, err := users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	for _, n := range doc.Notifications {
		if n.ID == first.ID && !n.IsRead {
			t.Errorf("expected %q to be read", n.Title)
		}
		if n.ID != first.ID && n.IsRead {
			t.Errorf("expected %q to stay unread", n.Title)
		}
	}

	unread, err := users.UnreadCount(ctx, u.ID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if unread != 1 {
		t.Errorf("UnreadCount: got %d, want 1", unread)
	}
}

func TestHandleMarkRead_UnknownIDIsNoOp(t *testing.T) {
	handler, fixtures, users := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateStaff(ctx, "Ms. Thompson", "thompson@hk.ycef.com")
	pushNotification(t, users, u, "only")

	rec := post(handler.HandleMarkRead, "/inbox/"+uuid.NewString()+"/read", asUser(u), uuid.NewString())
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	doc, err := users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if doc.Notifications[0].IsRead {
		t.Error("expected the existing notification to stay unread")
	}
}

func TestHandleClear_EmptiesInbox(t *testing.T) {
	handler, fixtures, users := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateStaff(ctx, "Ms. Thompson", "thompson@hk.ycef.com")
	pushNotification(t, users, u, "first")
	pushNotification(t, users, u, "second")

	rec := post(handler.HandleClear, "/inbox/clear", asUser(u), "")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	doc, err := users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(doc.Notifications) != 0 {
		t.Errorf("expected an empty inbox, got %d entries", len(doc.Notifications))
	}
}

func TestServeInbox_NewestFirst(t *testing.T) {
	handler, fixtures, users := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateStaff(ctx, "Ms. Thompson", "thompson@hk.ycef.com")
	pushNotification(t, users, u, "older")
	pushNotification(t, users, u, "newer")

	doc, err := users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if doc.Notifications[0].Title != "newer" {
		t.Errorf("expected the newest entry first, got %q", doc.Notifications[0].Title)
	}

	// The page renders whatever order the store returns.
	req := testutil.WithUser(httptest.NewRequest("GET", "/inbox", nil), asUser(u))
	rec := httptest.NewRecorder()
	func() {
		defer func() { recover() }()
		handler.ServeInbox(rec, req)
	}()
	if rec.Code >= 400 {
		t.Errorf("expected the inbox to render, got status %d", rec.Code)
	}
}
