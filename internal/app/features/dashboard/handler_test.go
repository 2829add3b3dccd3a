package dashboard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ycyw/humanitieshub/internal/app/features/dashboard"
	uierrors "github.com/ycyw/humanitieshub/internal/app/features/errors"
	userstore "github.com/ycyw/humanitieshub/internal/app/store/users"
	"github.com/ycyw/humanitieshub/internal/domain/models"
	"github.com/ycyw/humanitieshub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*dashboard.Handler, *testutil.Fixtures, *userstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := dashboard.NewHandler(db, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	return handler, testutil.NewFixtures(t, db), userstore.New(db)
}

func serve(handler *dashboard.Handler, user testutil.TestUser) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/dashboard", nil)
	req = testutil.WithUser(req, user)
	rec := httptest.NewRecorder()

	// Render panics without booted templates; the DB work happens first.
	func() {
		defer func() { recover() }()
		handler.ServeDashboard(rec, req)
	}()
	return rec
}

func TestServeDashboard_AnonymousRedirectsToLogin(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.ServeDashboard(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if location := rec.Header().Get("Location"); location != "/login" {
		t.Errorf("Location: got %q, want /login", location)
	}
}

func TestServeDashboard_RendersForSignedInUser(t *testing.T) {
	handler, fixtures, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateStaff(ctx, "Ms. Thompson", "thompson@hk.ycef.com")
	fixtures.CreateApprovedResource(ctx, "Weimar Republic Sources", "Mr. Davies")
	fixtures.CreatePendingResource(ctx, "Draft Rivers Unit", "Ms. Thompson")

	rec := serve(handler, testutil.TestUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	})
	if rec.Code == http.StatusSeeOther {
		t.Errorf("expected a render, got a redirect to %q", rec.Header().Get("Location"))
	}
}

func TestSubscribedFeed_MatchesTopics(t *testing.T) {
	approved := []models.Resource{
		{Title: "A", Subject: "History", YearGroup: "Year 9"},
		{Title: "B", Subject: "Geography", YearGroup: "Year 7"},
		{Title: "C", Subject: "Economics", YearGroup: "Year 12"},
	}

	feed := dashboard.SubscribedFeed(approved, []string{"Geography"}, 8)
	if len(feed) != 1 || feed[0].Title != "B" {
		t.Errorf("feed: got %v, want only B", feed)
	}

	feed = dashboard.SubscribedFeed(approved, []string{"Year 9", "Economics"}, 8)
	if len(feed) != 2 {
		t.Errorf("feed: got %d entries, want 2", len(feed))
	}

	if feed := dashboard.SubscribedFeed(approved, nil, 8); feed != nil {
		t.Errorf("expected an empty feed with no subscriptions, got %v", feed)
	}
}

func TestSubscribedFeed_HonorsLimit(t *testing.T) {
	var approved []models.Resource
	for i := 0; i < 10; i++ {
		approved = append(approved, models.Resource{Subject: "History"})
	}

	feed := dashboard.SubscribedFeed(approved, []string{"History"}, 3)
	if len(feed) != 3 {
		t.Errorf("feed: got %d entries, want 3", len(feed))
	}
}
