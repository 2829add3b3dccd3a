package settingsstore_test

import (
	"testing"

	settingsstore "github.com/ycyw/humanitieshub/internal/app/store/settings"
	"github.com/ycyw/humanitieshub/internal/domain/models"
	"github.com/ycyw/humanitieshub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStore_Get_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := settingsstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	settings, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if settings.SiteName != models.DefaultSiteName {
		t.Errorf("SiteName: got %q, want %q", settings.SiteName, models.DefaultSiteName)
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := settingsstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.Save(ctx, models.SiteSettings{
		SiteName: "YCYW Humanities",
		LogoURL:  "/static/img/crest.png",
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	settings, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if settings.SiteName != "YCYW Humanities" {
		t.Errorf("SiteName: got %q, want %q", settings.SiteName, "YCYW Humanities")
	}
	if settings.LogoURL != "/static/img/crest.png" {
		t.Errorf("LogoURL: got %q", settings.LogoURL)
	}

	// Saving again updates the single document rather than adding another
	if err := store.Save(ctx, models.SiteSettings{SiteName: "Renamed"}); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	count, err := db.Collection("site_settings").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected a single settings document, got %d", count)
	}
}
