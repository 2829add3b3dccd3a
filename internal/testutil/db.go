package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/ycyw/humanitieshub/internal/app/system/indexes"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupTestDB connects to the MongoDB instance named by HUMHUB_TEST_MONGO_URI
// and returns a uniquely named database that is dropped when the test ends.
// Tests that call this are skipped when the variable is unset, so the rest of
// the suite runs without a database.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("HUMHUB_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("HUMHUB_TEST_MONGO_URI not set; skipping database test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("failed to connect to test MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("failed to ping test MongoDB: %v", err)
	}

	dbName := fmt.Sprintf("humhub_test_%s", primitive.NewObjectID().Hex())
	db := client.Database(dbName)

	// Unique-constraint behavior (duplicate emails, duplicate titles) depends
	// on the startup indexes, so tests get them too.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("failed to ensure test indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("failed to drop test database %s: %v", dbName, err)
		}
		_ = client.Disconnect(ctx)
	})

	return db
}

// TestContext returns a context with a timeout suitable for a single test's
// database calls.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
