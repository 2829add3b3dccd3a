package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/ycyw/humanitieshub/internal/app/system/authutil"
	"github.com/ycyw/humanitieshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the given role and approval state.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string, approved bool) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		Name:       name,
		NameCI:     text.Fold(name),
		Email:      email,
		EmailCI:    text.Fold(email),
		Role:       role,
		IsApproved: approved,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin inserts an approved admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleAdmin, true)
}

// CreateStaff inserts an approved staff user.
func (f *Fixtures) CreateStaff(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleStaff, true)
}

// CreatePendingSignup inserts an unapproved staff signup.
func (f *Fixtures) CreatePendingSignup(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleStaff, false)
}

// CreateUserWithPassword inserts a user who can authenticate with the given
// plain-text password.
func (f *Fixtures) CreateUserWithPassword(ctx context.Context, name, email, role string, approved bool, password string) models.User {
	f.t.Helper()

	hash, err := authutil.HashPassword(password)
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	user := f.CreateUser(ctx, name, email, role, approved)
	_, err = f.db.Collection("users").UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"password_hash": hash}})
	if err != nil {
		f.t.Fatalf("failed to set test password: %v", err)
	}
	user.PasswordHash = hash
	return user
}

// CreateResource inserts a resource with the given status.
func (f *Fixtures) CreateResource(ctx context.Context, title, author, status string) models.Resource {
	f.t.Helper()

	now := time.Now().UTC()
	resource := models.Resource{
		ID:        primitive.NewObjectID(),
		Title:     title,
		TitleCI:   text.Fold(title),
		Author:    author,
		YearGroup: "Year 9",
		Subject:   "History",
		Type:      models.TypeWorksheet,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: &now,
	}

	if _, err := f.db.Collection("resources").InsertOne(ctx, resource); err != nil {
		f.t.Fatalf("failed to create test resource: %v", err)
	}
	return resource
}

// CreateApprovedResource inserts a published resource.
func (f *Fixtures) CreateApprovedResource(ctx context.Context, title, author string) models.Resource {
	f.t.Helper()
	return f.CreateResource(ctx, title, author, models.StatusApproved)
}

// CreatePendingResource inserts a resource waiting in the moderation queue.
func (f *Fixtures) CreatePendingResource(ctx context.Context, title, author string) models.Resource {
	f.t.Helper()
	return f.CreateResource(ctx, title, author, models.StatusPending)
}

// CreateForumPost inserts a forum post.
func (f *Fixtures) CreateForumPost(ctx context.Context, title, author, tab string) models.ForumPost {
	f.t.Helper()

	post := models.ForumPost{
		ID:        primitive.NewObjectID(),
		Title:     title,
		TitleCI:   text.Fold(title),
		Content:   "Test post content",
		Author:    author,
		Context:   tab,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("forum_posts").InsertOne(ctx, post); err != nil {
		f.t.Fatalf("failed to create test forum post: %v", err)
	}
	return post
}

// CreateEvent inserts a calendar event.
func (f *Fixtures) CreateEvent(ctx context.Context, title, date, kind string) models.CalendarEvent {
	f.t.Helper()

	event := models.CalendarEvent{
		ID:    primitive.NewObjectID(),
		Title: title,
		Date:  date,
		Type:  kind,
	}

	if _, err := f.db.Collection("calendar_events").InsertOne(ctx, event); err != nil {
		f.t.Fatalf("failed to create test calendar event: %v", err)
	}
	return event
}
