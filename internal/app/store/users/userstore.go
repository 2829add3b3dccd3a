package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/ycyw/humanitieshub/internal/app/system/normalize"
	"github.com/ycyw/humanitieshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "admin"|"staff"`)
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	filter := bson.M{"email_ci": text.Fold(normalize.Email(email))}
	if err := s.c.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByName looks up a user by case-insensitive display name. Resources and
// forum posts store authorship by name, so profile pages resolve through here.
func (s *Store) GetByName(ctx context.Context, name string) (*models.User, error) {
	var u models.User
	filter := bson.M{"name_ci": text.Fold(normalize.Name(name))}
	if err := s.c.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing & validating fields.
// New signups default to role "staff" and IsApproved=false; an admin grants
// access (and possibly a different role) later.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.NameCI = text.Fold(u.Name)
	u.Email = normalize.Email(u.Email)
	u.EmailCI = text.Fold(u.Email)
	if u.Role == "" {
		u.Role = models.RoleStaff
	}

	switch u.Role {
	case models.RoleAdmin, models.RoleStaff:
		// ok
	default:
		return models.User{}, errBadRole
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// ListPendingApproval returns unapproved signups, oldest first, so admins
// review requests in the order they arrived.
func (s *Store) ListPendingApproval(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"is_approved": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Approve marks a signup as approved with the given role.
// Returns mongo.ErrNoDocuments if no such user exists.
func (s *Store) Approve(ctx context.Context, id primitive.ObjectID, role string) error {
	role = normalize.Role(role)
	switch role {
	case models.RoleAdmin, models.RoleStaff:
		// ok
	default:
		return errBadRole
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"is_approved": true,
		"role":        role,
		"updated_at":  time.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Reject deletes an unapproved signup. Approved accounts are never deleted
// through this path. Returns the number of documents deleted (0 or 1).
func (s *Store) Reject(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "is_approved": false})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// UpdateProfile updates the user's own editable fields.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, school string, subjects []string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"school":          school,
		"subjects_taught": subjects,
		"updated_at":      time.Now(),
	}})
	return err
}

// Subscribe adds a topic key to the user's subscription list. Adding a topic
// that is already present is a no-op.
func (s *Store) Subscribe(ctx context.Context, id primitive.ObjectID, topic string) error {
	topic = normalize.Topic(topic)
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$addToSet": bson.M{"subscriptions": topic},
		"$set":      bson.M{"updated_at": time.Now()},
	})
	return err
}

// Unsubscribe removes a topic key from the user's subscription list.
func (s *Store) Unsubscribe(ctx context.Context, id primitive.ObjectID, topic string) error {
	topic = normalize.Topic(topic)
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$pull": bson.M{"subscriptions": topic},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	return err
}

// PushNotification prepends a notification so the inbox reads newest first.
func (s *Store) PushNotification(ctx context.Context, id primitive.ObjectID, n models.Notification) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"notifications": bson.M{
			"$each":     bson.A{n},
			"$position": 0,
		}},
	})
	return err
}

// MarkNotificationRead marks exactly one notification read by its ID.
// Unknown IDs are a no-op.
func (s *Store) MarkNotificationRead(ctx context.Context, id primitive.ObjectID, notifID string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"notifications.$[n].is_read": true}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"n.id": notifID}},
		}),
	)
	return err
}

// ClearNotifications removes every notification from the user's inbox.
func (s *Store) ClearNotifications(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"notifications": bson.A{}},
	})
	return err
}

// UnreadCount returns the number of unread notifications for the inbox badge.
func (s *Store) UnreadCount(ctx context.Context, id primitive.ObjectID) (int, error) {
	var u models.User
	proj := options.FindOne().SetProjection(bson.M{"notifications.is_read": 1})
	if err := s.c.FindOne(ctx, bson.M{"_id": id}, proj).Decode(&u); err != nil {
		return 0, err
	}
	return u.UnreadNotifications(), nil
}

// ListApproved returns all approved users. Used for department-wide fan-out
// such as professional development announcements.
func (s *Store) ListApproved(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{"is_approved": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListSubscribedToAny returns approved users subscribed to at least one of the
// given topic keys.
func (s *Store) ListSubscribedToAny(ctx context.Context, topics []string) ([]models.User, error) {
	if len(topics) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{
		"is_approved":   true,
		"subscriptions": bson.M{"$in": topics},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// EnsureAdmin creates an approved admin account with the given credentials if
// no user with that email exists yet. Startup uses this to seed the
// super-admin account. Returns true if the account was created.
func (s *Store) EnsureAdmin(ctx context.Context, email, name, passwordHash string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if err != mongo.ErrNoDocuments {
		return false, err
	}

	u := models.User{
		Email:        email,
		Name:         name,
		Role:         models.RoleAdmin,
		IsApproved:   true,
		PasswordHash: passwordHash,
	}
	if _, err := s.Create(ctx, u); err != nil {
		if err == ErrDuplicateEmail {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
