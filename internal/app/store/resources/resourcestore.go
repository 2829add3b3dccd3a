// internal/app/store/resources/resourcestore.go
package resourcestore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/ycyw/humanitieshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateTitle = errors.New("a resource with this title already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("resources")}
}

// Create inserts a new Resource, setting TitleCI and timestamps.
// The caller decides Status according to the publish policy (pending for
// moderated uploads, approved when moderation is off or the uploader is an
// admin). It lightly validates the required fields.
func (s *Store) Create(ctx context.Context, r models.Resource) (models.Resource, error) {
	now := time.Now().UTC()

	r.ID = primitive.NewObjectID()
	r.TitleCI = text.Fold(r.Title)
	if r.Status == "" {
		r.Status = models.StatusPending
	}
	if r.Type == "" {
		r.Type = models.DefaultResourceType
	}
	r.CreatedAt = now
	r.UpdatedAt = &now

	if strings.TrimSpace(r.Title) == "" {
		return models.Resource{}, mongo.CommandError{Message: "title is required"}
	}
	if strings.TrimSpace(r.Author) == "" {
		return models.Resource{}, mongo.CommandError{Message: "author is required"}
	}
	if r.Status != models.StatusPending && r.Status != models.StatusApproved {
		return models.Resource{}, mongo.CommandError{Message: "status must be 'pending' or 'approved'"}
	}
	if !models.IsValidResourceType(r.Type) {
		return models.Resource{}, mongo.CommandError{Message: "unknown resource type"}
	}

	_, err := s.c.InsertOne(ctx, r)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Resource{}, ErrDuplicateTitle
		}
		return models.Resource{}, err
	}
	return r, nil
}

// GetByID returns a resource by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Resource, error) {
	var r models.Resource
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if err != nil {
		return models.Resource{}, err
	}
	return r, nil
}

// Approve publishes a pending resource. The filter matches pending status
// only, so approving an already-approved resource is a no-op rather than an
// error. Returns true if the resource transitioned.
func (s *Store) Approve(ctx context.Context, id primitive.ObjectID) (bool, error) {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.StatusPending},
		bson.M{"$set": bson.M{"status": models.StatusApproved, "updated_at": now}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// Delete removes a resource by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// AddComment prepends a comment so detail pages read newest first.
func (s *Store) AddComment(ctx context.Context, id primitive.ObjectID, c models.ResourceComment) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"comments": bson.M{
			"$each":     bson.A{c},
			"$position": 0,
		}},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AddFiles appends file metadata to a resource.
func (s *Store) AddFiles(ctx context.Context, id primitive.ObjectID, files []models.ResourceFile) error {
	if len(files) == 0 {
		return nil
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"files": bson.M{"$each": files}},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// IncrementDownloads bumps the download counter.
func (s *Store) IncrementDownloads(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"downloads": 1}})
	return err
}

// ListApproved returns published resources, newest first.
func (s *Store) ListApproved(ctx context.Context) ([]models.Resource, error) {
	return s.Find(ctx, bson.M{"status": models.StatusApproved},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// ListPending returns the moderation queue, oldest first.
func (s *Store) ListPending(ctx context.Context) ([]models.Resource, error) {
	return s.Find(ctx, bson.M{"status": models.StatusPending},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

// ListByAuthor returns every resource by the given author display name,
// regardless of status, newest first. Backs the "my uploads" view.
func (s *Store) ListByAuthor(ctx context.Context, author string) ([]models.Resource, error) {
	return s.Find(ctx, bson.M{"author": author},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// Find returns resources matching the given filter with optional find options.
// The caller is responsible for building the filter and options (pagination, sorting, projection).
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Resource, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var resources []models.Resource
	if err := cur.All(ctx, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// Count returns the number of resources matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
