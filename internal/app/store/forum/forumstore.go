// internal/app/store/forum/forumstore.go
package forumstore

import (
	"context"
	"strings"
	"time"

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

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("forum_posts")}
}

// Create inserts a new post, setting TitleCI and the creation timestamp.
func (s *Store) Create(ctx context.Context, p models.ForumPost) (models.ForumPost, error) {
	p.ID = primitive.NewObjectID()
	p.TitleCI = text.Fold(p.Title)
	p.CreatedAt = time.Now().UTC()

	if strings.TrimSpace(p.Title) == "" {
		return models.ForumPost{}, mongo.CommandError{Message: "title is required"}
	}
	if strings.TrimSpace(p.Author) == "" {
		return models.ForumPost{}, mongo.CommandError{Message: "author is required"}
	}

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.ForumPost{}, err
	}
	return p, nil
}

// GetByID returns a post by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.ForumPost, error) {
	var p models.ForumPost
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.ForumPost{}, err
	}
	return p, nil
}

// AddReply appends a reply to a post. Replies are append-only and render in
// the order they arrived.
func (s *Store) AddReply(ctx context.Context, id primitive.ObjectID, reply models.ForumReply) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"replies": reply},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// List returns every post, newest first.
func (s *Store) List(ctx context.Context) ([]models.ForumPost, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.ForumPost
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByAuthor returns every post by the given author display name, newest
// first. Backs the profile page's activity section.
func (s *Store) ListByAuthor(ctx context.Context, author string) ([]models.ForumPost, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"author": author}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.ForumPost
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
