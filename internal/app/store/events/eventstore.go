// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"regexp"
	"strings"

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
	return &Store{c: db.Collection("calendar_events")}
}

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Create inserts a calendar event. Dates are ISO date strings (YYYY-MM-DD);
// the calendar renders whole days only.
func (s *Store) Create(ctx context.Context, e models.CalendarEvent) (models.CalendarEvent, error) {
	e.ID = primitive.NewObjectID()

	if strings.TrimSpace(e.Title) == "" {
		return models.CalendarEvent{}, mongo.CommandError{Message: "title is required"}
	}
	if !isoDate.MatchString(e.Date) {
		return models.CalendarEvent{}, mongo.CommandError{Message: "date must be YYYY-MM-DD"}
	}
	if e.Type != models.EventPD && e.Type != models.EventDeadline {
		return models.CalendarEvent{}, mongo.CommandError{Message: "type must be 'pd' or 'deadline'"}
	}

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.CalendarEvent{}, err
	}
	return e, nil
}

// List returns every event in date order. ISO dates sort correctly as strings.
func (s *Store) List(ctx context.Context) ([]models.CalendarEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.CalendarEvent
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// ListMonth returns events whose date falls in the given month. The month is
// an ISO prefix such as "2026-03".
func (s *Store) ListMonth(ctx context.Context, month string) ([]models.CalendarEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	filter := bson.M{"date": bson.M{"$regex": "^" + regexp.QuoteMeta(month)}}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.CalendarEvent
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// SeedIfEmpty inserts the given events only when the collection is empty.
// Startup uses this to load the fixed department calendar once.
func (s *Store) SeedIfEmpty(ctx context.Context, events []models.CalendarEvent) (bool, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	for _, e := range events {
		if _, err := s.Create(ctx, e); err != nil {
			return false, err
		}
	}
	return true, nil
}
