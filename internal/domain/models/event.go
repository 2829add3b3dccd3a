// internal/domain/models/event.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Calendar event kinds.
const (
	EventPD       = "pd"
	EventDeadline = "deadline"
)

// CalendarEvent is a read-only entry on the department calendar. Date is an
// ISO date string (YYYY-MM-DD); the calendar renders whole days only.
type CalendarEvent struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title      string             `bson:"title" json:"title"`
	Date       string             `bson:"date" json:"date"`
	Type       string             `bson:"type" json:"type"` // pd | deadline
	ResourceID string             `bson:"resource_id,omitempty" json:"resource_id,omitempty"`
}
