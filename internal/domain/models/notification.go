// internal/domain/models/notification.go
package models

import "time"

// Notification type identifiers stored in Notification.Type.
const (
	NotificationComment = "comment"
	NotificationReply   = "reply"
	NotificationSystem  = "system"
)

// Notification target identifiers stored in Notification.TargetType.
const (
	TargetResource = "resource"
	TargetPost     = "post"
)

// Notification is an inbox entry embedded on the recipient User.
//
// IDs are UUID strings rather than ObjectIDs because notifications are
// embedded documents, never top-level collection members.
type Notification struct {
	ID         string    `bson:"id" json:"id"`
	Type       string    `bson:"type" json:"type"` // comment | reply | system
	Title      string    `bson:"title" json:"title"`
	Message    string    `bson:"message" json:"message"`
	AuthorName string    `bson:"author_name" json:"author_name"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
	IsRead     bool      `bson:"is_read" json:"is_read"`
	TargetType string    `bson:"target_type" json:"target_type"` // resource | post
	LinkID     string    `bson:"link_id,omitempty" json:"link_id,omitempty"`
}
