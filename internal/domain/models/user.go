// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Canonical role identifiers stored in User.Role.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User represents a member of staff (or a Curriculum Officer / admin).
//
// NOTE:
//   - Notifications are embedded on the user, newest first. They are owned
//     exclusively by this user and are never shared or migrated.
//   - Subscriptions hold opaque topic keys (a subject or year-group name).
type User struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email   string             `bson:"email" json:"email"`
	EmailCI string             `bson:"email_ci" json:"email_ci"` // lowercase, diacritics-stripped
	Name    string             `bson:"name" json:"name"`
	NameCI  string             `bson:"name_ci" json:"name_ci"`

	Role       string `bson:"role" json:"role"` // admin | staff
	IsApproved bool   `bson:"is_approved" json:"is_approved"`

	PasswordHash string `bson:"password_hash,omitempty" json:"-"`

	School         string   `bson:"school,omitempty" json:"school,omitempty"`
	SubjectsTaught []string `bson:"subjects_taught,omitempty" json:"subjects_taught,omitempty"`

	Subscriptions []string       `bson:"subscriptions,omitempty" json:"subscriptions,omitempty"`
	Notifications []Notification `bson:"notifications,omitempty" json:"notifications,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsSubscribed reports whether the user is subscribed to the given topic key.
func (u *User) IsSubscribed(topic string) bool {
	for _, s := range u.Subscriptions {
		if s == topic {
			return true
		}
	}
	return false
}

// UnreadNotifications returns the number of unread notifications.
func (u *User) UnreadNotifications() int {
	n := 0
	for _, notif := range u.Notifications {
		if !notif.IsRead {
			n++
		}
	}
	return n
}
