// internal/domain/models/forum.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ForumPost is a discussion thread. Context, when set, is a year-group or
// subject name that files the post under that browsing tab; an untagged post
// shows only in the global view.
type ForumPost struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	TitleCI string             `bson:"title_ci" json:"title_ci"`
	Content string             `bson:"content" json:"content"`
	Author  string             `bson:"author" json:"author"`
	Context string             `bson:"context,omitempty" json:"context,omitempty"`

	Replies []ForumReply `bson:"replies,omitempty" json:"replies,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// ForumReply is an append-only reply on a post.
type ForumReply struct {
	ID      string    `bson:"id" json:"id"`
	Author  string    `bson:"author" json:"author"`
	Content string    `bson:"content" json:"content"`
	Date    time.Time `bson:"date" json:"date"`
}
