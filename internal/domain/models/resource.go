// internal/domain/models/resource.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Canonical moderation states stored in Resource.Status.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// Resource is a shared teaching resource.
//
// Author is stored by display name, not by foreign key: the original data
// model keys all attribution on names, and profile lookups resolve names
// back to users.
type Resource struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	TitleCI string             `bson:"title_ci" json:"title_ci"` // lowercase, diacritics-stripped

	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Author      string `bson:"author" json:"author"`

	YearGroup  string     `bson:"year_group" json:"year_group"`
	Subject    string     `bson:"subject" json:"subject"`
	Type       string     `bson:"type" json:"type"`
	Curriculum Curriculum `bson:"curriculum,omitempty" json:"curriculum,omitempty"`

	Status string `bson:"status" json:"status"` // pending | approved

	Tags      []string `bson:"tags,omitempty" json:"tags,omitempty"`
	ExamPaper string   `bson:"exam_paper,omitempty" json:"exam_paper,omitempty"` // e.g. "Paper 1"

	Downloads int64 `bson:"downloads" json:"downloads"`

	Files    []ResourceFile    `bson:"files,omitempty" json:"files,omitempty"`
	Comments []ResourceComment `bson:"comments,omitempty" json:"comments,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// ResourceFile holds the metadata of an attached file. The portal captures
// metadata only; file contents live outside the current scope.
type ResourceFile struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
	Size string `bson:"size" json:"size"` // human-readable, e.g. "4.2MB"
	Kind string `bson:"kind" json:"kind"` // document | presentation
}

// ResourceComment is a comment on a resource, newest first.
type ResourceComment struct {
	ID         string    `bson:"id" json:"id"`
	Author     string    `bson:"author" json:"author"`
	Content    string    `bson:"content" json:"content"`
	IsQuestion bool      `bson:"is_question,omitempty" json:"is_question,omitempty"`
	Date       time.Time `bson:"date" json:"date"`
}

// IsApproved reports whether the resource has been published by an admin.
func (r *Resource) IsApproved() bool { return r.Status == StatusApproved }

// IsPending reports whether the resource is awaiting moderation.
func (r *Resource) IsPending() bool { return r.Status == StatusPending }
