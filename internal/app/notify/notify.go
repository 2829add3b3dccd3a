// Package notify fans events out to user inboxes.
//
// Fan-out rules:
//   - A published resource notifies every approved user subscribed to its
//     subject OR year group. Professional development resources notify the
//     whole department. The author is never notified of their own upload.
//   - A comment notifies the resource's author, unless they commented on
//     their own resource.
//   - A forum reply notifies the post's author, unless they replied to
//     their own post.
//
// Delivery is in-app only; notifications are prepended to the recipient's
// embedded inbox.
package notify

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	userstore "github.com/ycyw/humanitieshub/internal/app/store/users"
	"github.com/ycyw/humanitieshub/internal/app/system/timeouts"
	"github.com/ycyw/humanitieshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Service delivers notifications through the user store.
type Service struct {
	users *userstore.Store
	log   *zap.Logger
}

// NewService creates a notification service.
func NewService(users *userstore.Store, logger *zap.Logger) *Service {
	return &Service{users: users, log: logger}
}

// ResourcePublished notifies subscribers that a resource went live. Callers
// invoke this when a resource is approved, or immediately on upload when
// moderation is off.
func (s *Service) ResourcePublished(ctx context.Context, r models.Resource) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Batch())
	defer cancel()

	var (
		recipients []models.User
		err        error
	)
	if r.Type == models.TypeProfessionalDevelopment {
		recipients, err = s.users.ListApproved(ctx)
	} else {
		topics := make([]string, 0, 2)
		if r.Subject != "" {
			topics = append(topics, r.Subject)
		}
		if r.YearGroup != "" {
			topics = append(topics, r.YearGroup)
		}
		recipients, err = s.users.ListSubscribedToAny(ctx, topics)
	}
	if err != nil {
		return err
	}

	n := models.Notification{
		ID:         uuid.NewString(),
		Type:       models.NotificationSystem,
		Title:      "New resource: " + r.Title,
		Message:    describeResource(r),
		AuthorName: r.Author,
		Timestamp:  time.Now().UTC(),
		TargetType: models.TargetResource,
		LinkID:     r.ID.Hex(),
	}

	delivered := 0
	for _, u := range recipients {
		if strings.EqualFold(u.Name, r.Author) {
			continue
		}
		// Each recipient gets their own copy
		n.ID = uuid.NewString()
		if err := s.users.PushNotification(ctx, u.ID, n); err != nil {
			s.log.Warn("notification delivery failed",
				zap.String("user_id", u.ID.Hex()),
				zap.Error(err))
			continue
		}
		delivered++
	}

	s.log.Info("resource notifications delivered",
		zap.String("resource_id", r.ID.Hex()),
		zap.Int("recipients", delivered))
	return nil
}

// CommentAdded notifies the resource author about a new comment.
func (s *Service) CommentAdded(ctx context.Context, r models.Resource, c models.ResourceComment) error {
	if strings.EqualFold(c.Author, r.Author) {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	author, err := s.users.GetByName(ctx, r.Author)
	if err == mongo.ErrNoDocuments {
		// Author account no longer resolvable by name; nothing to deliver.
		return nil
	}
	if err != nil {
		return err
	}

	title := "New comment on " + r.Title
	if c.IsQuestion {
		title = "New question on " + r.Title
	}

	return s.users.PushNotification(ctx, author.ID, models.Notification{
		ID:         uuid.NewString(),
		Type:       models.NotificationComment,
		Title:      title,
		Message:    preview(c.Content),
		AuthorName: c.Author,
		Timestamp:  time.Now().UTC(),
		TargetType: models.TargetResource,
		LinkID:     r.ID.Hex(),
	})
}

// ReplyAdded notifies the post author about a new forum reply.
func (s *Service) ReplyAdded(ctx context.Context, p models.ForumPost, reply models.ForumReply) error {
	if strings.EqualFold(reply.Author, p.Author) {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	author, err := s.users.GetByName(ctx, p.Author)
	if err == mongo.ErrNoDocuments {
		return nil
	}
	if err != nil {
		return err
	}

	return s.users.PushNotification(ctx, author.ID, models.Notification{
		ID:         uuid.NewString(),
		Type:       models.NotificationReply,
		Title:      "New reply on " + p.Title,
		Message:    preview(reply.Content),
		AuthorName: reply.Author,
		Timestamp:  time.Now().UTC(),
		TargetType: models.TargetPost,
		LinkID:     p.ID.Hex(),
	})
}

func describeResource(r models.Resource) string {
	label := models.TypeLabels[r.Type]
	if label == "" {
		label = "Resource"
	}
	parts := []string{label}
	if r.Subject != "" {
		parts = append(parts, r.Subject)
	}
	if r.YearGroup != "" {
		parts = append(parts, r.YearGroup)
	}
	return strings.Join(parts, " · ")
}

const previewLen = 140

func preview(content string) string {
	content = strings.TrimSpace(content)
	runes := []rune(content)
	if len(runes) <= previewLen {
		return content
	}
	cut := string(runes[:previewLen])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}
