// internal/app/features/dashboard/handler.go

// Package dashboard serves the landing page after sign-in: department stats,
// a feed of recent resources in the user's subscribed topics, their own
// pending submissions, and the latest published resources.
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/ycyw/humanitieshub/internal/app/features/errors"
	resourcestore "github.com/ycyw/humanitieshub/internal/app/store/resources"
	userstore "github.com/ycyw/humanitieshub/internal/app/store/users"
	"github.com/ycyw/humanitieshub/internal/app/system/authz"
	"github.com/ycyw/humanitieshub/internal/app/system/timeouts"
	"github.com/ycyw/humanitieshub/internal/app/system/viewdata"
	"github.com/ycyw/humanitieshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	latestLimit = 8
	feedLimit   = 8
)

type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	ErrLog    *uierrors.ErrorLogger
	Users     *userstore.Store
	Resources *resourcestore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		ErrLog:    errLog,
		Users:     userstore.New(db),
		Resources: resourcestore.New(db),
	}
}

type statsVM struct {
	Resources int64
	Pending   int64
	Posts     int64
	Staff     int64
}

type dashboardVM struct {
	viewdata.BaseVM
	Stats      statsVM
	Feed       []models.Resource
	MyPending  []models.Resource
	Latest     []models.Resource
	IsAdmin    bool
	QueueCount int64
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /dashboard                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	role, name, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	stats, err := h.collectStats(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB dashboard stats", err, "Could not load the dashboard.", "/")
		return
	}

	approved, err := h.Resources.ListApproved(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB list resources", err, "Could not load the dashboard.", "/")
		return
	}

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil && err != mongo.ErrNoDocuments {
		h.ErrLog.LogServerError(w, r, "DB get user", err, "Could not load the dashboard.", "/")
		return
	}

	var feed []models.Resource
	if u != nil {
		feed = SubscribedFeed(approved, u.Subscriptions, feedLimit)
	}

	mine, err := h.Resources.ListByAuthor(ctx, name)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB list own resources", err, "Could not load the dashboard.", "/")
		return
	}
	var myPending []models.Resource
	for _, res := range mine {
		if res.IsPending() {
			myPending = append(myPending, res)
		}
	}

	latest := approved
	if len(latest) > latestLimit {
		latest = latest[:latestLimit]
	}

	templates.Render(w, r, "dashboard", dashboardVM{
		BaseVM:     viewdata.NewBaseVM(r, h.DB, "Dashboard", "/"),
		Stats:      stats,
		Feed:       feed,
		MyPending:  myPending,
		Latest:     latest,
		IsAdmin:    role == models.RoleAdmin,
		QueueCount: stats.Pending,
	})
}

func (h *Handler) collectStats(ctx context.Context) (statsVM, error) {
	resources, err := h.Resources.Count(ctx, bson.M{"status": models.StatusApproved})
	if err != nil {
		return statsVM{}, err
	}
	pending, err := h.Resources.Count(ctx, bson.M{"status": models.StatusPending})
	if err != nil {
		return statsVM{}, err
	}
	posts, err := h.DB.Collection("forum_posts").CountDocuments(ctx, bson.M{})
	if err != nil {
		return statsVM{}, err
	}
	staff, err := h.DB.Collection("users").CountDocuments(ctx, bson.M{"is_approved": true})
	if err != nil {
		return statsVM{}, err
	}
	return statsVM{
		Resources: resources,
		Pending:   pending,
		Posts:     posts,
		Staff:     staff,
	}, nil
}

// SubscribedFeed returns up to limit approved resources whose subject or
// year group matches one of the user's subscription topics.
func SubscribedFeed(approved []models.Resource, topics []string, limit int) []models.Resource {
	if len(topics) == 0 {
		return nil
	}
	subscribed := make(map[string]bool, len(topics))
	for _, topic := range topics {
		subscribed[topic] = true
	}

	var out []models.Resource
	for _, res := range approved {
		if subscribed[res.Subject] || subscribed[res.YearGroup] {
			out = append(out, res)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
