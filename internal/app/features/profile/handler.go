// internal/app/features/profile/handler.go

// Package profile serves the signed-in user's own page: school and subjects
// taught, subscription topics, and their recent uploads and posts.
package profile

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/ycyw/humanitieshub/internal/app/features/errors"
	forumstore "github.com/ycyw/humanitieshub/internal/app/store/forum"
	resourcestore "github.com/ycyw/humanitieshub/internal/app/store/resources"
	userstore "github.com/ycyw/humanitieshub/internal/app/store/users"
	"github.com/ycyw/humanitieshub/internal/app/system/authz"
	"github.com/ycyw/humanitieshub/internal/app/system/normalize"
	"github.com/ycyw/humanitieshub/internal/app/system/timeouts"
	"github.com/ycyw/humanitieshub/internal/app/system/viewdata"
	"github.com/ycyw/humanitieshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	ErrLog    *uierrors.ErrorLogger
	Users     *userstore.Store
	Resources *resourcestore.Store
	Forum     *forumstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		ErrLog:    errLog,
		Users:     userstore.New(db),
		Resources: resourcestore.New(db),
		Forum:     forumstore.New(db),
	}
}

func (h *Handler) currentUserID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return primitive.NilObjectID, false
	}
	return userID, true
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /profile                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

type topicVM struct {
	Name       string
	Subscribed bool
}

type profileVM struct {
	viewdata.BaseVM
	User     *models.User
	Schools  []string
	Subjects []string
	Topics   []topicVM
	Uploads  []models.Resource
	Posts    []models.ForumPost
	Saved    bool
}

func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB get user", err, "Could not load your profile.", "/dashboard")
		return
	}

	uploads, err := h.Resources.ListByAuthor(ctx, u.Name)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB list uploads", err, "Could not load your profile.", "/dashboard")
		return
	}
	posts, err := h.Forum.ListByAuthor(ctx, u.Name)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB list posts", err, "Could not load your profile.", "/dashboard")
		return
	}

	// Subscription topics are the full year-group and subject lists, so the
	// page shows toggles for everything subscribable.
	topics := make([]topicVM, 0, len(models.YearGroups)+len(models.Subjects))
	for _, yg := range models.YearGroups {
		topics = append(topics, topicVM{Name: yg, Subscribed: u.IsSubscribed(yg)})
	}
	for _, subj := range models.Subjects {
		topics = append(topics, topicVM{Name: subj, Subscribed: u.IsSubscribed(subj)})
	}

	templates.Render(w, r, "profile", profileVM{
		BaseVM:   viewdata.NewBaseVM(r, h.DB, "My Profile", "/dashboard"),
		User:     u,
		Schools:  models.Schools,
		Subjects: models.Subjects,
		Topics:   topics,
		Uploads:  uploads,
		Posts:    posts,
		Saved:    r.URL.Query().Get("saved") == "1",
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /profile                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/profile")
		return
	}

	school := normalize.Name(r.FormValue("school"))
	if school != "" && !models.IsValidSchool(school) {
		h.ErrLog.LogBadRequest(w, r, "invalid school", nil, "Choose a valid school.", "/profile")
		return
	}

	var subjects []string
	for _, s := range r.Form["subjects"] {
		s = normalize.Topic(s)
		if models.IsValidSubject(s) {
			subjects = append(subjects, s)
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.UpdateProfile(ctx, userID, school, subjects); err != nil {
		h.ErrLog.LogServerError(w, r, "DB update profile", err, "Could not save your profile.", "/profile")
		return
	}

	http.Redirect(w, r, "/profile?saved=1", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /profile/subscriptions                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleSubscription toggles one topic on or off. The form carries the topic
// name and the desired action.
func (h *Handler) HandleSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/profile")
		return
	}

	topic := normalize.Topic(r.FormValue("topic"))
	if !models.IsValidYearGroup(topic) && !models.IsValidSubject(topic) {
		h.ErrLog.LogBadRequest(w, r, "invalid topic", nil, "That topic cannot be subscribed to.", "/profile")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var err error
	switch r.FormValue("action") {
	case "unsubscribe":
		err = h.Users.Unsubscribe(ctx, userID, topic)
	default:
		err = h.Users.Subscribe(ctx, userID, topic)
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB update subscriptions", err, "Could not update your subscriptions.", "/profile")
		return
	}

	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}
