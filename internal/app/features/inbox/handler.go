// internal/app/features/inbox/handler.go

// Package inbox serves the per-user notification inbox. Notifications are
// embedded on the user document; the inbox lists them newest first and lets
// the owner mark entries read or clear the lot.
package inbox

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	uierrors "github.com/ycyw/humanitieshub/internal/app/features/errors"
	userstore "github.com/ycyw/humanitieshub/internal/app/store/users"
	"github.com/ycyw/humanitieshub/internal/app/system/authz"
	"github.com/ycyw/humanitieshub/internal/app/system/timeouts"
	"github.com/ycyw/humanitieshub/internal/app/system/viewdata"
	"github.com/ycyw/humanitieshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Users  *userstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: errLog,
		Users:  userstore.New(db),
	}
}

type inboxVM struct {
	viewdata.BaseVM
	Notifications []notificationVM
	Unread        int
}

type notificationVM struct {
	models.Notification
	Link string
}

// link resolves a notification to its target page, or "" when the target
// kind is unknown.
func link(n models.Notification) string {
	if n.LinkID == "" {
		return ""
	}
	switch n.TargetType {
	case models.TargetResource:
		return "/resources/" + n.LinkID
	case models.TargetPost:
		return "/forum/" + n.LinkID
	}
	return ""
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /inbox                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeInbox(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB get user", err, "Could not load your inbox.", "/dashboard")
		return
	}

	// PushNotification prepends, so the slice is already newest first.
	items := make([]notificationVM, 0, len(u.Notifications))
	unread := 0
	for _, n := range u.Notifications {
		if !n.IsRead {
			unread++
		}
		items = append(items, notificationVM{Notification: n, Link: link(n)})
	}

	templates.Render(w, r, "inbox", inboxVM{
		BaseVM:        viewdata.NewBaseVM(r, h.DB, "Inbox", "/dashboard"),
		Notifications: items,
		Unread:        unread,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /inbox/{id}/read                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleMarkRead marks one notification read. An unknown notification ID is
// a no-op, so a stale inbox tab never errors.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	notifID := chi.URLParam(r, "id")
	if err := h.Users.MarkNotificationRead(ctx, userID, notifID); err != nil {
		h.ErrLog.LogServerError(w, r, "DB mark notification read", err, "Could not update your inbox.", "/inbox")
		return
	}
	http.Redirect(w, r, "/inbox", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /inbox/clear                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.ClearNotifications(ctx, userID); err != nil {
		h.ErrLog.LogServerError(w, r, "DB clear notifications", err, "Could not clear your inbox.", "/inbox")
		return
	}

	h.Log.Info("inbox cleared", zap.String("user_id", userID.Hex()))
	http.Redirect(w, r, "/inbox", http.StatusSeeOther)
}
