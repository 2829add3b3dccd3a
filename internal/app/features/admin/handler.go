// internal/app/features/admin/handler.go

// Package admin serves the administration panel: approving or rejecting
// pending signups with a role assignment, and site branding.
package admin

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	uierrors "github.com/ycyw/humanitieshub/internal/app/features/errors"
	settingsstore "github.com/ycyw/humanitieshub/internal/app/store/settings"
	userstore "github.com/ycyw/humanitieshub/internal/app/store/users"
	"github.com/ycyw/humanitieshub/internal/app/system/normalize"
	"github.com/ycyw/humanitieshub/internal/app/system/timeouts"
	"github.com/ycyw/humanitieshub/internal/app/system/viewdata"
	"github.com/ycyw/humanitieshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Users    *userstore.Store
	Settings *settingsstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		Users:    userstore.New(db),
		Settings: settingsstore.New(db),
	}
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid user id", err, "That user does not exist.", "/admin/users")
		return primitive.NilObjectID, false
	}
	return id, true
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/users                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

type usersVM struct {
	viewdata.BaseVM
	Pending []models.User
	Roles   []string
}

func (h *Handler) ServeUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	pending, err := h.Users.ListPendingApproval(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB list pending users", err, "Could not load pending signups.", "/dashboard")
		return
	}

	templates.Render(w, r, "admin_users", usersVM{
		BaseVM:  viewdata.NewBaseVM(r, h.DB, "Pending Signups", "/dashboard"),
		Pending: pending,
		Roles:   []string{models.RoleStaff, models.RoleAdmin},
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/users/{id}/approve                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleApprove approves a pending signup with the role chosen on the form.
// Approving an already-approved user only updates the role.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/admin/users")
		return
	}

	role := normalize.Role(r.FormValue("role"))
	if role != models.RoleAdmin {
		role = models.RoleStaff
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.Approve(ctx, id, role); err != nil {
		h.ErrLog.LogServerError(w, r, "DB approve user", err, "Could not approve that signup.", "/admin/users")
		return
	}

	h.Log.Info("signup approved",
		zap.String("user_id", id.Hex()),
		zap.String("role", role))
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/users/{id}/reject                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleReject removes a pending signup. Rejecting an unknown or already
// removed user is a no-op.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	deleted, err := h.Users.Reject(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB reject user", err, "Could not reject that signup.", "/admin/users")
		return
	}
	if deleted > 0 {
		h.Log.Info("signup rejected", zap.String("user_id", id.Hex()))
	}
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/settings · POST /admin/settings                                  |
*─────────────────────────────────────────────────────────────────────────────*/

type settingsVM struct {
	viewdata.BaseVM
	Settings models.SiteSettings
	Saved    bool
}

func (h *Handler) ServeSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	settings, err := h.Settings.Get(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB get settings", err, "Could not load site settings.", "/dashboard")
		return
	}

	templates.Render(w, r, "admin_settings", settingsVM{
		BaseVM:   viewdata.NewBaseVM(r, h.DB, "Site Settings", "/dashboard"),
		Settings: settings,
		Saved:    r.URL.Query().Get("saved") == "1",
	})
}

func (h *Handler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/admin/settings")
		return
	}

	siteName := normalize.Name(r.FormValue("site_name"))
	if siteName == "" {
		siteName = models.DefaultSiteName
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Settings.Save(ctx, models.SiteSettings{
		SiteName: siteName,
		LogoURL:  normalize.Name(r.FormValue("logo_url")),
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "DB save settings", err, "Could not save site settings.", "/admin/settings")
		return
	}

	http.Redirect(w, r, "/admin/settings?saved=1", http.StatusSeeOther)
}
