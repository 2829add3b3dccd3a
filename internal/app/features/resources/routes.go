// internal/app/features/resources/routes.go
package resources

import (
	"github.com/go-chi/chi/v5"
	"github.com/ycyw/humanitieshub/internal/app/system/auth"
)

// Routes mounts the resource library under the caller's base path
// (typically "/resources" from bootstrap).
//
// Approve and delete are deliberately not behind a role middleware: the
// handlers re-check the policy themselves and no-op on denial.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		// BROWSE
		pr.Get("/", h.ServeBrowse)

		// CREATE
		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)

		// OWN UPLOADS
		pr.Get("/mine", h.ServeMine)

		// DETAIL
		pr.Get("/{id}", h.ServeDetail)
		pr.Post("/{id}/comments", h.HandleComment)
		pr.Post("/{id}/files", h.HandleAddFiles)
		pr.Post("/{id}/download", h.HandleDownload)

		// MODERATION
		pr.Post("/{id}/approve", h.HandleApprove)
		pr.Get("/{id}/delete", h.ServeDeleteConfirm)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole("admin"))

		// QUEUE
		pr.Get("/queue", h.ServeQueue)
	})

	return r
}
