// internal/app/features/admin/routes.go
package admin

import (
	"github.com/go-chi/chi/v5"
	"github.com/ycyw/humanitieshub/internal/app/system/auth"
	"github.com/ycyw/humanitieshub/internal/domain/models"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleAdmin))

		pr.Get("/users", h.ServeUsers)
		pr.Post("/users/{id}/approve", h.HandleApprove)
		pr.Post("/users/{id}/reject", h.HandleReject)

		pr.Get("/settings", h.ServeSettings)
		pr.Post("/settings", h.HandleSettings)
	})

	return r
}
