// internal/app/features/assistant/routes.go
package assistant

import (
	"github.com/go-chi/chi/v5"
	"github.com/ycyw/humanitieshub/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeAssistant)
		pr.Post("/idea", h.HandleIdea)
		pr.Post("/search", h.HandleSearch)
	})

	return r
}
