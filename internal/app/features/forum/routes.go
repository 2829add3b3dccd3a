// internal/app/features/forum/routes.go
package forum

import (
	"github.com/go-chi/chi/v5"
	"github.com/ycyw/humanitieshub/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeList)
		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{id}", h.ServeDetail)
		pr.Post("/{id}/reply", h.HandleReply)
	})

	return r
}
