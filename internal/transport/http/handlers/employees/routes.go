package employeehandler

import (
	"github.com/go-chi/chi/v5"

	"talenthub/internal/domain/auth"
	"talenthub/internal/transport/http/middleware"
)

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleHR)).Get("/", h.HandleList)
		r.With(middleware.RequireAuth).Get("/{id}", h.HandleGet)
		r.With(middleware.RequireAuth).Put("/{id}", h.HandleUpdate)
	})
}
