package dsrhandler

import (
	"github.com/go-chi/chi/v5"

	"talenthub/internal/domain/auth"
	"talenthub/internal/transport/http/middleware"
)

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/dsr", func(r chi.Router) {
		r.With(middleware.RequireAuth).Post("/export", h.HandleExport)
		r.With(middleware.RequireAuth).Post("/delete", h.HandleDelete)
		r.With(middleware.RequireAuth).Put("/consent", h.HandleConsent)
		r.With(middleware.RequireAuth).Get("/status/{id}", h.HandleStatus)
		r.With(middleware.RequireAuth).Get("/my-requests", h.HandleMyRequests)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/{id}/process", h.HandleProcess)
	})
}
