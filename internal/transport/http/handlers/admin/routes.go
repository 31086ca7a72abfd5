package adminhandler

import (
	"github.com/go-chi/chi/v5"

	"talenthub/internal/domain/auth"
	"talenthub/internal/transport/http/middleware"
)

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleHR)).Get("/reports", h.HandleReports)
		r.With(middleware.RequireRole(auth.RoleHR)).Get("/dsr-requests", h.HandleDSRRequests)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/purge", h.HandlePurge)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/audit-logs", h.HandleAuditLogs)
	})
}
