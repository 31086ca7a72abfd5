package employeehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"talenthub/internal/domain/auth"
	"talenthub/internal/domain/directory"
	"talenthub/internal/platform/requestctx"
	"talenthub/internal/transport/http/api"
	"talenthub/internal/transport/http/middleware"
)

type Handler struct {
	Employees *directory.Service
}

func NewHandler(employees *directory.Service) *Handler {
	return &Handler{Employees: employees}
}

type updateRequest struct {
	FullName   *string `json:"fullName"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	Department *string `json:"department"`
	Role       *string `json:"role"`
	ManagerID  *string `json:"managerId"`
}

// HandleList returns the active directory with sensitive fields. The route
// sits behind the HR role guard; tombstoned records never appear.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Employees.ListActive(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_error", "failed to list employees", requestctx.GetRequestID(r.Context()))
		return
	}

	views := make([]map[string]any, 0, len(employees))
	for _, emp := range employees {
		views = append(views, emp.View(true))
	}
	api.Success(w, views, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthenticated", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	id := chi.URLParam(r, "id")
	if err := auth.RequireOwnership(identity, id); err != nil {
		api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", requestctx.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Employees.GetActive(r.Context(), id)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestctx.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "lookup_error", "failed to load employee", requestctx.GetRequestID(r.Context()))
		return
	}

	api.Success(w, emp.View(identity.Role.Satisfies(auth.RoleHR)), requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthenticated", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	id := chi.URLParam(r, "id")
	if err := auth.RequireOwnership(identity, id); err != nil {
		api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", requestctx.GetRequestID(r.Context()))
		return
	}

	var payload updateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	// Role and manager assignments are HR decisions; self-service updates
	// silently drop them.
	allowRoleChange := identity.Role.Satisfies(auth.RoleHR)
	emp, err := h.Employees.Update(r.Context(), id, directory.UpdateParams{
		FullName:   payload.FullName,
		Phone:      payload.Phone,
		Address:    payload.Address,
		Department: payload.Department,
		Role:       payload.Role,
		ManagerID:  payload.ManagerID,
	}, allowRoleChange)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestctx.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "update_error", "failed to update employee", requestctx.GetRequestID(r.Context()))
		return
	}

	api.Success(w, emp.View(allowRoleChange || identity.UserID == id), requestctx.GetRequestID(r.Context()))
}
