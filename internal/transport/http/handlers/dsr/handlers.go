package dsrhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"talenthub/internal/domain/auth"
	"talenthub/internal/domain/dsr"
	"talenthub/internal/platform/requestctx"
	"talenthub/internal/transport/http/api"
	"talenthub/internal/transport/http/middleware"
	"talenthub/internal/transport/http/shared"
)

type Handler struct {
	DSR *dsr.Service
}

func NewHandler(service *dsr.Service) *Handler {
	return &Handler{DSR: service}
}

type consentRequest struct {
	ConsentType string `json:"consentType"`
	IsGranted   bool   `json:"isGranted"`
}

// HandleExport starts a data export for the caller's own records and runs
// it to completion before responding.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthenticated", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	req, err := h.DSR.RequestExport(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, dsr.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestctx.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "export_error", "failed to export data", requestctx.GetRequestID(r.Context()))
		return
	}

	api.Created(w, req, requestctx.GetRequestID(r.Context()))
}

// HandleDelete tombstones the caller's own account. The operation is
// irreversible; the response is the last authenticated call this account
// will ever make.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthenticated", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	req, err := h.DSR.RequestDelete(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, dsr.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestctx.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "delete_error", "failed to delete account", requestctx.GetRequestID(r.Context()))
		return
	}

	api.Created(w, req, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleConsent(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthenticated", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	var payload consentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("consentType", payload.ConsentType, "consent type is required")
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	record, err := h.DSR.UpdateConsent(r.Context(), identity.UserID, payload.ConsentType, payload.IsGranted)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "consent_error", "failed to update consent", requestctx.GetRequestID(r.Context()))
		return
	}

	api.Success(w, record, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthenticated", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	req, err := h.DSR.GetStatus(r.Context(), chi.URLParam(r, "id"), identity)
	if err != nil {
		switch {
		case errors.Is(err, dsr.ErrRequestNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "request not found", requestctx.GetRequestID(r.Context()))
		case errors.Is(err, auth.ErrForbidden):
			api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", requestctx.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "status_error", "failed to load request", requestctx.GetRequestID(r.Context()))
		}
		return
	}

	api.Success(w, req, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleMyRequests(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthenticated", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	requests, err := h.DSR.ListByEmployee(r.Context(), identity.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_error", "failed to list requests", requestctx.GetRequestID(r.Context()))
		return
	}

	api.Success(w, requests, requestctx.GetRequestID(r.Context()))
}

// HandleProcess is the HR completion path for open requests; the route is
// role-guarded upstream.
func (h *Handler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	req, err := h.DSR.ProcessRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, dsr.ErrRequestNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "request not found", requestctx.GetRequestID(r.Context()))
		case errors.Is(err, dsr.ErrAlreadyProcessed):
			api.Fail(w, http.StatusBadRequest, "already_processed", "request already processed", requestctx.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "process_error", "failed to process request", requestctx.GetRequestID(r.Context()))
		}
		return
	}

	api.Success(w, req, requestctx.GetRequestID(r.Context()))
}
