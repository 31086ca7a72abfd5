package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"talenthub/internal/domain/auth"
	"talenthub/internal/domain/directory"
	"talenthub/internal/platform/requestctx"
	"talenthub/internal/transport/http/api"
	"talenthub/internal/transport/http/middleware"
	"talenthub/internal/transport/http/shared"
)

type Handler struct {
	Employees *directory.Service
	Secret    string
	TokenTTL  time.Duration
}

func NewHandler(employees *directory.Service, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{Employees: employees, Secret: secret, TokenTTL: tokenTTL}
}

type registerRequest struct {
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	FullName   string  `json:"fullName"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	SSN        *string `json:"ssn"`
	Department *string `json:"department"`
	Role       string  `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	v.Required("password", payload.Password, "password is required")
	v.Required("fullName", payload.FullName, "full name is required")
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	emp, err := h.Employees.Register(r.Context(), directory.RegisterParams{
		Email:      payload.Email,
		Password:   payload.Password,
		FullName:   payload.FullName,
		Phone:      payload.Phone,
		Address:    payload.Address,
		SSN:        payload.SSN,
		Department: payload.Department,
		Role:       payload.Role,
	})
	if err != nil {
		if errors.Is(err, directory.ErrEmailTaken) {
			api.Fail(w, http.StatusConflict, "email_taken", "email already registered", requestctx.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "register_error", "failed to register employee", requestctx.GetRequestID(r.Context()))
		return
	}

	api.Created(w, emp.View(false), requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Employees.Authenticate(r.Context(), payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, directory.ErrAccountDeleted):
			api.Fail(w, http.StatusForbidden, "account_deleted", "account has been deleted", requestctx.GetRequestID(r.Context()))
		case errors.Is(err, directory.ErrInvalidCredentials):
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestctx.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "login_error", "failed to log in", requestctx.GetRequestID(r.Context()))
		}
		return
	}

	token, err := auth.GenerateToken(h.Secret, emp.ID, emp.Email, auth.ParseRole(emp.Role), h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestctx.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user":  map[string]string{"id": emp.ID, "email": emp.Email, "role": emp.Role},
	}, requestctx.GetRequestID(r.Context()))
}

// HandleMe returns the caller's own record with PII included; the subject
// always sees their own sensitive fields.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthenticated", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Employees.GetActive(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestctx.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "lookup_error", "failed to load employee", requestctx.GetRequestID(r.Context()))
		return
	}

	api.Success(w, emp.View(true), requestctx.GetRequestID(r.Context()))
}

// HandleLogout is a client-side operation with stateless tokens; the
// endpoint exists so clients have a uniform place to end a session.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]string{"status": "logged_out"}, requestctx.GetRequestID(r.Context()))
}
