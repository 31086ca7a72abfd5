package authhandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"

	"talenthub/internal/domain/auth"
	"talenthub/internal/domain/directory"
)

func newTestHandler(t *testing.T) (*Handler, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	service := directory.NewService(directory.NewStore(mock))
	return NewHandler(service, "handler-test-secret", time.Hour), mock
}

func TestHandleRegisterValidation(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"email":"x@corp.test"}`))
	handler.HandleRegister(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if env.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %q", env.Error.Code)
	}
}

func TestHandleLoginGenericFailure(t *testing.T) {
	handler, mock := newTestHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1")).
		WithArgs("ghost@corp.test").
		WillReturnError(pgx.ErrNoRows)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"ghost@corp.test","password":"pw"}`))
	handler.HandleLogin(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if env.Error.Code != "invalid_credentials" {
		t.Fatalf("expected invalid_credentials, got %q", env.Error.Code)
	}
}

func TestHandleLoginIssuesTokenWithRole(t *testing.T) {
	handler, mock := newTestHandler(t)

	hash, err := auth.HashPassword("Password1!")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1")).
		WithArgs("hr@corp.test").
		WillReturnRows(mock.NewRows([]string{
			"id", "email", "password_hash", "full_name", "phone", "address", "ssn",
			"role", "department", "manager_id", "hire_date", "is_deleted", "created_at", "updated_at",
		}).AddRow("hr-1", "hr@corp.test", hash, "HR Person", nil, nil, nil,
			"hr", nil, nil, nil, false, now, now))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"hr@corp.test","password":"Password1!"}`))
	handler.HandleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var env struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	identity, err := auth.ParseToken("handler-test-secret", env.Data.Token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if identity.UserID != "hr-1" || identity.Role != auth.RoleHR {
		t.Fatalf("unexpected identity in token: %+v", identity)
	}
}

func TestHandleLoginMalformedPayload(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("not json"))
	handler.HandleLogin(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
