package employeehandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"

	"talenthub/internal/domain/auth"
	"talenthub/internal/domain/directory"
	"talenthub/internal/transport/http/middleware"
)

const testSecret = "employees-test-secret"

var employeeRowColumns = []string{
	"id", "email", "password_hash", "full_name", "phone", "address", "ssn",
	"role", "department", "manager_id", "hire_date", "is_deleted", "created_at", "updated_at",
}

func newTestRouter(t *testing.T) (http.Handler, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	handler := NewHandler(directory.NewService(directory.NewStore(mock)))
	router := chi.NewRouter()
	router.Use(middleware.Auth(testSecret))
	handler.RegisterRoutes(router)
	return router, mock
}

func bearerFor(t *testing.T, userID string, role auth.Role) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, userID, userID+"@corp.test", role, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return "Bearer " + token
}

func subjectRow(mock pgxmock.PgxPoolIface) *pgxmock.Rows {
	ssn := "123-45-6789"
	now := time.Now().UTC()
	return mock.NewRows(employeeRowColumns).AddRow(
		"emp-1", "jane@corp.test", "hash", "Jane Doe", nil, nil, &ssn,
		"employee", nil, nil, nil, false, now, now,
	)
}

func getEmployee(t *testing.T, router http.Handler, token string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/employees/emp-1", nil)
	req.Header.Set("Authorization", token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rec.Code, env.Data
}

func TestHandleGetHRSeesSensitiveFields(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs("emp-1").
		WillReturnRows(subjectRow(mock))

	status, view := getEmployee(t, router, bearerFor(t, "hr-1", auth.RoleHR))
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if view["ssn"] != "123-45-6789" {
		t.Fatalf("hr should see ssn without asking, got %v", view["ssn"])
	}
}

func TestHandleGetSelfViewOmitsSensitiveFields(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs("emp-1").
		WillReturnRows(subjectRow(mock))

	status, view := getEmployee(t, router, bearerFor(t, "emp-1", auth.RoleEmployee))
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if _, ok := view["ssn"]; ok {
		t.Fatalf("self view should not carry ssn, got %v", view["ssn"])
	}
	if view["email"] != "jane@corp.test" {
		t.Fatalf("unexpected view: %v", view)
	}
}

func TestHandleGetOtherEmployeeForbidden(t *testing.T) {
	router, _ := newTestRouter(t)

	status, _ := getEmployee(t, router, bearerFor(t, "emp-2", auth.RoleEmployee))
	if status != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", status)
	}
}
