package directory

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"

	"talenthub/internal/domain/auth"
)

func newMockService(t *testing.T) (*Service, pgxmock.PgxPoolIface) {
	t.Helper()
	store, mock := newMockStore(t)
	return NewService(store), mock
}

func hashedRow(t *testing.T, mock pgxmock.PgxPoolIface, id, email, password, role string, deleted bool) *pgxmock.Rows {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	now := time.Now().UTC()
	return mock.NewRows(employeeRowColumns).AddRow(
		id, email, hash, "Test Person", nil, nil, nil,
		role, nil, nil, nil, deleted, now, now,
	)
}

func TestRegisterRejectsExistingEmail(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1")).
		WithArgs("taken@corp.test").
		WillReturnRows(hashedRow(t, mock, "emp-1", "taken@corp.test", "pw", "employee", false))

	_, err := svc.Register(context.Background(), RegisterParams{
		Email:    "taken@corp.test",
		Password: "another",
		FullName: "Someone Else",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterDefaultsUnknownRole(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1")).
		WithArgs("new@corp.test").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO employees")).
		WithArgs("new@corp.test", pgxmock.AnyArg(), "New Person", (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), "employee").
		WillReturnRows(hashedRow(t, mock, "emp-2", "new@corp.test", "pw", "employee", false))

	emp, err := svc.Register(context.Background(), RegisterParams{
		Email:    "new@corp.test",
		Password: "pw",
		FullName: "New Person",
		Role:     "superuser",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if emp.Role != "employee" {
		t.Fatalf("expected unknown role to default to employee, got %q", emp.Role)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1")).
		WithArgs("jane@corp.test").
		WillReturnRows(hashedRow(t, mock, "emp-1", "jane@corp.test", "correct", "employee", false))

	_, err := svc.Authenticate(context.Background(), "jane@corp.test", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateUnknownEmailLooksLikeWrongPassword(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1")).
		WithArgs("ghost@corp.test").
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.Authenticate(context.Background(), "ghost@corp.test", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateTombstonedAccount(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1")).
		WithArgs("deleted_emp-1@deleted.com").
		WillReturnRows(hashedRow(t, mock, "emp-1", "deleted_emp-1@deleted.com", "pw", "employee", true))

	_, err := svc.Authenticate(context.Background(), "deleted_emp-1@deleted.com", "pw")
	if !errors.Is(err, ErrAccountDeleted) {
		t.Fatalf("expected ErrAccountDeleted, got %v", err)
	}
}

func TestUpdateDropsRoleChangeWithoutPermission(t *testing.T) {
	svc, mock := newMockService(t)

	role := "admin"
	name := "Renamed"
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE employees")).
		WithArgs(&name, (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), "emp-1").
		WillReturnRows(hashedRow(t, mock, "emp-1", "jane@corp.test", "pw", "employee", false))

	_, err := svc.Update(context.Background(), "emp-1", UpdateParams{FullName: &name, Role: &role}, false)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("role should have been dropped from the update: %v", err)
	}
}
