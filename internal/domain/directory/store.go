package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"talenthub/internal/platform/querier"
)

const uniqueViolationCode = "23505"

const employeeColumns = `
    id, email, password_hash, full_name, phone, address, ssn,
    role, department, manager_id, hire_date, is_deleted, created_at, updated_at
`

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

type CreateParams struct {
	Email        string
	PasswordHash string
	FullName     string
	Phone        *string
	Address      *string
	SSN          *string
	Department   *string
	Role         string
}

func (s *Store) Create(ctx context.Context, params CreateParams) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO employees (email, password_hash, full_name, phone, address, ssn, department, role, hire_date)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_DATE)
    RETURNING `+employeeColumns,
		params.Email, params.PasswordHash, params.FullName,
		params.Phone, params.Address, params.SSN, params.Department, params.Role)

	emp, err := scanEmployee(row)
	if err != nil {
		return Employee{}, translatePgError(err)
	}
	return emp, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE email = $1
  `, email)
	return scanEmployee(row)
}

func (s *Store) Get(ctx context.Context, id string) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, id)
	return scanEmployee(row)
}

type UpdateParams struct {
	FullName   *string
	Phone      *string
	Address    *string
	Department *string
	Role       *string
	ManagerID  *string
}

func (s *Store) Update(ctx context.Context, id string, params UpdateParams) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE employees
    SET full_name = COALESCE($1, full_name),
        phone = COALESCE($2, phone),
        address = COALESCE($3, address),
        department = COALESCE($4, department),
        role = COALESCE($5, role),
        manager_id = COALESCE($6, manager_id),
        updated_at = now()
    WHERE id = $7 AND is_deleted = false
    RETURNING `+employeeColumns,
		params.FullName, params.Phone, params.Address,
		params.Department, params.Role, params.ManagerID, id)
	return scanEmployee(row)
}

func (s *Store) ListActive(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE is_deleted = false
    ORDER BY created_at
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.Email, &emp.PasswordHash, &emp.FullName,
		&emp.Phone, &emp.Address, &emp.SSN,
		&emp.Role, &emp.Department, &emp.ManagerID, &emp.HireDate,
		&emp.IsDeleted, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, ErrNotFound
		}
		return Employee{}, err
	}
	return emp, nil
}

func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrEmailTaken
	}
	return err
}
