package dsr

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"talenthub/internal/platform/querier"
)

const requestColumns = `
    id, employee_id, request_type, status, result_file_path, requested_at, completed_at
`

type Store struct {
	DB querier.Beginner
}

func NewStore(db querier.Beginner) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateRequest(ctx context.Context, employeeID, requestType, status string) (Request, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO dsr_requests (employee_id, request_type, status)
    VALUES ($1, $2, $3)
    RETURNING `+requestColumns, employeeID, requestType, status)
	return scanRequest(row)
}

func (s *Store) GetRequest(ctx context.Context, id string) (Request, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+requestColumns+`
    FROM dsr_requests
    WHERE id = $1
  `, id)
	return scanRequest(row)
}

func (s *Store) CompleteRequest(ctx context.Context, id string, resultFilePath *string) (Request, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE dsr_requests
    SET status = $1, result_file_path = COALESCE($2, result_file_path), completed_at = now()
    WHERE id = $3
    RETURNING `+requestColumns, StatusCompleted, resultFilePath, id)
	return scanRequest(row)
}

func (s *Store) MarkFailed(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE dsr_requests SET status = $1 WHERE id = $2
  `, StatusFailed, id)
	return err
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]Request, error) {
	return s.listRequests(ctx, `
    SELECT `+requestColumns+`
    FROM dsr_requests
    WHERE employee_id = $1
    ORDER BY requested_at DESC
  `, employeeID)
}

func (s *Store) ListAll(ctx context.Context) ([]Request, error) {
	return s.listRequests(ctx, `
    SELECT `+requestColumns+`
    FROM dsr_requests
    ORDER BY requested_at DESC
  `)
}

func (s *Store) listRequests(ctx context.Context, query string, args ...any) ([]Request, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (s *Store) UpsertConsent(ctx context.Context, employeeID, consentType string, isGranted bool) (ConsentRecord, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO consent_records (employee_id, consent_type, is_granted, granted_at, revoked_at)
    VALUES ($1, $2, $3,
            CASE WHEN $3 THEN now() END,
            CASE WHEN $3 THEN NULL ELSE now() END)
    ON CONFLICT (employee_id, consent_type) DO UPDATE
    SET is_granted = EXCLUDED.is_granted,
        granted_at = EXCLUDED.granted_at,
        revoked_at = EXCLUDED.revoked_at
    RETURNING id, employee_id, consent_type, is_granted, granted_at, revoked_at, created_at
  `, employeeID, consentType, isGranted)

	var record ConsentRecord
	err := row.Scan(&record.ID, &record.EmployeeID, &record.ConsentType,
		&record.IsGranted, &record.GrantedAt, &record.RevokedAt, &record.CreatedAt)
	if err != nil {
		return ConsentRecord{}, err
	}
	return record, nil
}

// TombstoneEmployee scrubs the employee and completes the delete request in
// one transaction: either both effects land or neither does.
func (s *Store) TombstoneEmployee(ctx context.Context, employeeID, requestID string) (Request, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Request{}, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
    UPDATE employees
    SET is_deleted = true,
        email = $1,
        phone = NULL,
        address = NULL,
        ssn = NULL,
        updated_at = now()
    WHERE id = $2
  `, AnonymizedEmail(employeeID), employeeID)
	if err != nil {
		return Request{}, err
	}
	if tag.RowsAffected() == 0 {
		return Request{}, ErrEmployeeNotFound
	}

	row := tx.QueryRow(ctx, `
    UPDATE dsr_requests
    SET status = $1, completed_at = now()
    WHERE id = $2
    RETURNING `+requestColumns, StatusCompleted, requestID)
	req, err := scanRequest(row)
	if err != nil {
		return Request{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Request{}, err
	}
	return req, nil
}

// PurgeExpired hard-deletes tombstoned employees past the retention window.
// The only physical deletion in the system; owned rows cascade via foreign
// keys, reviews authored as reviewer survive with the reference nulled.
func (s *Store) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.DB.Exec(ctx, `
    DELETE FROM employees
    WHERE is_deleted = true AND updated_at < $1
  `, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanRequest(row pgx.Row) (Request, error) {
	var req Request
	err := row.Scan(&req.ID, &req.EmployeeID, &req.RequestType, &req.Status,
		&req.ResultFilePath, &req.RequestedAt, &req.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Request{}, ErrRequestNotFound
		}
		return Request{}, err
	}
	return req, nil
}
