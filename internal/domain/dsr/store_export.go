package dsr

import (
	"context"
	"encoding/json"
)

func (s *Store) ExportSalaries(ctx context.Context, employeeID string) ([]map[string]any, error) {
	return s.queryRowsAsJSON(ctx, `SELECT row_to_json(sal) FROM salaries sal WHERE employee_id = $1 ORDER BY month`, employeeID)
}

func (s *Store) ExportReviewsReceived(ctx context.Context, employeeID string) ([]map[string]any, error) {
	return s.queryRowsAsJSON(ctx, `SELECT row_to_json(pr) FROM performance_reviews pr WHERE employee_id = $1 ORDER BY created_at`, employeeID)
}

func (s *Store) ExportAttendance(ctx context.Context, employeeID string) ([]map[string]any, error) {
	return s.queryRowsAsJSON(ctx, `SELECT row_to_json(att) FROM attendance att WHERE employee_id = $1 ORDER BY date`, employeeID)
}

func (s *Store) ExportConsents(ctx context.Context, employeeID string) ([]map[string]any, error) {
	return s.queryRowsAsJSON(ctx, `SELECT row_to_json(cr) FROM consent_records cr WHERE employee_id = $1 ORDER BY created_at`, employeeID)
}

func (s *Store) queryRowsAsJSON(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []map[string]any{}
	for rows.Next() {
		var rowJSON []byte
		if err := rows.Scan(&rowJSON); err != nil {
			return nil, err
		}
		var row map[string]any
		if err := json.Unmarshal(rowJSON, &row); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
