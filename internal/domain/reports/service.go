package reports

import (
	"context"
	"time"

	"talenthub/internal/domain/dsr"
	"talenthub/internal/platform/querier"
)

type Service struct {
	DB querier.Querier
}

func New(db querier.Querier) *Service {
	return &Service{DB: db}
}

type Summary struct {
	TotalEmployees       int       `json:"total_employees"`
	DeletedEmployees     int       `json:"deleted_employees"`
	PendingDSRRequests   int       `json:"pending_dsr_requests"`
	CompletedDSRRequests int       `json:"completed_dsr_requests"`
	GeneratedAt          time.Time `json:"generated_at"`
}

func (s *Service) ComplianceSummary(ctx context.Context) (Summary, error) {
	summary := Summary{GeneratedAt: time.Now().UTC()}

	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE is_deleted = false").Scan(&summary.TotalEmployees); err != nil {
		return Summary{}, err
	}
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE is_deleted = true").Scan(&summary.DeletedEmployees); err != nil {
		return Summary{}, err
	}
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM dsr_requests WHERE status = $1", dsr.StatusPending).Scan(&summary.PendingDSRRequests); err != nil {
		return Summary{}, err
	}
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM dsr_requests WHERE status = $1", dsr.StatusCompleted).Scan(&summary.CompletedDSRRequests); err != nil {
		return Summary{}, err
	}
	return summary, nil
}
