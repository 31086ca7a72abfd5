package dsr

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"talenthub/internal/domain/auth"
	"talenthub/internal/domain/directory"
	"talenthub/internal/platform/metrics"
)

type EmployeeStore interface {
	Get(ctx context.Context, id string) (directory.Employee, error)
}

type Service struct {
	store     StoreAPI
	employees EmployeeStore
	exportDir string
	metrics   *metrics.Metrics
}

func NewService(store StoreAPI, employees EmployeeStore, exportDir string, m *metrics.Metrics) *Service {
	return &Service{store: store, employees: employees, exportDir: exportDir, metrics: m}
}

// RequestDelete irreversibly tombstones the employee: is_deleted set, email
// rewritten to the deterministic placeholder, phone/address/ssn scrubbed.
// The account can never authenticate again.
func (s *Service) RequestDelete(ctx context.Context, employeeID string) (Request, error) {
	if _, err := s.employees.Get(ctx, employeeID); err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return Request{}, ErrEmployeeNotFound
		}
		return Request{}, err
	}

	req, err := s.store.CreateRequest(ctx, employeeID, TypeDelete, StatusProcessing)
	if err != nil {
		return Request{}, err
	}

	completed, err := s.store.TombstoneEmployee(ctx, employeeID, req.ID)
	if err != nil {
		s.fail(ctx, req.ID, TypeDelete)
		return Request{}, err
	}

	s.count(TypeDelete, StatusCompleted)
	return completed, nil
}

// UpdateConsent upserts the single record per (employee, consent type).
// Timestamps track only the last transition, not a full history.
func (s *Service) UpdateConsent(ctx context.Context, employeeID, consentType string, isGranted bool) (ConsentRecord, error) {
	return s.store.UpsertConsent(ctx, employeeID, consentType, isGranted)
}

// ProcessRequest is the HR-only manual completion path for a request that is
// still open. Completed and failed are both terminal: a failed request stays
// failed, it is never flipped back to completed.
func (s *Service) ProcessRequest(ctx context.Context, requestID string) (Request, error) {
	req, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	if req.Status == StatusCompleted || req.Status == StatusFailed {
		return Request{}, ErrAlreadyProcessed
	}
	return s.store.CompleteRequest(ctx, requestID, nil)
}

// GetStatus applies the ownership guard against the request's subject, not
// the caller: only the owning employee or HR/admin may see it.
func (s *Service) GetStatus(ctx context.Context, requestID string, identity auth.Identity) (Request, error) {
	req, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	if err := auth.RequireOwnership(identity, req.EmployeeID); err != nil {
		return Request{}, err
	}
	return req, nil
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]Request, error) {
	return s.store.ListByEmployee(ctx, employeeID)
}

func (s *Service) ListAll(ctx context.Context) ([]Request, error) {
	return s.store.ListAll(ctx)
}

// PurgeExpired hard-deletes tombstoned employees whose retention window has
// elapsed and returns the purged count.
func (s *Service) PurgeExpired(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return s.store.PurgeExpired(ctx, cutoff)
}

func (s *Service) fail(ctx context.Context, requestID, requestType string) {
	// Best effort: a request stuck without a terminal state is worse than a
	// lost failure marker.
	if err := s.store.MarkFailed(ctx, requestID); err != nil {
		slog.Warn("dsr request fail update failed", "requestId", requestID, "err", err)
	}
	s.count(requestType, StatusFailed)
}

func (s *Service) count(requestType, result string) {
	if s.metrics != nil {
		s.metrics.DSROperations.WithLabelValues(requestType, result).Inc()
	}
}
