package dsr

import (
	"context"
	"time"
)

type StoreAPI interface {
	CreateRequest(ctx context.Context, employeeID, requestType, status string) (Request, error)
	GetRequest(ctx context.Context, id string) (Request, error)
	CompleteRequest(ctx context.Context, id string, resultFilePath *string) (Request, error)
	MarkFailed(ctx context.Context, id string) error
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	ListAll(ctx context.Context) ([]Request, error)
	UpsertConsent(ctx context.Context, employeeID, consentType string, isGranted bool) (ConsentRecord, error)
	TombstoneEmployee(ctx context.Context, employeeID, requestID string) (Request, error)
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
	ExportSalaries(ctx context.Context, employeeID string) ([]map[string]any, error)
	ExportReviewsReceived(ctx context.Context, employeeID string) ([]map[string]any, error)
	ExportAttendance(ctx context.Context, employeeID string) ([]map[string]any, error)
	ExportConsents(ctx context.Context, employeeID string) ([]map[string]any, error)
}
