package dsr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"talenthub/internal/domain/directory"
)

// RequestExport gathers a point-in-time snapshot of the employee's own data
// (sensitive profile plus owned salary, review, attendance and consent
// records), writes it to the export artifact, and completes the request.
// The snapshot never contains another employee's data: every dataset query
// is keyed by the subject's id.
func (s *Service) RequestExport(ctx context.Context, employeeID string) (Request, error) {
	emp, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return Request{}, ErrEmployeeNotFound
		}
		return Request{}, err
	}

	req, err := s.store.CreateRequest(ctx, employeeID, TypeExport, StatusProcessing)
	if err != nil {
		return Request{}, err
	}

	payload, err := s.gatherExport(ctx, emp)
	if err != nil {
		s.fail(ctx, req.ID, TypeExport)
		return Request{}, err
	}

	filePath, err := s.writeExport(emp.ID, req.ID, payload)
	if err != nil {
		s.fail(ctx, req.ID, TypeExport)
		return Request{}, err
	}

	completed, err := s.store.CompleteRequest(ctx, req.ID, &filePath)
	if err != nil {
		s.fail(ctx, req.ID, TypeExport)
		return Request{}, err
	}

	s.count(TypeExport, StatusCompleted)
	return completed, nil
}

func (s *Service) gatherExport(ctx context.Context, emp directory.Employee) (map[string]any, error) {
	salaries, err := s.store.ExportSalaries(ctx, emp.ID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.store.ExportReviewsReceived(ctx, emp.ID)
	if err != nil {
		return nil, err
	}
	attendance, err := s.store.ExportAttendance(ctx, emp.ID)
	if err != nil {
		return nil, err
	}
	consents, err := s.store.ExportConsents(ctx, emp.ID)
	if err != nil {
		return nil, err
	}

	return BuildExportPayload(emp.View(true), map[string]any{
		"salaries":   salaries,
		"reviews":    reviews,
		"attendance": attendance,
		"consents":   consents,
	}), nil
}

func (s *Service) writeExport(employeeID, requestID string, payload map[string]any) (string, error) {
	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", err
	}

	jsonBytes, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}

	filePath := filepath.Join(s.exportDir, ExportFileName(employeeID, requestID))
	if err := os.WriteFile(filePath, jsonBytes, 0o600); err != nil {
		return "", err
	}

	// The receipt is a courtesy artifact; failing to render it must not fail
	// the export itself.
	if err := s.writeReceipt(employeeID, requestID, payload); err != nil {
		slog.Warn("export receipt failed", "requestId", requestID, "err", err)
	}
	return filePath, nil
}

func (s *Service) writeReceipt(employeeID, requestID string, payload map[string]any) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Data Export Receipt")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", employeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Request: %s", requestID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", time.Now().UTC().Format(time.RFC3339)))
	pdf.Ln(10)
	for _, dataset := range []string{"salaries", "reviews", "attendance", "consents"} {
		count := 0
		if rows, ok := payload[dataset].([]map[string]any); ok {
			count = len(rows)
		}
		pdf.Cell(0, 8, fmt.Sprintf("%s: %d records", dataset, count))
		pdf.Ln(7)
	}

	return pdf.OutputFileAndClose(filepath.Join(s.exportDir, ReceiptFileName(employeeID, requestID)))
}
