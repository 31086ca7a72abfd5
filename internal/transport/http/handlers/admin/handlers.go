package adminhandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"talenthub/internal/domain/audit"
	"talenthub/internal/domain/dsr"
	"talenthub/internal/domain/reports"
	"talenthub/internal/platform/requestctx"
	"talenthub/internal/transport/http/api"
)

const auditLogTailSize = 100

type Handler struct {
	Reports       *reports.Service
	DSR           *dsr.Service
	Audit         *audit.Log
	RetentionDays int
}

func NewHandler(reports *reports.Service, service *dsr.Service, auditLog *audit.Log, retentionDays int) *Handler {
	return &Handler{Reports: reports, DSR: service, Audit: auditLog, RetentionDays: retentionDays}
}

func (h *Handler) HandleReports(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Reports.ComplianceSummary(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_error", "failed to build report", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, requestctx.GetRequestID(r.Context()))
}

// HandlePurge permanently removes tombstoned employees past the retention
// window. Cascading deletes take their dependent records with them.
func (h *Handler) HandlePurge(w http.ResponseWriter, r *http.Request) {
	purged, err := h.DSR.PurgeExpired(r.Context(), h.RetentionDays)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "purge_error", "failed to purge expired records", requestctx.GetRequestID(r.Context()))
		return
	}

	slog.Info("retention purge complete", "purged", purged, "retentionDays", h.RetentionDays)
	api.Success(w, map[string]any{
		"purged_count":   purged,
		"retention_days": h.RetentionDays,
	}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleAuditLogs(w http.ResponseWriter, r *http.Request) {
	lines, total, err := h.Audit.Tail(auditLogTailSize)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "audit_error", "failed to read audit log", requestctx.GetRequestID(r.Context()))
		return
	}

	entries := make([]any, 0, len(lines))
	for _, line := range lines {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			// A corrupt line is surfaced raw rather than dropped.
			entries = append(entries, line)
			continue
		}
		entries = append(entries, entry)
	}

	api.Success(w, map[string]any{
		"entries": entries,
		"total":   total,
	}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleDSRRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.DSR.ListAll(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_error", "failed to list requests", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, requests, requestctx.GetRequestID(r.Context()))
}
