package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"talenthub/internal/domain/audit"
	"talenthub/internal/platform/metrics"
	"talenthub/internal/transport/http/shared"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Audit writes one entry when a request arrives and one when it completes.
// Request bodies are only captured for sensitive paths, and only after
// passing through the PII mask. Append failures never fail the request.
func Audit(log *audit.Log, m *metrics.Metrics, sensitivePrefixes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			entry := audit.Entry{
				Method:    r.Method,
				Endpoint:  r.URL.Path,
				User:      callerTag(r),
				IP:        shared.ClientIP(r),
				RequestID: GetRequestID(r.Context()),
			}
			if isSensitive(r.URL.Path, sensitivePrefixes) {
				entry.Sensitive = true
				entry.RequestData = maskedBody(r)
			}
			appendEntry(log, m, entry)

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			appendEntry(log, m, audit.Entry{
				Method:     r.Method,
				Endpoint:   r.URL.Path,
				User:       callerTag(r),
				RequestID:  GetRequestID(r.Context()),
				Status:     recorder.status,
				DurationMs: time.Since(start).Milliseconds(),
			})
		})
	}
}

func appendEntry(log *audit.Log, m *metrics.Metrics, entry audit.Entry) {
	if log == nil {
		return
	}
	if err := log.Append(entry); err != nil {
		slog.Warn("audit append failed", "endpoint", entry.Endpoint, "err", err)
		if m != nil {
			m.AuditAppendFails.Inc()
		}
	}
}

func callerTag(r *http.Request) string {
	if identity, ok := GetIdentity(r.Context()); ok {
		return fmt.Sprintf("user_id=%s, role=%s", identity.UserID, identity.Role)
	}
	return "anonymous"
}

func isSensitive(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// maskedBody reads the JSON body, masks it, and restores the reader so the
// handler still sees the original payload. Non-JSON bodies are skipped:
// they are never logged.
func maskedBody(r *http.Request) any {
	if r.Body == nil {
		return nil
	}
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if len(raw) == 0 {
		return nil
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	return audit.Mask(payload)
}
