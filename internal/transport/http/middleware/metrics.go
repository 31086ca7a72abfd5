package middleware

import (
	"net/http"
	"strconv"
	"time"

	"talenthub/internal/platform/metrics"
)

// Metrics records request counts and latency per method and status code.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m == nil {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			status := strconv.Itoa(recorder.status)
			m.RequestsTotal.WithLabelValues(r.Method, status).Inc()
			m.RequestsDuration.WithLabelValues(r.Method, status).Observe(time.Since(start).Seconds())
		})
	}
}
