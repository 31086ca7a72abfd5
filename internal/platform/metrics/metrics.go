package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	DSROperations    *prometheus.CounterVec
	AuditAppendFails prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "talenthub",
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "talenthub",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "status"},
		),
		DSROperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "talenthub",
				Subsystem: "dsr",
				Name:      "operations_total",
				Help:      "DSR lifecycle outcomes by type and result.",
			},
			[]string{"type", "result"},
		),
		AuditAppendFails: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "talenthub",
				Subsystem: "audit",
				Name:      "append_failures_total",
				Help:      "Audit log appends that could not be written.",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.RequestsTotal,
			m.RequestsDuration,
			m.DSROperations,
			m.AuditAppendFails,
			collectors.NewGoCollector(),
		)
	}
	return m
}
