package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors exported by the service.
type Metrics struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	errors        *prometheus.CounterVec
	ledgerOps     *prometheus.CounterVec
	cascadeDelete *prometheus.HistogramVec
}

// NewMetrics registers collectors on a dedicated registry.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Errors rendered to clients by error code.",
		}, []string{"route", "method", "code"}),
		ledgerOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_operations_total",
			Help:      "Membership and registration ledger operations by outcome.",
		}, []string{"ledger", "op", "outcome"}),
		cascadeDelete: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cascade_deleted_rows",
			Help:      "Join rows removed per cascade delete.",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 500},
		}, []string{"ledger"}),
	}
	reg.MustRegister(m.requests, m.latency, m.errors, m.ledgerOps, m.cascadeDelete)
	return m
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordRequest counts a finished request.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError counts an error rendered to a client.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(route, method, code).Inc()
}

// RecordLedgerOp counts a ledger operation. Outcome is "ok" or an error code.
func (m *Metrics) RecordLedgerOp(ledger, op, outcome string) {
	if m == nil {
		return
	}
	m.ledgerOps.WithLabelValues(ledger, op, outcome).Inc()
}

// RecordCascade observes how many join rows a cascade removed.
func (m *Metrics) RecordCascade(ledger string, removed int) {
	if m == nil {
		return
	}
	m.cascadeDelete.WithLabelValues(ledger).Observe(float64(removed))
}
