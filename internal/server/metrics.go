package server

import (
	"net/http"
	"strconv"

	"github.com/agbru/largeint/internal/metrics"
)

// Metrics adapts a metrics.Registry to the HTTP server.
type Metrics struct {
	registry *metrics.Registry
	handler  http.Handler
}

// NewMetrics creates Metrics backed by a fresh registry.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(metrics.New())
}

// NewMetricsWithRegistry creates Metrics backed by an existing registry, so
// that counters fed elsewhere (overflow warnings, for instance) are exported
// by the same endpoint.
func NewMetricsWithRegistry(r *metrics.Registry) *Metrics {
	return &Metrics{registry: r, handler: r.Handler()}
}

// IncrementActiveRequests marks a request as started.
func (m *Metrics) IncrementActiveRequests() { m.registry.ActiveRequests.Inc() }

// DecrementActiveRequests marks a request as finished.
func (m *Metrics) DecrementActiveRequests() { m.registry.ActiveRequests.Dec() }

// RecordRequest counts a completed request.
func (m *Metrics) RecordRequest(path string, code int) {
	m.registry.Requests.WithLabelValues(path, strconv.Itoa(code)).Inc()
}

// ObserveOp counts one evaluated operator. Divisions by zero are also
// counted separately.
func (m *Metrics) ObserveOp(op string) {
	if op == "divide_by_zero" {
		m.registry.DivideByZero.Inc()
		return
	}
	m.registry.ObserveOp(op)
}

// WritePrometheus serves the registry in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
