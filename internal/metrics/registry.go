package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric exported by this package.
const Namespace = "largeint"

// Registry owns a private Prometheus registry with the largeint collectors
// and the standard Go and process collectors. Each Registry is independent,
// so tests and embedded servers may create as many as they need.
type Registry struct {
	reg *prometheus.Registry

	Operations       *prometheus.CounterVec
	DivideByZero     prometheus.Counter
	OverflowWarnings *prometheus.CounterVec
	VerifyMismatches *prometheus.CounterVec
	Requests         *prometheus.CounterVec
	ActiveRequests   prometheus.Gauge
	EvalDuration     prometheus.Histogram
}

// New creates a Registry with every collector registered.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operations_total",
			Help:      "Number of largeint operations evaluated, by operator.",
		}, []string{"op"}),
		DivideByZero: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "divide_by_zero_total",
			Help:      "Number of divisions or remainders attempted with a zero divisor.",
		}),
		OverflowWarnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "overflow_warnings_total",
			Help:      "Number of narrowing conversions that did not fit, by target type.",
		}, []string{"target"}),
		VerifyMismatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "verify_mismatches_total",
			Help:      "Number of oracle verification mismatches, by operator.",
		}, []string{"op"}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "requests_total",
			Help:      "Number of HTTP requests served, by path and status code.",
		}, []string{"path", "code"}),
		ActiveRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "active_requests",
			Help:      "Number of HTTP requests currently in flight.",
		}),
		EvalDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "eval_duration_seconds",
			Help:      "Time spent evaluating expressions.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: Namespace}),
		r.Operations,
		r.DivideByZero,
		r.OverflowWarnings,
		r.VerifyMismatches,
		r.Requests,
		r.ActiveRequests,
		r.EvalDuration,
	)
	return r
}

// ObserveOp counts one evaluation of op.
func (r *Registry) ObserveOp(op string) {
	r.Operations.WithLabelValues(op).Inc()
}

// ObserveOverflow counts a narrowing conversion to target that overflowed.
// Its signature matches largeint.SetOverflowHook.
func (r *Registry) ObserveOverflow(target string) {
	r.OverflowWarnings.WithLabelValues(target).Inc()
}

// ObserveMismatch counts an oracle mismatch for op.
func (r *Registry) ObserveMismatch(op string) {
	r.VerifyMismatches.WithLabelValues(op).Inc()
}

// Gatherer exposes the underlying registry for custom exposition.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// Handler returns an HTTP handler serving the registry in the Prometheus
// text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
