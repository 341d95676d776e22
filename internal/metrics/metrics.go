// Package metrics holds Prometheus instruments used across folio.  All
// collectors are registered with the global registry, so mounting
// promhttp.Handler() on /metrics is enough to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecordOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_record_ops_total",
			Help: "Successful record operations by entity and operation.",
		}, []string{"entity", "op"})

	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_store_errors_total",
			Help: "Store failures surfaced to handlers, by entity and operation.",
		}, []string{"entity", "op"})

	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_login_total",
			Help: "Login attempts by result (success, failure, blocked).",
		}, []string{"result"})

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_http_requests_total",
			Help: "HTTP responses by status code.",
		}, []string{"code"})

	HTTPDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "folio_http_request_duration_seconds",
			Help:    "Time spent serving HTTP requests.",
			Buckets: prometheus.DefBuckets,
		})

	TemplateLoads = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "folio_template_loads_total",
			Help: "Template sets parsed (cache misses).",
		})
)

func init() {
	prometheus.MustRegister(
		RecordOps,
		StoreErrors,
		Logins,
		HTTPRequests,
		HTTPDuration,
		TemplateLoads,
	)
}
