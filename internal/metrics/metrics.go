// Package metrics provides Prometheus metrics for the relay.
package metrics

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Default histogram buckets for request latency. The tail is wider than a
// typical API because solver runs can take several seconds.
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// Metrics holds all Prometheus metric collectors for the relay.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	SolverDuration  *prometheus.HistogramVec
	SolverResponses *prometheus.CounterVec

	scrapePath string
}

// New creates a Metrics instance with a custom registry and all collectors
// registered. scrapePath is the route the exposition handler is mounted on.
func New(scrapePath string) *Metrics {
	reg := prometheus.NewRegistry()

	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry:   reg,
		scrapePath: scrapePath,

		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "solver_relay_http_requests_total",
			Help: "Total inbound HTTP requests.",
		}, []string{"method", "status_code", "route"}),

		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "solver_relay_http_request_duration_seconds",
			Help:    "Inbound HTTP request latency in seconds.",
			Buckets: defaultBuckets,
		}, []string{"method", "status_code", "route"}),

		RequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "solver_relay_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed.",
		}),

		SolverDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "solver_relay_solver_request_duration_seconds",
			Help:    "Solver call latency in seconds.",
			Buckets: defaultBuckets,
		}, []string{"method"}),

		SolverResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "solver_relay_solver_responses_total",
			Help: "Total solver calls by method and status code (\"error\" when no response arrived).",
		}, []string{"method", "status_code"}),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.RequestsInFlight,
		m.SolverDuration,
		m.SolverResponses,
	)

	return m
}

// Handler returns the exposition handler for the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// knownMethods lists the allowed HTTP method label values (bounded cardinality).
var knownMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "DELETE": true,
	"PATCH": true, "HEAD": true, "OPTIONS": true,
}

// NormalizeMethod returns a bounded HTTP method label for Prometheus metrics.
// Non-standard methods are mapped to "other" to prevent cardinality explosion.
func NormalizeMethod(method string) string {
	if knownMethods[method] {
		return method
	}
	return "other"
}

// knownRoutes lists the allowed route label values, longest first.
var knownRoutes = []string{"/solve/default", "/solve", "/healthz"}

// NormalizePath returns a bounded route label for Prometheus metrics. The
// configured scrape path is labelled as itself.
func (m *Metrics) NormalizePath(path string) string {
	if path == "/" {
		return "/"
	}
	if m.scrapePath != "" && matchRoute(path, m.scrapePath) {
		return m.scrapePath
	}
	for _, route := range knownRoutes {
		if matchRoute(path, route) {
			return route
		}
	}
	return "other"
}

func matchRoute(path, route string) bool {
	return path == route || strings.HasPrefix(path, route+"/") || strings.HasPrefix(path, route+"?")
}
