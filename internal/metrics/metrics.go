// Package metrics provides Prometheus instrumentation for movieverse.
//
// Metrics exposed at GET /metrics:
//
//	movieverse_upstream_requests_total           counter by operation/status
//	movieverse_upstream_request_duration_seconds histogram by operation
//	movieverse_http_requests_total               counter by method/route/status
//	movieverse_dashboard_reloads_total           counter by result
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UpstreamRequests counts TMDB calls by operation and outcome.
// status is the HTTP status code, or "error" for transport failures.
var UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "movieverse_upstream_requests_total",
	Help: "Total TMDB requests issued.",
}, []string{"operation", "status"})

// UpstreamDuration tracks TMDB round-trip latency.
var UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "movieverse_upstream_request_duration_seconds",
	Help:    "TMDB request latency in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"operation"})

// HTTPRequests counts handled HTTP requests.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "movieverse_http_requests_total",
	Help: "Total HTTP requests handled.",
}, []string{"method", "route", "status"})

// DashboardReloads counts dashboard dataset reloads.
var DashboardReloads = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "movieverse_dashboard_reloads_total",
	Help: "Dashboard dataset reloads by result.",
}, []string{"result"})

// ObserveUpstream records one TMDB call. statusCode 0 means the request
// never produced a response.
func ObserveUpstream(operation string, statusCode int, started time.Time) {
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	UpstreamRequests.WithLabelValues(operation, status).Inc()
	UpstreamDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
