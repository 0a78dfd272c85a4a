// Package metrics provides Prometheus metrics for the assistant
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Dispatch metrics
	DispatchTotal    *prometheus.CounterVec
	FallbackTotal    *prometheus.CounterVec
	FallbackDuration prometheus.Histogram
	RecorderFailures prometheus.Counter
	RateLimitedTotal prometheus.Counter
}

// NewMetrics creates and registers all metrics on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{registry: reg}

	m.HTTPRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitness_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitness_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	m.DispatchTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitness_dispatch_total",
			Help: "Messages dispatched, by command kind (fallback for unmatched)",
		},
		[]string{"kind"},
	)

	m.FallbackTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitness_fallback_requests_total",
			Help: "Fallback LLM calls by outcome",
		},
		[]string{"provider", "status"},
	)

	m.FallbackDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fitness_fallback_duration_seconds",
			Help:    "Duration of fallback LLM calls in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
		},
	)

	m.RecorderFailures = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "fitness_recorder_failures_total",
			Help: "Conversation log writes that failed",
		},
	)

	m.RateLimitedTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "fitness_rate_limited_total",
			Help: "Chat requests rejected by the rate limiter",
		},
	)

	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request with its status
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordDispatch counts one dispatched message
func (m *Metrics) RecordDispatch(kind string) {
	if m == nil {
		return
	}
	m.DispatchTotal.WithLabelValues(kind).Inc()
}

// RecordFallback records one fallback call
func (m *Metrics) RecordFallback(provider, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.FallbackTotal.WithLabelValues(provider, status).Inc()
	m.FallbackDuration.Observe(duration.Seconds())
}

// RecordRecorderFailure counts a failed conversation log write
func (m *Metrics) RecordRecorderFailure() {
	if m == nil {
		return
	}
	m.RecorderFailures.Inc()
}

// RecordRateLimited counts a rejected request
func (m *Metrics) RecordRateLimited() {
	if m == nil {
		return
	}
	m.RateLimitedTotal.Inc()
}
