// Package metrics provides Prometheus metrics collection for the disease
// insights API. Beyond the standard HTTP request metrics it tracks the
// extraction pipeline: outcome counts per extraction, upstream model latency,
// generated documents, and invalid-percentage notices surfaced to users.
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.005, .01, .05, .1, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	// ExtractionsTotal counts extraction attempts by outcome:
	// ok, malformed, upstream_error.
	ExtractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extractions_total",
			Help: "Total disease extractions by outcome",
		},
		[]string{"outcome"},
	)

	LLMRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Latency of upstream text-generation calls",
			Buckets: []float64{.25, .5, 1, 2.5, 5, 10, 20, 30, 60, 90},
		},
	)

	DocumentsGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "documents_generated_total",
			Help: "Total PDF documents rendered for download",
		},
	)

	InvalidPercentageNotices = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "invalid_percentage_notices_total",
			Help: "Views rendered with an invalid-percentage notice instead of a chart",
		},
	)

	RuntimeMemoryBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "runtime_memory_bytes",
			Help: "Currently allocated heap bytes",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets currently tracked",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(ExtractionsTotal)
	prometheus.MustRegister(LLMRequestDuration)
	prometheus.MustRegister(DocumentsGenerated)
	prometheus.MustRegister(InvalidPercentageNotices)
	prometheus.MustRegister(RuntimeMemoryBytes)
	prometheus.MustRegister(RateLimiterBucketsTotal)
}
