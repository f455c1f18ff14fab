package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "env_report"

// ============================================================================
// Histogram bucket configurations
// ============================================================================
//
// Using ExponentialBucketsRange for fine-grained latency measurement:
// - Denser buckets at lower latencies (where most requests fall)
// - Sparser buckets at higher latencies (tail detection)

const (
	// Request duration: 0.1ms ~ 2s (full report build + serialization)
	requestDurationMin   = 0.0001 // 0.1ms
	requestDurationMax   = 2.0    // 2s
	requestDurationCount = 14     // ~2x factor between buckets

	// Report build: 0.05ms ~ 1s (pure in-memory traversal)
	buildDurationMin   = 0.00005 // 0.05ms
	buildDurationMax   = 1.0     // 1s
	buildDurationCount = 12      // ~2x factor
)

// ============================================================================
// Histograms - Latency measurements
// ============================================================================

var (
	// RequestDuration: Total time to serve an env endpoint request
	// Labels: endpoint (full/source), status (HTTP status class)
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Time spent serving environment report requests",
			Buckets:   prometheus.ExponentialBucketsRange(requestDurationMin, requestDurationMax, requestDurationCount),
		},
		[]string{"endpoint", "status"},
	)

	// BuildDuration: Report assembly time (classification + traversal)
	BuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Time spent assembling environment reports",
			Buckets:   prometheus.ExponentialBucketsRange(buildDurationMin, buildDurationMax, buildDurationCount),
		},
	)
)

// ============================================================================
// Counters - Request/Key counts
// ============================================================================

var (
	// RequestsTotal: Total requests by endpoint and status
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of environment report requests",
		},
		[]string{"endpoint", "status"},
	)

	// KeysReported: Keys included in reports by disposition (masked/plain)
	KeysReported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keys_reported_total",
			Help:      "Total number of property keys included in reports",
		},
		[]string{"disposition"},
	)

	// ErrorsTotal: Errors by type (auth, build)
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total number of errors by type",
		},
		[]string{"type"},
	)
)

// ============================================================================
// Gauges - Current state
// ============================================================================

var (
	// RequestsInFlight: Concurrent requests being processed
	RequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "requests_in_flight",
			Help:      "Number of report requests currently being processed",
		},
	)
)

// ============================================================================
// Label constants
// ============================================================================

// Endpoint labels for RequestDuration and RequestsTotal
const (
	EndpointFull   = "full"
	EndpointSource = "source"
)

// Disposition labels for KeysReported
const (
	DispositionMasked = "masked"
	DispositionPlain  = "plain"
)

// Error type labels for ErrorsTotal
const (
	ErrorTypeAuth  = "auth"
	ErrorTypeBuild = "build"
)
