// Package metrics provides Prometheus metrics for the fightelo rating
// pipeline. A run is a batch computation, so most metrics are counters and
// run-scoped histograms; the serve command exposes them on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Rating run metrics.
	boutsProcessed  prometheus.Counter
	boutsSkipped    prometheus.Counter
	classifications *prometheus.CounterVec
	runDuration     prometheus.Histogram
	competitorCount prometheus.Gauge

	// Ingestion quality metrics.
	rowsIngested  prometheus.Counter
	parseFailures prometheus.Counter

	// HTTP metrics for the serve command.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid the default Go runtime metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fightelo",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.boutsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "bouts_processed_total",
		Help:      "Total number of bouts that produced a rating update",
	})

	m.boutsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "bouts_skipped_total",
		Help:      "Total number of bouts skipped for unresolved outcomes",
	})

	m.classifications = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "classifications_total",
			Help:      "Total classifications by category",
		},
		[]string{"category"},
	)

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_milliseconds",
		Help:      "Histogram of full rating run duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.competitorCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "competitor_count",
		Help:      "Number of competitors seen in the latest run",
	})

	m.rowsIngested = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_ingested_total",
		Help:      "Total number of source rows read during ingestion",
	})

	m.parseFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "parse_failures_total",
		Help:      "Total number of non-fatal parse failures (dates, labels)",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// Package-level helpers against the global manager.

// RecordBoutProcessed counts one bout that updated ratings.
func RecordBoutProcessed() {
	if globalManager.enabled {
		globalManager.boutsProcessed.Inc()
	}
}

// RecordBoutSkipped counts one bout excluded for an unresolved outcome.
func RecordBoutSkipped() {
	if globalManager.enabled {
		globalManager.boutsSkipped.Inc()
	}
}

// RecordClassification counts one classification by category tag.
func RecordClassification(category string) {
	if globalManager.enabled {
		globalManager.classifications.WithLabelValues(category).Inc()
	}
}

// ObserveRunDuration records a full rating run duration in milliseconds.
func ObserveRunDuration(ms float64) {
	if globalManager.enabled {
		globalManager.runDuration.Observe(ms)
	}
}

// UpdateCompetitorCount sets the number of competitors in the latest run.
func UpdateCompetitorCount(n int) {
	if globalManager.enabled {
		globalManager.competitorCount.Set(float64(n))
	}
}

// RecordRowsIngested counts source rows read during ingestion.
func RecordRowsIngested(n int) {
	if globalManager.enabled {
		globalManager.rowsIngested.Add(float64(n))
	}
}

// RecordParseFailure counts one non-fatal parse failure.
func RecordParseFailure() {
	if globalManager.enabled {
		globalManager.parseFailures.Inc()
	}
}

// RecordHTTPRequest counts one HTTP request on the serve command.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records one HTTP request duration in
// milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// Handler exposes the custom registry for /metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}

// GetRegistry returns the custom registry, mainly for tests.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
