// Package metrics provides Prometheus metrics for the pulse dashboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the pulse service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Snapshot lifecycle - the cache is the only mutable shared resource
	snapshotRefreshes       prometheus.Counter
	snapshotRefreshFailures prometheus.Counter
	snapshotRefreshDuration prometheus.Histogram
	snapshotAgeSeconds      prometheus.Gauge
	snapshotRows            *prometheus.GaugeVec

	// Cache behavior
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter

	// Document retrieval
	fetchErrors   *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec

	// Aggregate computation
	viewLatency *prometheus.HistogramVec

	// HTTP performance
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System health
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pulse",
		subsystem:        "dashboard",
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

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.snapshotRefreshes = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "snapshot_refreshes_total",
		Help: "Number of completed snapshot refreshes",
	})
	m.snapshotRefreshFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "snapshot_refresh_failures_total",
		Help: "Number of snapshot refreshes that failed and left the stale snapshot in place",
	})
	m.snapshotRefreshDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "snapshot_refresh_duration_ms",
		Help:    "Snapshot refresh duration in milliseconds",
		Buckets: m.histogramBuckets,
	})
	m.snapshotAgeSeconds = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "snapshot_age_seconds",
		Help: "Age of the current snapshot",
	})
	m.snapshotRows = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "snapshot_rows",
		Help: "Row count per table in the current snapshot",
	}, []string{"table"})

	m.cacheHits = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "cache_hits_total",
		Help: "Loads served from the live snapshot",
	})
	m.cacheMisses = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "cache_misses_total",
		Help: "Loads that triggered a refresh (expiry or force)",
	})

	m.fetchErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "fetch_errors_total",
		Help: "Document fetch failures by document",
	}, []string{"document"})
	m.fetchDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "fetch_duration_ms",
		Help:    "Document fetch duration in milliseconds by document",
		Buckets: m.histogramBuckets,
	}, []string{"document"})

	m.viewLatency = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "view_latency_ms",
		Help:    "Aggregate computation latency in milliseconds by view",
		Buckets: m.histogramBuckets,
	}, []string{"view"})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total",
		Help: "HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_memory_bytes",
		Help: "Allocated heap bytes",
	})
	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_goroutines",
		Help: "Current goroutine count",
	})
}

// GetRegistry returns the custom Prometheus registry used by the global
// manager, for wiring the /metrics handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers against the global manager.

// RecordSnapshotRefresh records one successful refresh and its duration.
func RecordSnapshotRefresh(durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.snapshotRefreshes.Inc()
	globalManager.snapshotRefreshDuration.Observe(durationMs)
}

// RecordSnapshotRefreshFailure records a refresh that surfaced an error.
func RecordSnapshotRefreshFailure() {
	if !globalManager.enabled {
		return
	}
	globalManager.snapshotRefreshFailures.Inc()
}

// SetSnapshotAge publishes the current snapshot age.
func SetSnapshotAge(seconds float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.snapshotAgeSeconds.Set(seconds)
}

// SetSnapshotRows publishes the row count of one snapshot table.
func SetSnapshotRows(table string, rows int) {
	if !globalManager.enabled {
		return
	}
	globalManager.snapshotRows.WithLabelValues(table).Set(float64(rows))
}

// RecordCacheHit counts a load served from the live snapshot.
func RecordCacheHit() {
	if !globalManager.enabled {
		return
	}
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss counts a load that went through a refresh.
func RecordCacheMiss() {
	if !globalManager.enabled {
		return
	}
	globalManager.cacheMisses.Inc()
}

// RecordFetchError counts a failed document download.
func RecordFetchError(document string) {
	if !globalManager.enabled {
		return
	}
	globalManager.fetchErrors.WithLabelValues(document).Inc()
}

// RecordFetchDuration records one document download duration.
func RecordFetchDuration(document string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.fetchDuration.WithLabelValues(document).Observe(durationMs)
}

// RecordViewLatency records one aggregate computation by view name.
func RecordViewLatency(view string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.viewLatency.WithLabelValues(view).Observe(durationMs)
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

// UpdateSystemMemoryUsage publishes allocated heap bytes.
func UpdateSystemMemoryUsage(bytes float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemMemoryUsage.Set(bytes)
}

// UpdateSystemGoroutineCount publishes the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGoroutineCount.Set(float64(count))
}
