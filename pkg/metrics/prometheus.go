// Package metrics provides Prometheus metrics for the roster service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager owns every Prometheus collector of the roster service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	refreshInterval  time.Duration
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Store metrics
	playersTotal      prometheus.Gauge
	playerMutations   *prometheus.CounterVec
	storeNotFound     *prometheus.CounterVec
	storeOpLatency    *prometheus.HistogramVec
	lastAllocatedID   prometheus.Gauge
	queryResults      prometheus.Histogram
	queryLatency      prometheus.Histogram
	validationFailure *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRateLimited     *prometheus.CounterVec
	errorsByEndpoint    *prometheus.CounterVec
	errorsByType        *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // service-wide registry

var globalManager = NewManager(WithPrometheusRegistry(customRegistry)) //nolint:gochecknoglobals // singleton used by Record* helpers

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "roster",
		subsystem:        "players",
		histogramBuckets: prometheus.DefBuckets,
		refreshInterval:  defaultRefreshInterval,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// RefreshInterval reports how often gauges sampled by the process should be refreshed.
func (m *Manager) RefreshInterval() time.Duration {
	return m.refreshInterval
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.playersTotal = auto.NewGauge(m.gaugeOpts("total", "Number of player records currently held by the store"))
	m.lastAllocatedID = auto.NewGauge(m.gaugeOpts("last_allocated_id", "Most recently allocated player id"))

	m.playerMutations = auto.NewCounterVec(
		m.counterOpts("mutations_total", "Player mutations by operation and outcome"),
		[]string{"op", "outcome"},
	)
	m.storeNotFound = auto.NewCounterVec(
		m.counterOpts("store_not_found_total", "Store lookups for unknown player ids"),
		[]string{"op"},
	)
	m.storeOpLatency = auto.NewHistogramVec(
		m.histogramOpts("store_op_latency_milliseconds", "Store operation latency in milliseconds", m.histogramBuckets),
		[]string{"op"},
	)
	m.queryResults = auto.NewHistogram(m.histogramOpts(
		"query_results", "Number of players matched by a list query",
		[]float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
	))
	m.queryLatency = auto.NewHistogram(m.histogramOpts(
		"query_latency_milliseconds", "Search, filter and paginate latency in milliseconds", m.histogramBuckets,
	))
	m.validationFailure = auto.NewCounterVec(
		m.counterOpts("validation_failures_total", "Draft validation failures by field"),
		[]string{"field"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "HTTP requests by endpoint, method and status code"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRateLimited = auto.NewCounterVec(
		m.counterOpts("http_rate_limited_total", "Requests rejected by the rate limiter"),
		[]string{"endpoint"},
	)
	m.errorsByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by endpoint, method and error type"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorsByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "Heap bytes allocated"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds", "Average GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
}

// Store metrics.

// UpdatePlayersTotal sets the number of stored players.
func UpdatePlayersTotal(count int) {
	globalManager.playersTotal.Set(float64(count))
}

// UpdateLastAllocatedID records the id handed out by the latest add.
func UpdateLastAllocatedID(id int) {
	globalManager.lastAllocatedID.Set(float64(id))
}

// RecordPlayerMutation counts an add/update/delete with its outcome
// ("ok", "not_found", "noop", "invalid").
func RecordPlayerMutation(op, outcome string) {
	globalManager.playerMutations.WithLabelValues(op, outcome).Inc()
}

// RecordStoreNotFound counts a lookup for an unknown id.
func RecordStoreNotFound(op string) {
	globalManager.storeNotFound.WithLabelValues(op).Inc()
}

// RecordStoreOpLatency records store operation latency.
func RecordStoreOpLatency(op string, latencyMs float64) {
	globalManager.storeOpLatency.WithLabelValues(op).Observe(latencyMs)
}

// RecordQuery records the size and latency of a list query.
func RecordQuery(matched int, latencyMs float64) {
	globalManager.queryResults.Observe(float64(matched))
	globalManager.queryLatency.Observe(latencyMs)
}

// RecordValidationFailure counts a rejected field.
func RecordValidationFailure(field string) {
	globalManager.validationFailure.WithLabelValues(field).Inc()
}

// HTTP metrics.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordRateLimited counts a request rejected by the limiter.
func RecordRateLimited(endpoint string) {
	globalManager.httpRateLimited.WithLabelValues(endpoint).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// System metrics.

// UpdateSystemMemoryUsage sets heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// RefreshInterval returns the sampling interval of the global manager.
func RefreshInterval() time.Duration {
	return globalManager.RefreshInterval()
}

// GetRegistry returns the service registry served on /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// SinceMs returns milliseconds elapsed since start as a float.
func SinceMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
