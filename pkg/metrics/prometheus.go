// Package metrics provides Prometheus metrics for the SWIRI demo service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// confidenceBuckets covers the 0-100 confidence percentage.
var confidenceBuckets = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 95, 99, 100}

// latencyBuckets are in milliseconds; inference is sub-millisecond.
var latencyBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100}

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Pipeline metrics
	windowsGenerated         *prometheus.CounterVec
	classifications          *prometheus.CounterVec
	classificationConfidence prometheus.Histogram
	inferenceLatency         prometheus.Histogram
	modelLoaded              prometheus.Gauge

	// Session workflow metrics
	activeSessions  prometheus.Gauge
	sessionsCreated prometheus.Counter
	sessionsExpired prometheus.Counter
	dangerAlerts    prometheus.Counter
	captures        prometheus.Counter
	confirmations   *prometheus.CounterVec
	domainErrors    *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "swiri",
		subsystem:        "monitor",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	}, labels)
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets,
	})
}

func (m *Manager) initializeMetrics() {
	m.windowsGenerated = m.counterVec("windows_generated_total", "Sensor windows synthesized, by scenario", "scenario")
	m.classifications = m.counterVec("classifications_total", "Classifier predictions, by label", "label")
	m.classificationConfidence = m.histogram("classification_confidence_percent", "Confidence of each prediction in percent", confidenceBuckets)
	m.inferenceLatency = m.histogram("inference_latency_milliseconds", "Feature extraction plus classifier latency in milliseconds", latencyBuckets)
	m.modelLoaded = m.gauge("model_loaded", "1 when the classifier artifact is loaded, 0 when classification is disabled")

	m.activeSessions = m.gauge("active_sessions", "Demo sessions currently held in memory")
	m.sessionsCreated = m.counter("sessions_created_total", "Demo sessions created")
	m.sessionsExpired = m.counter("sessions_expired_total", "Demo sessions removed by expiry or eviction")
	m.dangerAlerts = m.counter("danger_alerts_total", "Predictions that raised a danger alert")
	m.captures = m.counter("emergency_captures_total", "Emergency photos recorded")
	m.confirmations = m.counterVec("confirmations_total", "Parent responses to danger alerts, by outcome", "outcome")
	m.domainErrors = m.counterVec("domain_errors_total", "Pipeline errors, by kind", "kind")

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "HTTP errors by endpoint", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// RecordWindowGenerated counts a synthesized window.
func (m *Manager) RecordWindowGenerated(scenario string) {
	m.windowsGenerated.WithLabelValues(scenario).Inc()
}

// RecordClassification counts a prediction and observes its confidence.
func (m *Manager) RecordClassification(label string, confidence, latencyMs float64) {
	m.classifications.WithLabelValues(label).Inc()
	m.classificationConfidence.Observe(confidence)
	m.inferenceLatency.Observe(latencyMs)
}

// SetModelLoaded records whether classification is available.
func (m *Manager) SetModelLoaded(loaded bool) {
	if loaded {
		m.modelLoaded.Set(1)
		return
	}
	m.modelLoaded.Set(0)
}

// UpdateActiveSessions sets the number of live sessions.
func (m *Manager) UpdateActiveSessions(n int) { m.activeSessions.Set(float64(n)) }

// RecordSessionCreated counts a new session.
func (m *Manager) RecordSessionCreated() { m.sessionsCreated.Inc() }

// RecordSessionsExpired counts removed sessions.
func (m *Manager) RecordSessionsExpired(n int) { m.sessionsExpired.Add(float64(n)) }

// RecordDangerAlert counts a danger alert.
func (m *Manager) RecordDangerAlert() { m.dangerAlerts.Inc() }

// RecordCapture counts an emergency capture.
func (m *Manager) RecordCapture() { m.captures.Inc() }

// RecordConfirmation counts a parent response.
func (m *Manager) RecordConfirmation(outcome string) {
	m.confirmations.WithLabelValues(outcome).Inc()
}

// RecordDomainError counts a pipeline error of the given kind.
func (m *Manager) RecordDomainError(kind string) {
	m.domainErrors.WithLabelValues(kind).Inc()
}

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint records an HTTP error.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// Package-level helpers delegate to the global manager.

// RecordWindowGenerated counts a synthesized window.
func RecordWindowGenerated(scenario string) { globalManager.RecordWindowGenerated(scenario) }

// RecordClassification counts a prediction and observes its confidence and latency.
func RecordClassification(label string, confidence, latencyMs float64) {
	globalManager.RecordClassification(label, confidence, latencyMs)
}

// SetModelLoaded records whether classification is available.
func SetModelLoaded(loaded bool) { globalManager.SetModelLoaded(loaded) }

// UpdateActiveSessions sets the number of live sessions.
func UpdateActiveSessions(n int) { globalManager.UpdateActiveSessions(n) }

// RecordSessionCreated counts a new session.
func RecordSessionCreated() { globalManager.RecordSessionCreated() }

// RecordSessionsExpired counts removed sessions.
func RecordSessionsExpired(n int) { globalManager.RecordSessionsExpired(n) }

// RecordDangerAlert counts a danger alert.
func RecordDangerAlert() { globalManager.RecordDangerAlert() }

// RecordCapture counts an emergency capture.
func RecordCapture() { globalManager.RecordCapture() }

// RecordConfirmation counts a parent response.
func RecordConfirmation(outcome string) { globalManager.RecordConfirmation(outcome) }

// RecordDomainError counts a pipeline error of the given kind.
func RecordDomainError(kind string) { globalManager.RecordDomainError(kind) }

// RecordHTTPRequest records an HTTP request and its duration.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordErrorByEndpoint records an HTTP error.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// UpdateSystemMemoryUsage updates system memory usage.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom registry for serving metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
