package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Webhook metrics
	WebhookEventsTotal    *prometheus.CounterVec
	WebhookDuration       *prometheus.HistogramVec
	WebhookDuplicateTotal prometheus.Counter

	// Platform sync metrics
	PlatformSyncTotal *prometheus.CounterVec

	// Gateway client metrics
	GatewayRequestsTotal   *prometheus.CounterVec
	GatewayRequestDuration *prometheus.HistogramVec
}

// New creates a new Metrics instance with all metrics registered.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "paygate"
	}

	return &Metrics{
		// HTTP metrics
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),

		// Webhook metrics
		WebhookEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "webhook",
				Name:      "events_total",
				Help:      "Total number of webhook events by type and outcome",
			},
			[]string{"entity", "action", "outcome"}, // outcome: processed, rejected, failed
		),
		WebhookDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "webhook",
				Name:      "processing_duration_seconds",
				Help:      "Webhook processing duration in seconds",
				Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"entity", "action"},
		),
		WebhookDuplicateTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "webhook",
				Name:      "duplicates_total",
				Help:      "Total number of duplicate webhook deliveries absorbed",
			},
		),

		// Platform sync metrics
		PlatformSyncTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "platform",
				Name:      "sync_total",
				Help:      "Total number of platform order synchronizations",
			},
			[]string{"state", "status"}, // status: ok, error
		),

		// Gateway client metrics
		GatewayRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "requests_total",
				Help:      "Total number of gateway API requests",
			},
			[]string{"operation", "status"},
		),
		GatewayRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "request_duration_seconds",
				Help:      "Gateway API request duration in seconds",
				Buckets:   []float64{.025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"operation"},
		),
	}
}

// --- Convenience methods ---

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	statusStr := strconv.Itoa(status)
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordWebhookEvent records a processed webhook event.
func (m *Metrics) RecordWebhookEvent(entity, action, outcome string, duration time.Duration) {
	m.WebhookEventsTotal.WithLabelValues(entity, action, outcome).Inc()
	m.WebhookDuration.WithLabelValues(entity, action).Observe(duration.Seconds())
}

// RecordPlatformSync records a platform order synchronization.
func (m *Metrics) RecordPlatformSync(state string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.PlatformSyncTotal.WithLabelValues(state, status).Inc()
}

// RecordGatewayRequest records a gateway API request.
func (m *Metrics) RecordGatewayRequest(operation string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.GatewayRequestsTotal.WithLabelValues(operation, status).Inc()
	m.GatewayRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
