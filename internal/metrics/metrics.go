package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the flight board
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Business Metrics
	FlightMutationsTotal *prometheus.CounterVec
	EventPublishFailures prometheus.Counter
}

// NewMetricsRegistry registers every metric with reg. Passing a fresh
// prometheus.NewRegistry() keeps tests independent of the default registry.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightboard_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightboard_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "flightboard_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		DBQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightboard_db_queries_total",
				Help: "Total database queries by operation type and outcome",
			},
			[]string{"query_type", "outcome"},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightboard_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),

		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightboard_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightboard_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		FlightMutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightboard_flight_mutations_total",
				Help: "Committed flight mutations by operation",
			},
			[]string{"operation"},
		),
		EventPublishFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "flightboard_event_publish_failures_total",
				Help: "Flight events that could not be published",
			},
		),
	}
}

// ObserveQuery records one database call. A nil registry is a no-op.
func (m *MetricsRegistry) ObserveQuery(queryType string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.DBQueriesTotal.WithLabelValues(queryType, outcome).Inc()
	m.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(start).Seconds())
}

func (m *MetricsRegistry) CacheHit(pattern string) {
	if m != nil {
		m.CacheHitsTotal.WithLabelValues(pattern).Inc()
	}
}

func (m *MetricsRegistry) CacheMiss(pattern string) {
	if m != nil {
		m.CacheMissesTotal.WithLabelValues(pattern).Inc()
	}
}

func (m *MetricsRegistry) FlightMutation(operation string) {
	if m != nil {
		m.FlightMutationsTotal.WithLabelValues(operation).Inc()
	}
}

func (m *MetricsRegistry) EventPublishFailed() {
	if m != nil {
		m.EventPublishFailures.Inc()
	}
}
