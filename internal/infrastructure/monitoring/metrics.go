package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Evaluation metrics
	EvaluationsTotal   *prometheus.CounterVec
	EvaluationDuration *prometheus.HistogramVec

	// WebSocket metrics
	WSConnections prometheus.Gauge

	startTime time.Time

	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds current counter values for the JSON health endpoint
type Snapshot struct {
	TotalRequests    int64   `json:"total_requests"`
	TotalEvaluations int64   `json:"total_evaluations"`
	FailedEvals      int64   `json:"failed_evaluations"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
}

// NewMetrics creates a metrics collector on its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calc_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "calc_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "path"},
		),

		EvaluationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calc_evaluations_total",
				Help: "Total number of expression evaluations by outcome",
			},
			[]string{"mode", "outcome"},
		),
		EvaluationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "calc_evaluation_duration_seconds",
				Help:    "Expression evaluation duration in seconds",
				Buckets: []float64{.000001, .000005, .00001, .00005, .0001, .0005, .001, .01},
			},
			[]string{"mode"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "calc_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "calc_uptime_seconds",
			Help: "Server uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.mu.Unlock()
}

// RecordEvaluation records one evaluation; outcome is "ok" or an error kind
func (m *Metrics) RecordEvaluation(mode, outcome string, duration time.Duration) {
	m.EvaluationsTotal.WithLabelValues(mode, outcome).Inc()
	m.EvaluationDuration.WithLabelValues(mode).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalEvaluations++
	if outcome != OutcomeOK {
		m.snapshot.FailedEvals++
	}
	m.mu.Unlock()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}

// Snapshot returns a copy of the current counters
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.snapshot
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
