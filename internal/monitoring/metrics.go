package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the quick-input service.
type Metrics struct {
	// Session metrics
	SessionsActive  prometheus.Gauge
	SessionsCreated prometheus.Counter

	// Update pipeline metrics
	UpdatesSent       *prometheus.CounterVec
	MutationsBuffered prometheus.Counter
	FlushesCancelled  prometheus.Counter

	// Inbound event metrics
	EventsDispatched *prometheus.CounterVec
	EventsDropped    prometheus.Counter

	// One-shot flow metrics
	Picks  *prometheus.CounterVec
	Inputs *prometheus.CounterVec

	// Transport metrics
	WSConnections prometheus.Gauge
	SendFailures  prometheus.Counter

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	startTime time.Time
	Uptime    prometheus.Gauge
}

// New creates a metrics collector registered on reg. Pass a fresh
// registry in tests to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		startTime: time.Now(),

		SessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "quickinput_sessions_active",
			Help: "Number of live quick-input sessions",
		}),
		SessionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "quickinput_sessions_created_total",
			Help: "Total quick-input sessions created",
		}),

		UpdatesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "quickinput_updates_sent_total",
			Help: "Outbound session updates by flush kind",
		}, []string{"kind"}),
		MutationsBuffered: factory.NewCounter(prometheus.CounterOpts{
			Name: "quickinput_mutations_buffered_total",
			Help: "Property mutations merged into pending buffers",
		}),
		FlushesCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "quickinput_flushes_cancelled_total",
			Help: "Deferred flushes cancelled by a visibility change",
		}),

		EventsDispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "quickinput_events_dispatched_total",
			Help: "Inbound renderer events by type",
		}, []string{"type"}),
		EventsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "quickinput_events_dropped_total",
			Help: "Inbound events dropped (unknown session or rate limited)",
		}),

		Picks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "quickinput_picks_total",
			Help: "One-shot pick flows by outcome",
		}, []string{"outcome"}),
		Inputs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "quickinput_inputs_total",
			Help: "One-shot input flows by outcome",
		}, []string{"outcome"}),

		WSConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "quickinput_ws_connections",
			Help: "Attached renderer connections",
		}),
		SendFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "quickinput_send_failures_total",
			Help: "Outbound sends that failed or had no channel",
		}),

		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "quickinput_http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quickinput_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "path"}),

		Uptime: factory.NewGauge(prometheus.GaugeOpts{
			Name: "quickinput_uptime_seconds",
			Help: "Service uptime in seconds",
		}),
	}
}

// NewDefault creates a metrics collector on the default registry.
func NewDefault() *Metrics {
	return New(prometheus.DefaultRegisterer)
}

// UpdateUptime refreshes the uptime gauge.
func (m *Metrics) UpdateUptime() {
	m.Uptime.Set(time.Since(m.startTime).Seconds())
}
