package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Turn outcomes recorded by the gateway.
const (
	OutcomeOK              = "ok"
	OutcomeValidationError = "validation_error"
	OutcomeProviderError   = "provider_error"
	OutcomeHistorySync     = "history_sync_error"
)

// Metrics holds the Prometheus collectors of the relay. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	TurnsTotal       *prometheus.CounterVec
	ProviderDuration prometheus.Histogram
	Sessions         prometheus.Gauge
}

// NewMetrics creates and registers all metrics on a private registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		TurnsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tina_chat_turns_total",
				Help: "Total number of handled chat turns by outcome",
			},
			[]string{"outcome"},
		),
		ProviderDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tina_provider_request_duration_seconds",
				Help:    "Duration of provider calls including the full reply drain",
				Buckets: prometheus.DefBuckets,
			},
		),
		Sessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tina_sessions",
				Help: "Number of sessions held in memory",
			},
		),
	}

	registry.MustRegister(
		m.TurnsTotal,
		m.ProviderDuration,
		m.Sessions,
	)

	return m
}

func (m *Metrics) RecordTurn(outcome string) {
	if m == nil {
		return
	}
	m.TurnsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveProvider(seconds float64) {
	if m == nil {
		return
	}
	m.ProviderDuration.Observe(seconds)
}

func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.Sessions.Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
