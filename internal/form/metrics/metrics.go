// Package metrics provides Prometheus metrics for the form handlers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is safe to use through a nil pointer; every method is then a no-op.
type Metrics struct {
	LookupsTotal          *prometheus.CounterVec // fill flow runs by outcome
	LookupDurationSeconds prometheus.Histogram   // time spent waiting on the lookup service
	LookupsInFlight       prometheus.Gauge
	MaskRewritesTotal     *prometheus.CounterVec // field rewrites by mask kind
}

// New registers the form metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LookupsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cadastro_postal_fill_total",
			Help: "Postal fill flow runs by outcome (skipped, filled, not_found, transport_error)",
		}, []string{"outcome"}),

		LookupDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cadastro_postal_lookup_duration_seconds",
			Help:    "Duration of postal lookup calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		LookupsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cadastro_postal_lookups_in_flight",
			Help: "Postal lookups started and not yet finished",
		}),

		MaskRewritesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cadastro_mask_rewrites_total",
			Help: "Field values rewritten by a mask, by mask kind",
		}, []string{"kind"}),
	}
}

func (m *Metrics) RecordOutcome(outcome string) {
	if m == nil {
		return
	}
	m.LookupsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveLookupDuration(seconds float64) {
	if m == nil {
		return
	}
	m.LookupDurationSeconds.Observe(seconds)
}

func (m *Metrics) LookupStarted() {
	if m == nil {
		return
	}
	m.LookupsInFlight.Inc()
}

func (m *Metrics) LookupFinished() {
	if m == nil {
		return
	}
	m.LookupsInFlight.Dec()
}

func (m *Metrics) RecordMaskRewrite(kind string) {
	if m == nil {
		return
	}
	m.MaskRewritesTotal.WithLabelValues(kind).Inc()
}
