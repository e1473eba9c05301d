package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordOutcome("filled")
	m.RecordOutcome("filled")
	m.RecordOutcome("not_found")
	m.RecordMaskRewrite("cpf")
	m.LookupStarted()
	m.LookupStarted()
	m.LookupFinished()
	m.ObserveLookupDuration(0.2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LookupsTotal.WithLabelValues("filled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LookupsTotal.WithLabelValues("not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MaskRewritesTotal.WithLabelValues("cpf")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LookupsInFlight))
	assert.Equal(t, 1, testutil.CollectAndCount(m.LookupDurationSeconds))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordOutcome("filled")
		m.RecordMaskRewrite("cep")
		m.LookupStarted()
		m.LookupFinished()
		m.ObserveLookupDuration(1)
	})
}
