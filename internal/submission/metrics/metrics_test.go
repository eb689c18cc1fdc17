package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_IncrementOutcome(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementOutcome("ready", "")
	m.IncrementOutcome("rejected", "no_data")
	m.IncrementOutcome("rejected", "no_data")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DecisionOutcome.WithLabelValues("ready", "none")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DecisionOutcome.WithLabelValues("rejected", "no_data")))
}

func TestMetrics_FieldFailures(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementFieldFailure("required")
	m.IncrementFieldFailure("out_of_range")
	m.IncrementFieldFailure("required")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FieldFailures.WithLabelValues("required")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FieldFailures.WithLabelValues("out_of_range")))
}

func TestMetrics_ObserveEvaluateLatency(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveEvaluateLatency(2 * time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "formgate_submission_evaluate_duration_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementOutcome("ready", "")
		m.IncrementFieldFailure("required")
		m.ObserveEvaluateLatency(time.Millisecond)
	})
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
