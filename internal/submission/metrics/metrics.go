package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the submission gate.
type Metrics struct {
	// Decision outcomes by status and reason
	DecisionOutcome *prometheus.CounterVec

	// Gate evaluation latency, including validation
	EvaluateLatency prometheus.Histogram

	// Field failures by error kind, counted on rejected submissions
	FieldFailures *prometheus.CounterVec
}

// New creates a Metrics instance registered with reg. A nil reg falls back to
// the default Prometheus registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		DecisionOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "formgate_submission_decisions_total",
			Help: "Total submission decisions by status and reason",
		}, []string{"status", "reason"}),

		EvaluateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "formgate_submission_evaluate_duration_seconds",
			Help:    "Duration of submission gate evaluation",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
		}),

		FieldFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "formgate_validation_field_failures_total",
			Help: "Total field validation failures by error kind",
		}, []string{"kind"}),
	}
}

// IncrementOutcome records a decision outcome. Ready decisions use reason "none".
func (m *Metrics) IncrementOutcome(status, reason string) {
	if m != nil {
		if reason == "" {
			reason = "none"
		}
		m.DecisionOutcome.WithLabelValues(status, reason).Inc()
	}
}

// ObserveEvaluateLatency records the gate evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}

// IncrementFieldFailure records one failing field of the given error kind.
func (m *Metrics) IncrementFieldFailure(kind string) {
	if m != nil {
		m.FieldFailures.WithLabelValues(kind).Inc()
	}
}
