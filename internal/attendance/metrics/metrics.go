package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the attendance module.
type Metrics struct {
	// Terminal decisions by outcome
	DecisionOutcome *prometheus.CounterVec

	// Full Decide latency, including the oracle call and writes
	DecideLatency prometheus.Histogram

	// Suspicious events that could not be recorded, by reason
	RecorderFailures *prometheus.CounterVec

	// Number of fences evaluated per decision
	FencesEvaluated prometheus.Histogram
}

// New creates a new Metrics instance with all attendance metrics registered.
func New() *Metrics {
	return &Metrics{
		DecisionOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rollcall_attendance_decisions_total",
			Help: "Total attendance decisions by outcome",
		}, []string{"outcome"}),

		DecideLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "rollcall_attendance_decide_duration_seconds",
			Help:    "Duration of a full attendance decision",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}),

		RecorderFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rollcall_attendance_recorder_failures_total",
			Help: "Suspicious events that failed to persist, by reason",
		}, []string{"reason"}),

		FencesEvaluated: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "rollcall_attendance_fences_evaluated",
			Help:    "Number of configured fences seen per decision",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
	}
}

// IncrementOutcome records a terminal decision.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.DecisionOutcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveDecideLatency records the total decision duration.
func (m *Metrics) ObserveDecideLatency(d time.Duration) {
	if m != nil {
		m.DecideLatency.Observe(d.Seconds())
	}
}

// IncrementRecorderFailure counts a lost suspicious event.
func (m *Metrics) IncrementRecorderFailure(reason string) {
	if m != nil {
		m.RecorderFailures.WithLabelValues(reason).Inc()
	}
}

// ObserveFenceCount records how many fences a decision evaluated.
func (m *Metrics) ObserveFenceCount(n int) {
	if m != nil {
		m.FencesEvaluated.Observe(float64(n))
	}
}
