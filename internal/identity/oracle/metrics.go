package oracle

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Call results used as metric labels.
const (
	resultOK            = "ok"
	resultNoMatch       = "no_match"
	resultInvalidSample = "invalid_sample"
	resultUnavailable   = "unavailable"
	resultCircuitOpen   = "circuit_open"
)

// Metrics provides observability for oracle calls.
type Metrics struct {
	CallLatency  *prometheus.HistogramVec
	BreakerState prometheus.Gauge
}

func NewMetrics() *Metrics {
	return &Metrics{
		CallLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rollcall_oracle_call_duration_seconds",
			Help:    "Duration of identity oracle calls by operation and result",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 15},
		}, []string{"operation", "result"}),

		BreakerState: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "rollcall_oracle_circuit_open",
			Help: "1 when the oracle circuit breaker is open",
		}),
	}
}

func (m *Metrics) ObserveCall(operation, result string, d time.Duration) {
	if m != nil {
		m.CallLatency.WithLabelValues(operation, result).Observe(d.Seconds())
	}
}

func (m *Metrics) SetBreakerOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.BreakerState.Set(1)
		return
	}
	m.BreakerState.Set(0)
}
