package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the compliance module.
type Metrics struct {
	// Verdicts by jurisdiction and outcome
	VerdictTotal *prometheus.CounterVec

	// Violations by kind
	ViolationTotal *prometheus.CounterVec

	// Overall evaluation latency
	EvaluateLatency prometheus.Histogram
}

// New creates a Metrics instance with all compliance metrics registered.
func New() *Metrics {
	return &Metrics{
		VerdictTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cannagate_compliance_verdicts_total",
			Help: "Checkout verdicts by jurisdiction and outcome",
		}, []string{"jurisdiction", "verdict"}), // verdict: "allowed", "blocked"

		ViolationTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cannagate_compliance_violations_total",
			Help: "Individual rule violations by kind",
		}, []string{"kind"}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cannagate_compliance_evaluate_duration_seconds",
			Help:    "Duration of full checkout evaluation including audit emission",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// IncVerdict records a checkout verdict.
func (m *Metrics) IncVerdict(jurisdiction, verdict string) {
	if m != nil {
		m.VerdictTotal.WithLabelValues(jurisdiction, verdict).Inc()
	}
}

// IncViolation records a single rule violation.
func (m *Metrics) IncViolation(kind string) {
	if m != nil {
		m.ViolationTotal.WithLabelValues(kind).Inc()
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}
