package compliance

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks the health of the fail-closed compliance audit path.
type Metrics struct {
	PersistFailures prometheus.Counter
	PersistLatency  prometheus.Histogram
}

// NewMetrics registers the publisher metrics on the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		PersistFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cannagate_audit_compliance_persist_failures_total",
			Help: "Total failed compliance audit writes; each one blocked a checkout",
		}),
		PersistLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cannagate_audit_compliance_persist_duration_seconds",
			Help:    "Duration of synchronous compliance audit writes",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}),
	}
}

// IncPersistFailures records a failed audit write.
func (m *Metrics) IncPersistFailures() {
	if m != nil {
		m.PersistFailures.Inc()
	}
}

// ObservePersistLatency records the duration of a successful write.
func (m *Metrics) ObservePersistLatency(d time.Duration) {
	if m != nil {
		m.PersistLatency.Observe(d.Seconds())
	}
}
