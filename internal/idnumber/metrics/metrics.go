package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for identifier validation.
type Metrics struct {
	// Outcomes by identifier type and outcome ("accepted", "empty", or a failure class)
	Validations *prometheus.CounterVec

	// Validation latency by identifier type
	ValidationLatency *prometheus.HistogramVec

	// Items per batch request
	BatchSize prometheus.Histogram
}

// New creates a Metrics instance registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Validations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "idcheck_validations_total",
			Help: "Identifier validations by type and outcome",
		}, []string{"type", "outcome"}),

		ValidationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "idcheck_validation_duration_seconds",
			Help:    "Duration of a single identifier validation",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
		}, []string{"type"}),

		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "idcheck_batch_size",
			Help:    "Number of identifiers per batch request",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		}),
	}
}

// IncrementOutcome records one validation outcome.
func (m *Metrics) IncrementOutcome(typ, outcome string) {
	if m != nil {
		m.Validations.WithLabelValues(typ, outcome).Inc()
	}
}

// ObserveLatency records the duration of one validation.
func (m *Metrics) ObserveLatency(typ string, d time.Duration) {
	if m != nil {
		m.ValidationLatency.WithLabelValues(typ).Observe(d.Seconds())
	}
}

// ObserveBatchSize records the size of a batch request.
func (m *Metrics) ObserveBatchSize(n int) {
	if m != nil {
		m.BatchSize.Observe(float64(n))
	}
}
