package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics covers verification issuance, validation outcomes and sweeps.
type Metrics struct {
	Created            *prometheus.CounterVec
	ValidationOutcomes *prometheus.CounterVec
	ValidateDuration   prometheus.Histogram
	Swept              prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Created: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voltid_verifications_created_total",
			Help: "Verifications issued by channel",
		}, []string{"type"}),
		ValidationOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voltid_verification_validations_total",
			Help: "Code validations by outcome (verified, mismatch, expired, resolved)",
		}, []string{"outcome"}),
		ValidateDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "voltid_verification_validate_duration_seconds",
			Help:    "Duration of Validate including the row lock",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		Swept: f.NewCounter(prometheus.CounterOpts{
			Name: "voltid_verifications_swept_total",
			Help: "Expired verifications removed by housekeeping",
		}),
	}
}

func (m *Metrics) IncCreated(typ string) {
	if m == nil {
		return
	}
	m.Created.WithLabelValues(typ).Inc()
}

func (m *Metrics) IncOutcome(outcome string) {
	if m == nil {
		return
	}
	m.ValidationOutcomes.WithLabelValues(outcome).Inc()
}

// ObserveValidate records a Validate call started at start.
func (m *Metrics) ObserveValidate(start time.Time) {
	if m == nil {
		return
	}
	m.ValidateDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) AddSwept(n int) {
	if m == nil {
		return
	}
	m.Swept.Add(float64(n))
}
