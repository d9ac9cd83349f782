package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for verification requests, registrations
// and logins.
type Metrics struct {
	CodesSent        *prometheus.CounterVec
	DeliveryFailures *prometheus.CounterVec
	Registrations    prometheus.Counter
	Logins           *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CodesSent: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voltid_auth_codes_sent_total",
			Help: "Verification codes dispatched by channel and purpose",
		}, []string{"channel", "purpose"}),
		DeliveryFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voltid_auth_code_delivery_failures_total",
			Help: "Verification codes that could not be handed to the delivery channel",
		}, []string{"channel"}),
		Registrations: f.NewCounter(prometheus.CounterOpts{
			Name: "voltid_auth_registrations_total",
			Help: "Accounts registered",
		}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voltid_auth_logins_total",
			Help: "Login attempts by method and outcome",
		}, []string{"method", "outcome"}),
	}
}

func (m *Metrics) IncCodeSent(channel, purpose string) {
	if m == nil {
		return
	}
	m.CodesSent.WithLabelValues(channel, purpose).Inc()
}

func (m *Metrics) IncDeliveryFailure(channel string) {
	if m == nil {
		return
	}
	m.DeliveryFailures.WithLabelValues(channel).Inc()
}

func (m *Metrics) IncRegistration() {
	if m == nil {
		return
	}
	m.Registrations.Inc()
}

func (m *Metrics) IncLogin(method, outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(method, outcome).Inc()
}
