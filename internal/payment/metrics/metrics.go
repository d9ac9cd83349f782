package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	MethodsAdded   *prometheus.CounterVec
	MethodsRemoved prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		MethodsAdded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voltid_payment_methods_added_total",
			Help: "Payment methods saved, by provider",
		}, []string{"provider"}),
		MethodsRemoved: f.NewCounter(prometheus.CounterOpts{
			Name: "voltid_payment_methods_removed_total",
			Help: "Payment methods removed by their owner",
		}),
	}
}

func (m *Metrics) IncAdded(provider string) {
	if m == nil {
		return
	}
	m.MethodsAdded.WithLabelValues(provider).Inc()
}

func (m *Metrics) IncRemoved() {
	if m == nil {
		return
	}
	m.MethodsRemoved.Inc()
}
