package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Rejected    *prometheus.CounterVec
	StoreErrors prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voltid_ratelimit_rejected_total",
			Help: "Requests rejected by a rate limit policy",
		}, []string{"policy"}),
		StoreErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "voltid_ratelimit_store_errors_total",
			Help: "Counter store failures; the request is let through",
		}),
	}
}

func (m *Metrics) IncRejected(policy string) {
	if m != nil {
		m.Rejected.WithLabelValues(policy).Inc()
	}
}

func (m *Metrics) IncStoreErrors() {
	if m != nil {
		m.StoreErrors.Inc()
	}
}
