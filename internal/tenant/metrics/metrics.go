package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var latencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// Metrics tracks tenant creation and the tenant lookups on the registration path.
type Metrics struct {
	TenantCreated         prometheus.Counter
	ResolveTenantDuration prometheus.Histogram
	GetTenantDuration     prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		TenantCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "voltid_tenants_created_total",
			Help: "Total number of tenants created",
		}),
		ResolveTenantDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "voltid_resolve_tenant_duration_seconds",
			Help:    "Duration of ResolveTenant operations (registration critical path)",
			Buckets: latencyBuckets,
		}),
		GetTenantDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "voltid_get_tenant_duration_seconds",
			Help:    "Duration of GetTenant operations (tenant details with user count)",
			Buckets: latencyBuckets,
		}),
	}
}

func (m *Metrics) IncrementTenantCreated() {
	if m == nil {
		return
	}
	m.TenantCreated.Inc()
}

// ObserveResolveTenant records the time since start.
func (m *Metrics) ObserveResolveTenant(start time.Time) {
	if m == nil {
		return
	}
	m.ResolveTenantDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveGetTenant(start time.Time) {
	if m == nil {
		return
	}
	m.GetTenantDuration.Observe(time.Since(start).Seconds())
}
