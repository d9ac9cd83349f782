package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks onboarding progress and the document pipeline.
type Metrics struct {
	StageAdvances     *prometheus.CounterVec
	StageFailures     *prometheus.CounterVec
	Documents         *prometheus.CounterVec
	DocumentDuration  prometheus.Histogram
	VehicleDetections *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		StageAdvances: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voltid_kyc_stage_advances_total",
			Help: "KYC stages completed, labelled by the stage that was completed",
		}, []string{"stage"}),
		StageFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voltid_kyc_stage_failures_total",
			Help: "KYC stages marked FAILED",
		}, []string{"stage"}),
		Documents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voltid_kyc_documents_processed_total",
			Help: "Uploaded identity documents by outcome",
		}, []string{"outcome"}),
		DocumentDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "voltid_kyc_document_processing_duration_seconds",
			Help:    "Time to extract, parse and cross-check an uploaded document",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
		VehicleDetections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voltid_kyc_vehicle_detections_total",
			Help: "Vehicle image checks by vehicle type and whether the type matched",
		}, []string{"vehicle_type", "matched"}),
	}
}

func (m *Metrics) IncStageAdvance(stage string) {
	if m == nil {
		return
	}
	m.StageAdvances.WithLabelValues(stage).Inc()
}

func (m *Metrics) IncStageFailure(stage string) {
	if m == nil {
		return
	}
	m.StageFailures.WithLabelValues(stage).Inc()
}

func (m *Metrics) IncDocument(outcome string) {
	if m == nil {
		return
	}
	m.Documents.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveDocument(start time.Time) {
	if m == nil {
		return
	}
	m.DocumentDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncVehicleDetection(vehicleType string, matched bool) {
	if m == nil {
		return
	}
	label := "false"
	if matched {
		label = "true"
	}
	m.VehicleDetections.WithLabelValues(vehicleType, label).Inc()
}
