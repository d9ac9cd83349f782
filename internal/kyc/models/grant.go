package models

import "time"

// UploadGrant is a short-lived capability to PUT one object.
type UploadGrant struct {
	URL         string    `json:"upload_url"`
	Key         string    `json:"key"`
	ContentType string    `json:"content_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type VehicleType string

const (
	VehicleCar        VehicleType = "CAR"
	VehicleMotorcycle VehicleType = "MOTORCYCLE"
	VehicleScooter    VehicleType = "SCOOTER"
	VehicleVan        VehicleType = "VAN"
)

// DetectionResult reports whether a vehicle photo shows the expected type.
type DetectionResult struct {
	VehicleType VehicleType `json:"vehicle_type"`
	Matched     bool        `json:"matched"`
	Label       string      `json:"label,omitempty"`
	Confidence  float64     `json:"confidence"`
}

type UploadURLRequest struct {
	VehicleType string `json:"vehicle_type" validate:"required,oneof=CAR MOTORCYCLE SCOOTER VAN"`
}

type SubmitRequest struct {
	Key string `json:"key" validate:"required,max=512"`
}

type SubmitVehicleRequest struct {
	Key         string `json:"key" validate:"required,max=512"`
	VehicleType string `json:"vehicle_type" validate:"required,oneof=CAR MOTORCYCLE SCOOTER VAN"`
}
