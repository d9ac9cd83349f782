package audit

import (
	"context"
	"time"

	id "voltid/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose so sinks
// can apply different retention.
type EventCategory string

const (
	// CategoryCompliance covers onboarding records with regulatory weight.
	CategoryCompliance EventCategory = "compliance"
	// CategorySecurity covers authentication failures and lockouts.
	CategorySecurity EventCategory = "security"
	// CategoryOperations covers routine activity.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	UserID    id.UserID
	Subject   string
	Action    string
	Reason    string
	RequestID string
	ActorID   string
	IP        string
	Device    string
}

// Store persists audit events. The Postgres implementation writes to the
// outbox table on the transaction carried by ctx.
type Store interface {
	Append(ctx context.Context, event Event) error
}

type AuditEvent string

const (
	// Verification and account events
	EventVerificationRequested AuditEvent = "verification_requested"
	EventVerificationConfirmed AuditEvent = "verification_confirmed"
	EventUserRegistered        AuditEvent = "user_registered"
	EventLoginSucceeded        AuditEvent = "login_succeeded"
	EventLoginFailed           AuditEvent = "login_failed"
	EventLoginRateLimited      AuditEvent = "login_rate_limited"

	// KYC events
	EventKYCInitialized  AuditEvent = "kyc_initialized"
	EventKYCStageAdvance AuditEvent = "kyc_stage_advanced"
	EventKYCStageFailed  AuditEvent = "kyc_stage_failed"
	EventKYCReset        AuditEvent = "kyc_reset"
	EventKYCCompleted    AuditEvent = "kyc_completed"

	// Payment events
	EventPaymentMethodAdded   AuditEvent = "payment_method_added"
	EventPaymentMethodRemoved AuditEvent = "payment_method_removed"

	// Tenant events
	EventTenantCreated AuditEvent = "tenant_created"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventUserRegistered:       CategoryCompliance,
	EventKYCInitialized:       CategoryCompliance,
	EventKYCStageAdvance:      CategoryCompliance,
	EventKYCStageFailed:       CategoryCompliance,
	EventKYCReset:             CategoryCompliance,
	EventKYCCompleted:         CategoryCompliance,
	EventPaymentMethodAdded:   CategoryCompliance,
	EventPaymentMethodRemoved: CategoryCompliance,

	EventLoginFailed:      CategorySecurity,
	EventLoginRateLimited: CategorySecurity,

	EventVerificationRequested: CategoryOperations,
	EventVerificationConfirmed: CategoryOperations,
	EventLoginSucceeded:        CategoryOperations,
	EventTenantCreated:         CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
