package models

import (
	"strings"
	"time"

	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
)

type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "active"
	TenantStatusInactive TenantStatus = "inactive"
)

func (s TenantStatus) IsValid() bool {
	return s == TenantStatusActive || s == TenantStatusInactive
}

// Tenant is the organization a user account belongs to.
//
// Invariants:
//   - Name is non-empty and at most 128 characters
//   - Status moves between active and inactive only
//
// Deactivating a tenant does not touch its users. Registration into an
// inactive tenant is refused at resolution time instead.
type Tenant struct {
	ID        id.TenantID  `json:"id"`
	Name      string       `json:"name"`
	Status    TenantStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func NewTenant(tenantID id.TenantID, name string, now time.Time) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tenant name cannot be empty")
	}
	if len(name) > 128 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tenant name must be 128 characters or less")
	}
	return &Tenant{
		ID:        tenantID,
		Name:      name,
		Status:    TenantStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// CanDeactivate reports whether the tenant may move to inactive.
func (t *Tenant) CanDeactivate() error {
	if t.Status == TenantStatusInactive {
		return dErrors.New(dErrors.CodeInvariantViolation, "tenant is already inactive")
	}
	return nil
}

func (t *Tenant) ApplyDeactivation(now time.Time) {
	t.Status = TenantStatusInactive
	t.UpdatedAt = now
}

func (t *Tenant) CanReactivate() error {
	if t.Status == TenantStatusActive {
		return dErrors.New(dErrors.CodeInvariantViolation, "tenant is already active")
	}
	return nil
}

func (t *Tenant) ApplyReactivation(now time.Time) {
	t.Status = TenantStatusActive
	t.UpdatedAt = now
}

// TenantDetails is the admin view of a tenant.
type TenantDetails struct {
	*Tenant
	UserCount int `json:"user_count"`
}

type CreateTenantRequest struct {
	Name string `json:"name" validate:"required,max=128"`
}
