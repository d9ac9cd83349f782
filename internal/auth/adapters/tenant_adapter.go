package adapters

import (
	"context"

	tenantModels "voltid/internal/tenant/models"
	id "voltid/pkg/domain"
)

// tenantResolver is the part of the tenant service registration needs.
// Defined locally so auth does not import the tenant service package.
type tenantResolver interface {
	ResolveTenant(ctx context.Context, tenantID id.TenantID) (*tenantModels.Tenant, error)
}

// TenantChecker adapts the tenant service to the auth service's tenant port.
type TenantChecker struct {
	tenants tenantResolver
}

func NewTenantChecker(svc tenantResolver) *TenantChecker {
	return &TenantChecker{tenants: svc}
}

// EnsureActive fails with the tenant service's error when the tenant is
// unknown or inactive.
func (a *TenantChecker) EnsureActive(ctx context.Context, tenantID id.TenantID) error {
	_, err := a.tenants.ResolveTenant(ctx, tenantID)
	return err
}
