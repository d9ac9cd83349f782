package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
)

func TestNewTenant(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	tenant, err := NewTenant(id.TenantID(uuid.New()), "  Acme Charging ", now)
	require.NoError(t, err)
	assert.Equal(t, "Acme Charging", tenant.Name)
	assert.True(t, tenant.IsActive())
	assert.Equal(t, now, tenant.CreatedAt)

	_, err = NewTenant(id.TenantID(uuid.New()), "   ", now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

	_, err = NewTenant(id.TenantID(uuid.New()), strings.Repeat("x", 129), now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func TestTenantStatusTransitions(t *testing.T) {
	now := time.Now()
	tenant, err := NewTenant(id.TenantID(uuid.New()), "Acme", now)
	require.NoError(t, err)

	assert.Error(t, tenant.CanReactivate())
	require.NoError(t, tenant.CanDeactivate())
	tenant.ApplyDeactivation(now.Add(time.Minute))
	assert.False(t, tenant.IsActive())
	assert.Equal(t, now.Add(time.Minute), tenant.UpdatedAt)

	assert.Error(t, tenant.CanDeactivate())
	require.NoError(t, tenant.CanReactivate())
	tenant.ApplyReactivation(now)
	assert.True(t, tenant.IsActive())
}
