package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory(t *testing.T) {
	assert.Equal(t, CategoryCompliance, EventUserRegistered.Category())
	assert.Equal(t, CategorySecurity, EventLoginFailed.Category())
	assert.Equal(t, CategoryOperations, EventTenantCreated.Category())
	assert.Equal(t, CategoryOperations, AuditEvent("something_new").Category())
}
