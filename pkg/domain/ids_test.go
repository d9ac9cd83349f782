package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "voltid/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseUserID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseUserID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseUserID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, UserID(validUUID), id)
	})
}

// TestTypeDistinction verifies the compiler enforces type safety.
// This is a compile-time check - if this compiles, the invariant holds.
func TestTypeDistinction(t *testing.T) {
	userID := UserID(uuid.New())
	verificationID := VerificationID(uuid.New())

	// var _ UserID = verificationID   // compile error
	// var _ VerificationID = userID   // compile error

	assert.NotEqual(t, uuid.UUID(userID), uuid.UUID(verificationID))
}

// TestCrossTypeAssignment_CompileTimeInvariant documents that typed ids are not aliases.
func TestCrossTypeAssignment_CompileTimeInvariant(t *testing.T) {
	// var uid UserID = KYCID(uuid.New())  // type mismatch
	// var kid KYCID = UserID(uuid.New())  // type mismatch
	t.Log("typed ids prevent cross-type assignment at compile time")
}

// TestParseID_SecurityInvariants validates security-critical parsing rules.
func TestParseID_SecurityInvariants(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		// Attack vectors
		{"SQL injection attempt", "'; DROP TABLE users;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Unicode zero-width space", "550e8400\u200B-e29b-41d4-a716-446655440000", true},

		// Edge cases
		{"Empty string", "", true},
		{"Nil UUID", uuid.Nil.String(), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		// Note: uuid.Parse trims whitespace, so " uuid " is accepted as valid

		// Valid
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUserID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestIsNil(t *testing.T) {
	assert.True(t, UserID(uuid.Nil).IsNil())
	assert.False(t, VerificationID(uuid.New()).IsNil())
	assert.Equal(t, uuid.Nil.String(), KYCID{}.String())
}

// TestAllIDTypes_ConsistentBehavior ensures all ID types have identical parsing behavior.
func TestAllIDTypes_ConsistentBehavior(t *testing.T) {
	validUUID := uuid.New().String()
	invalidInputs := []string{"", "invalid", uuid.Nil.String()}

	// All types should accept valid UUID
	t.Run("all accept valid UUID", func(t *testing.T) {
		_, errUser := ParseUserID(validUUID)
		_, errTenant := ParseTenantID(validUUID)
		_, errVerification := ParseVerificationID(validUUID)
		_, errKYC := ParseKYCID(validUUID)
		_, errPayment := ParsePaymentMethodID(validUUID)

		require.NoError(t, errUser)
		require.NoError(t, errTenant)
		require.NoError(t, errVerification)
		require.NoError(t, errKYC)
		require.NoError(t, errPayment)
	})

	// All types should reject invalid inputs identically
	for _, input := range invalidInputs {
		t.Run("all reject: "+input, func(t *testing.T) {
			_, errUser := ParseUserID(input)
			_, errTenant := ParseTenantID(input)
			_, errVerification := ParseVerificationID(input)
			_, errKYC := ParseKYCID(input)
			_, errPayment := ParsePaymentMethodID(input)

			require.Error(t, errUser)
			require.Error(t, errTenant)
			require.Error(t, errVerification)
			require.Error(t, errKYC)
			require.Error(t, errPayment)
		})
	}
}

func TestIdentifierJSON(t *testing.T) {
	raw := "550e8400-e29b-41d4-a716-446655440000"
	tenantID, err := ParseTenantID(raw)
	require.NoError(t, err)

	encoded, err := json.Marshal(map[string]TenantID{"tenant_id": tenantID})
	require.NoError(t, err)
	require.JSONEq(t, `{"tenant_id":"`+raw+`"}`, string(encoded))

	var decoded struct {
		TenantID TenantID `json:"tenant_id"`
	}
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.Equal(t, tenantID, decoded.TenantID)
}
