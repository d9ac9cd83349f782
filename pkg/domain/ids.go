// Package domain holds typed identifiers shared across modules.
//
// Each identifier wraps a uuid.UUID so a verification id can never be passed
// where a user id is expected. Parse functions are the trust boundary: they
// reject empty, malformed and nil UUIDs with CodeInvalidInput.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "voltid/pkg/domain-errors"
)

type (
	UserID          uuid.UUID
	TenantID        uuid.UUID
	VerificationID  uuid.UUID
	KYCID           uuid.UUID
	PaymentMethodID uuid.UUID
)

func (id UserID) String() string          { return uuid.UUID(id).String() }
func (id TenantID) String() string        { return uuid.UUID(id).String() }
func (id VerificationID) String() string  { return uuid.UUID(id).String() }
func (id KYCID) String() string           { return uuid.UUID(id).String() }
func (id PaymentMethodID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool          { return uuid.UUID(id) == uuid.Nil }
func (id TenantID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id VerificationID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id KYCID) IsNil() bool           { return uuid.UUID(id) == uuid.Nil }
func (id PaymentMethodID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func parseUUID(kind, s string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	return parsed, nil
}

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID("user id", s)
	return UserID(u), err
}

func ParseTenantID(s string) (TenantID, error) {
	u, err := parseUUID("tenant id", s)
	return TenantID(u), err
}

func ParseVerificationID(s string) (VerificationID, error) {
	u, err := parseUUID("verification id", s)
	return VerificationID(u), err
}

func ParseKYCID(s string) (KYCID, error) {
	u, err := parseUUID("kyc id", s)
	return KYCID(u), err
}

func ParsePaymentMethodID(s string) (PaymentMethodID, error) {
	u, err := parseUUID("payment method id", s)
	return PaymentMethodID(u), err
}

// Identifiers marshal as their canonical string form in JSON.

func (id UserID) MarshalText() ([]byte, error)          { return uuid.UUID(id).MarshalText() }
func (id TenantID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id VerificationID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id KYCID) MarshalText() ([]byte, error)           { return uuid.UUID(id).MarshalText() }
func (id PaymentMethodID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error          { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *TenantID) UnmarshalText(b []byte) error        { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *VerificationID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *KYCID) UnmarshalText(b []byte) error           { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *PaymentMethodID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
