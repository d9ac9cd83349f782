package models

import (
	"time"

	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
)

// Verification tracks one out-of-band identity proof for a phone number,
// email address or OAuth identity.
//
// Invariants:
//   - Reference and Identifier are non-empty
//   - OTP.ExpiresAt <= ExpiresAt
//   - Status only leaves PENDING, never returns to it
//   - OTP.Attempts only increases
type Verification struct {
	ID         id.VerificationID `json:"id"`
	UserID     *id.UserID        `json:"user_id,omitempty"`
	Reference  string            `json:"reference"`
	Identifier string            `json:"identifier"`
	Type       Type              `json:"type"`
	Status     Status            `json:"status"`
	Token      string            `json:"-"`
	OTP        OTP               `json:"otp"`
	ExpiresAt  time.Time         `json:"expires_at"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// OTP is the one-time code sub-record embedded in a Verification.
type OTP struct {
	CodeHash      string     `json:"-"`
	Attempts      int        `json:"attempts"`
	ExpiresAt     time.Time  `json:"expires_at"`
	LastAttemptAt *time.Time `json:"last_attempt_at,omitempty"`
	Verified      bool       `json:"verified"`
}

// NewVerification builds a PENDING verification whose windows follow typ.
// Channels other than PHONE also carry the hash in the top-level Token.
func NewVerification(
	verificationID id.VerificationID,
	typ Type,
	identifier string,
	reference string,
	codeHash string,
	now time.Time,
) (*Verification, error) {
	if !typ.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid verification type")
	}
	if identifier == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "identifier cannot be empty")
	}
	if reference == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "reference cannot be empty")
	}
	if codeHash == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "code hash cannot be empty")
	}
	w := typ.Window()
	if w.OTP > w.Overall {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "otp window exceeds verification window")
	}

	v := &Verification{
		ID:         verificationID,
		Reference:  reference,
		Identifier: identifier,
		Type:       typ,
		Status:     StatusPending,
		OTP: OTP{
			CodeHash:  codeHash,
			ExpiresAt: now.Add(w.OTP),
		},
		ExpiresAt: now.Add(w.Overall),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if typ != TypePhone {
		v.Token = codeHash
	}
	return v, nil
}

func (v *Verification) IsPending() bool {
	return v.Status == StatusPending
}

// OTPExpired reports whether the operational code window has elapsed.
func (v *Verification) OTPExpired(now time.Time) bool {
	return now.After(v.OTP.ExpiresAt)
}

// Expired reports whether the overall record window has elapsed.
func (v *Verification) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}

// ChallengeHash returns the stored hash the submitted code is checked against.
// PHONE uses the embedded OTP; every other channel uses the top-level token.
func (v *Verification) ChallengeHash() string {
	if v.Type == TypePhone || v.Token == "" {
		return v.OTP.CodeHash
	}
	return v.Token
}

// ChallengeExpiry pairs with ChallengeHash.
func (v *Verification) ChallengeExpiry() time.Time {
	if v.Type == TypePhone {
		return v.OTP.ExpiresAt
	}
	return v.ExpiresAt
}

// CanValidate returns nil when a code may still be checked against v.
func (v *Verification) CanValidate(now time.Time) error {
	if !v.IsPending() {
		return dErrors.New(dErrors.CodeInvariantViolation, "verification is "+string(v.Status))
	}
	if v.OTPExpired(now) {
		return dErrors.New(dErrors.CodeInvariantViolation, "verification code has expired")
	}
	return nil
}

func (v *Verification) transition(next Status, now time.Time) error {
	if !v.Status.CanTransitionTo(next) {
		return dErrors.New(dErrors.CodeInvariantViolation,
			"cannot move verification from "+string(v.Status)+" to "+string(next))
	}
	v.Status = next
	v.UpdatedAt = now
	return nil
}

func (v *Verification) ApplyExpiry(now time.Time) error {
	return v.transition(StatusExpired, now)
}

func (v *Verification) ApplyVerified(now time.Time) error {
	if err := v.transition(StatusVerified, now); err != nil {
		return err
	}
	v.OTP.Verified = true
	return nil
}

func (v *Verification) ApplyCompleted(now time.Time) error {
	if err := v.transition(StatusCompleted, now); err != nil {
		return err
	}
	v.OTP.Verified = true
	return nil
}

// RecordFailedAttempt counts a wrong code. Only pending records accept attempts.
func (v *Verification) RecordFailedAttempt(now time.Time) error {
	if !v.IsPending() {
		return dErrors.New(dErrors.CodeInvariantViolation, "verification is "+string(v.Status))
	}
	v.OTP.Attempts++
	at := now
	v.OTP.LastAttemptAt = &at
	v.UpdatedAt = now
	return nil
}

// LinkUser records the owning user once the identifier has been claimed.
func (v *Verification) LinkUser(userID id.UserID, now time.Time) {
	uid := userID
	v.UserID = &uid
	v.UpdatedAt = now
}

// UserIDOrNil returns the owning user, or the nil id while unclaimed.
func (v *Verification) UserIDOrNil() id.UserID {
	if v.UserID == nil {
		return id.UserID{}
	}
	return *v.UserID
}
