package service

import (
	"context"
	"errors"
	"time"

	"voltid/internal/auth/models"
	vmodels "voltid/internal/verification/models"
	"voltid/internal/verification/otp"
	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
	"voltid/pkg/platform/sentinel"
	"voltid/pkg/platform/tx"
)

const msgActiveCodeExists = "an active verification code already exists"

// Helpers wraps the OTP engine with registration policy: duplicate
// prevention, the resend guard and type-aware code validation.
//
// Helpers never swallow an error; every failure is a domain error.
type Helpers struct {
	users         UserStore
	verifications VerificationStore
	otp           OTPEngine
	tx            tx.Runner
}

func NewHelpers(users UserStore, verifications VerificationStore, engine OTPEngine, runner tx.Runner) *Helpers {
	return &Helpers{users: users, verifications: verifications, otp: engine, tx: runner}
}

func (h *Helpers) EnsureUserDoesNotExistByEmail(ctx context.Context, email string) error {
	_, err := h.users.FindByEmail(ctx, email)
	return absent(err, "an account with this email already exists")
}

func (h *Helpers) EnsureUserDoesNotExistByPhone(ctx context.Context, phone string) error {
	_, err := h.users.FindByPhone(ctx, phone)
	return absent(err, "an account with this phone number already exists")
}

func absent(lookupErr error, existsMsg string) error {
	switch {
	case lookupErr == nil:
		return dErrors.New(dErrors.CodeValidation, existsMsg)
	case errors.Is(lookupErr, sentinel.ErrNotFound):
		return nil
	default:
		return dErrors.Wrap(lookupErr, dErrors.CodeInternal, "failed to look up user")
	}
}

// HandleExistingEmailVerification inspects the latest email verification
// before a new code is issued. It returns nil when none exists or when an
// expired pending record was deleted.
func (h *Helpers) HandleExistingEmailVerification(ctx context.Context, email string) (*vmodels.Verification, error) {
	v, err := h.latest(ctx, email, vmodels.TypeEmail)
	if err != nil || v == nil {
		return nil, err
	}
	now := h.otp.Now()
	if err := h.rejectClaimedActive(ctx, v, now); err != nil {
		return nil, err
	}
	if v.IsPending() {
		if !now.After(v.ChallengeExpiry()) {
			return nil, dErrors.New(dErrors.CodeConflict, msgActiveCodeExists)
		}
		if err := h.verifications.Delete(ctx, v.ID); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to remove expired verification")
		}
		return nil, nil
	}
	return v, nil
}

// HandleExistingPhoneVerification inspects the latest phone verification
// before a new code is issued. An expired pending record is marked EXPIRED
// and returned; a completed one blocks the identifier for good.
func (h *Helpers) HandleExistingPhoneVerification(ctx context.Context, phone string) (*vmodels.Verification, error) {
	v, err := h.latest(ctx, phone, vmodels.TypePhone)
	if err != nil || v == nil {
		return nil, err
	}
	now := h.otp.Now()
	if err := h.rejectClaimedActive(ctx, v, now); err != nil {
		return nil, err
	}
	switch {
	case v.IsPending() && !now.After(v.ChallengeExpiry()):
		return nil, dErrors.New(dErrors.CodeConflict, msgActiveCodeExists)
	case v.IsPending():
		if err := h.expire(ctx, v, now); err != nil {
			return nil, err
		}
		return v, nil
	case v.Status == vmodels.StatusCompleted:
		return nil, dErrors.New(dErrors.CodeValidation, "phone number already verified")
	}
	return v, nil
}

func (h *Helpers) latest(ctx context.Context, identifier string, typ vmodels.Type) (*vmodels.Verification, error) {
	v, err := h.verifications.FindLatest(ctx, identifier, typ)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verification")
	}
	return v, nil
}

// rejectClaimedActive fails when the record already belongs to an existing
// user and its window is still open.
func (h *Helpers) rejectClaimedActive(ctx context.Context, v *vmodels.Verification, now time.Time) error {
	if v.UserID == nil || v.Expired(now) {
		return nil
	}
	_, err := h.users.FindByID(ctx, *v.UserID)
	switch {
	case err == nil:
		return dErrors.New(dErrors.CodeConflict, msgActiveCodeExists)
	case errors.Is(err, sentinel.ErrNotFound):
		return nil
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}
}

// expire flips a pending record to EXPIRED, both in the store and on v.
func (h *Helpers) expire(ctx context.Context, v *vmodels.Verification, now time.Time) error {
	if err := h.verifications.UpdateStatusByID(ctx, v.ID, vmodels.StatusExpired, now); err != nil {
		if errors.Is(err, sentinel.ErrInvalidState) {
			return dErrors.New(dErrors.CodeConflict, msgActiveCodeExists)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to expire verification")
	}
	return v.ApplyExpiry(now)
}

// ValidateVerificationCode checks code against the verification with the
// given id. PHONE records are checked against the embedded OTP, every other
// type against the top-level token and expiry. A match marks the record
// COMPLETED. Expiry and wrong guesses are committed before the error is
// returned.
func (h *Helpers) ValidateVerificationCode(ctx context.Context, verificationID id.VerificationID, code string, typ vmodels.Type) (*vmodels.Verification, error) {
	var (
		completed *vmodels.Verification
		failure   error
	)
	err := h.tx.RunInTx(ctx, func(ctx context.Context) error {
		v, err := h.verifications.LockByID(ctx, verificationID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "verification not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verification")
		}
		if v.Type != typ {
			return dErrors.New(dErrors.CodeNotFound, "verification not found")
		}

		switch v.Status {
		case vmodels.StatusCompleted, vmodels.StatusVerified:
			return dErrors.New(dErrors.CodeValidation, "already verified")
		case vmodels.StatusExpired:
			return dErrors.New(dErrors.CodeValidation, "code expired")
		}

		now := h.otp.Now()
		switch {
		case now.After(v.ChallengeExpiry()):
			failure = dErrors.New(dErrors.CodeValidation, "code expired")
			if err := v.ApplyExpiry(now); err != nil {
				return err
			}
		case !otp.Compare(code, h.otp.Salt(), v.ChallengeHash()):
			failure = dErrors.New(dErrors.CodeValidation, "invalid verification code")
			if err := v.RecordFailedAttempt(now); err != nil {
				return err
			}
		default:
			if err := v.ApplyCompleted(now); err != nil {
				return err
			}
			completed = v
		}
		if err := h.verifications.Update(ctx, v); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update verification")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return nil, failure
	}
	return completed, nil
}

// CreateEmailVerificationRecord issues a PENDING email verification with the
// email windows.
func (h *Helpers) CreateEmailVerificationRecord(ctx context.Context, userID *id.UserID, email, rawCode string) (*vmodels.Verification, error) {
	return h.otp.CreateVerificationForUser(ctx, userID, email, vmodels.TypeEmail, rawCode)
}

// CreatePhoneVerificationRecord issues a PENDING phone verification with the
// phone windows.
func (h *Helpers) CreatePhoneVerificationRecord(ctx context.Context, userID *id.UserID, phone, rawCode string) (*vmodels.Verification, error) {
	return h.otp.CreateVerificationForUser(ctx, userID, phone, vmodels.TypePhone, rawCode)
}

// claimVerification loads the verification a registration refers to and
// checks that it proves identifier and has not been claimed yet.
func (h *Helpers) claimVerification(ctx context.Context, reference string, typ vmodels.Type, identifier string) (*vmodels.Verification, error) {
	notVerified := dErrors.New(dErrors.CodeValidation, channelNoun(typ)+" has not been verified")
	v, err := h.verifications.FindByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, notVerified
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verification")
	}
	if v.Type != typ || v.Identifier != identifier || v.Status != vmodels.StatusCompleted {
		return nil, notVerified
	}
	if v.UserID != nil {
		return nil, dErrors.New(dErrors.CodeValidation, "verification has already been used")
	}
	return v, nil
}

func channelNoun(typ vmodels.Type) string {
	if typ == vmodels.TypePhone {
		return "phone number"
	}
	return "email address"
}

// normalizeFor applies the identifier normalization matching typ.
func normalizeFor(typ vmodels.Type, raw string) (string, error) {
	if typ == vmodels.TypePhone {
		return models.NormalizePhone(raw)
	}
	return models.NormalizeEmail(raw)
}
