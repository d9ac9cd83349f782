package service

import (
	"context"
	"errors"

	"voltid/internal/auth/models"
	"voltid/internal/notification"
	vmodels "voltid/internal/verification/models"
	dErrors "voltid/pkg/domain-errors"
	audit "voltid/pkg/platform/audit"
	"voltid/pkg/platform/sentinel"
)

const purposeSignup = "signup"

// RequestEmailVerification sends a sign-up code to an email address that
// has no account yet.
func (s *Service) RequestEmailVerification(ctx context.Context, rawEmail string) (*models.VerificationTicket, error) {
	return s.requestSignupCode(ctx, vmodels.TypeEmail, rawEmail)
}

// RequestPhoneVerification sends a sign-up code to a phone number that has
// no account yet.
func (s *Service) RequestPhoneVerification(ctx context.Context, rawPhone string) (*models.VerificationTicket, error) {
	return s.requestSignupCode(ctx, vmodels.TypePhone, rawPhone)
}

func (s *Service) requestSignupCode(ctx context.Context, typ vmodels.Type, raw string) (*models.VerificationTicket, error) {
	identifier, err := normalizeFor(typ, raw)
	if err != nil {
		return nil, err
	}
	if typ == vmodels.TypePhone {
		err = s.helpers.EnsureUserDoesNotExistByPhone(ctx, identifier)
	} else {
		err = s.helpers.EnsureUserDoesNotExistByEmail(ctx, identifier)
	}
	if err != nil {
		return nil, err
	}
	if err := s.checkResend(ctx, typ, identifier); err != nil {
		return nil, err
	}

	code, err := s.otp.GenerateCode()
	if err != nil {
		return nil, err
	}
	var v *vmodels.Verification
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if typ == vmodels.TypePhone {
			if _, err := s.helpers.HandleExistingPhoneVerification(ctx, identifier); err != nil {
				return err
			}
			v, err = s.helpers.CreatePhoneVerificationRecord(ctx, nil, identifier, code)
			return err
		}
		if _, err := s.helpers.HandleExistingEmailVerification(ctx, identifier); err != nil {
			return err
		}
		v, err = s.helpers.CreateEmailVerificationRecord(ctx, nil, identifier, code)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := s.dispatch(ctx, v, code, purposeSignup); err != nil {
		return nil, err
	}
	s.logAudit(ctx, audit.EventVerificationRequested, v.UserIDOrNil(), "type", string(typ))
	return ticketFor(v), nil
}

// checkResend counts one code request against the identifier's cooldown.
func (s *Service) checkResend(ctx context.Context, typ vmodels.Type, identifier string) error {
	if s.resend == nil {
		return nil
	}
	if _, err := s.resend.Hit(ctx, string(typ)+":"+identifier); err != nil {
		return dErrors.New(dErrors.CodeRateLimited, "too many verification requests, please try again later")
	}
	return nil
}

// dispatch hands the code to the notifier after the record committed. A
// delivery failure leaves the record in place; the caller may request again
// once it expires.
func (s *Service) dispatch(ctx context.Context, v *vmodels.Verification, code, purpose string) error {
	if s.notifier == nil {
		return nil
	}
	channel := notification.ChannelEmail
	if v.Type == vmodels.TypePhone {
		channel = notification.ChannelSMS
	}
	if err := s.notifier.SendOTP(ctx, channel, v.Identifier, code, v.ChallengeExpiry()); err != nil {
		s.metrics.IncDeliveryFailure(string(channel))
		s.logWarn(ctx, "verification code delivery failed",
			"channel", channel,
			"reference", v.Reference,
			"error", err,
		)
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "could not deliver verification code, please try again later")
	}
	s.metrics.IncCodeSent(string(channel), purpose)
	return nil
}

func ticketFor(v *vmodels.Verification) *models.VerificationTicket {
	return &models.VerificationTicket{
		Reference: v.Reference,
		Type:      v.Type,
		ExpiresAt: v.ChallengeExpiry(),
	}
}

// ConfirmEmailVerification checks a sign-up code sent by email and marks the
// verification COMPLETED.
func (s *Service) ConfirmEmailVerification(ctx context.Context, reference, code string) (*models.ConfirmResult, error) {
	return s.confirm(ctx, vmodels.TypeEmail, reference, code)
}

// ConfirmPhoneVerification checks a sign-up code sent by SMS and marks the
// verification COMPLETED.
func (s *Service) ConfirmPhoneVerification(ctx context.Context, reference, code string) (*models.ConfirmResult, error) {
	return s.confirm(ctx, vmodels.TypePhone, reference, code)
}

func (s *Service) confirm(ctx context.Context, typ vmodels.Type, reference, code string) (*models.ConfirmResult, error) {
	v, err := s.verifications.FindByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "verification not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verification")
	}
	completed, err := s.helpers.ValidateVerificationCode(ctx, v.ID, code, typ)
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, audit.EventVerificationConfirmed, completed.UserIDOrNil(), "type", string(typ))
	return &models.ConfirmResult{Reference: completed.Reference, Verified: true}, nil
}
