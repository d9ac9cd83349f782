package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"voltid/internal/auth/models"
	vmodels "voltid/internal/verification/models"
	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
	audit "voltid/pkg/platform/audit"
	"voltid/pkg/platform/sentinel"
)

const (
	msgInvalidCredentials = "invalid email or password"
	purposeLogin          = "login"
)

// Login authenticates with email and password. Failed attempts count
// against the login limiter; once it is exhausted every attempt is rejected
// until the window passes, even with the right password.
func (s *Service) Login(ctx context.Context, rawEmail, password string) (*models.AuthResult, error) {
	email, err := models.NormalizeEmail(rawEmail)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeAuthentication, msgInvalidCredentials)
	}
	if s.logins != nil {
		if exceeded, _ := s.logins.Exceeded(ctx, email); exceeded {
			s.metrics.IncLogin("password", "rate_limited")
			s.logAudit(ctx, audit.EventLoginRateLimited, id.UserID{}, "reason", "too_many_failures")
			return nil, dErrors.New(dErrors.CodeRateLimited, "too many failed login attempts, please try again later")
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, s.loginFailed(ctx, email, id.UserID{}, "unknown_email")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, s.loginFailed(ctx, email, user.ID, "bad_password")
	}

	if s.logins != nil {
		s.logins.Reset(ctx, email)
	}
	s.metrics.IncLogin("password", "success")
	s.logAudit(ctx, audit.EventLoginSucceeded, user.ID, "method", "password")
	return s.issue(user)
}

func (s *Service) loginFailed(ctx context.Context, email string, userID id.UserID, reason string) error {
	if s.logins != nil {
		_, _ = s.logins.Hit(ctx, email)
	}
	s.metrics.IncLogin("password", "failure")
	s.logAudit(ctx, audit.EventLoginFailed, userID, "reason", reason)
	return dErrors.New(dErrors.CodeAuthentication, msgInvalidCredentials)
}

// RequestLoginOTP sends a one-time login code to the phone number of an
// existing account. A pending login code that has run out is expired first
// so the new one can take its place.
func (s *Service) RequestLoginOTP(ctx context.Context, rawPhone string) (*models.VerificationTicket, error) {
	phone, err := models.NormalizePhone(rawPhone)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no account is registered with this phone number")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}
	if err := s.checkResend(ctx, vmodels.TypePhone, phone); err != nil {
		return nil, err
	}
	code, err := s.otp.GenerateCode()
	if err != nil {
		return nil, err
	}

	var v *vmodels.Verification
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		latest, err := s.helpers.latest(ctx, phone, vmodels.TypePhone)
		if err != nil {
			return err
		}
		if latest != nil && latest.IsPending() {
			now := s.otp.Now()
			if !latest.OTPExpired(now) {
				return dErrors.New(dErrors.CodeConflict, msgActiveCodeExists)
			}
			if err := s.helpers.expire(ctx, latest, now); err != nil {
				return err
			}
		}
		v, err = s.otp.CreateVerificationForUser(ctx, &user.ID, phone, vmodels.TypePhone, code)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := s.dispatch(ctx, v, code, purposeLogin); err != nil {
		return nil, err
	}
	return ticketFor(v), nil
}

// VerifyLoginOTP checks a login code through the verification engine and
// issues an access token for the owning user.
func (s *Service) VerifyLoginOTP(ctx context.Context, reference, code string) (*models.AuthResult, error) {
	pending, err := s.verifications.FindByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "verification not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verification")
	}
	if pending.UserID == nil || pending.Type != vmodels.TypePhone {
		s.metrics.IncLogin("otp", "failure")
		return nil, dErrors.New(dErrors.CodeAuthentication, "verification failed")
	}

	v, err := s.otp.Validate(ctx, code, pending.Reference)
	if err != nil {
		s.metrics.IncLogin("otp", "failure")
		s.logAudit(ctx, audit.EventLoginFailed, *pending.UserID, "reason", "bad_code")
		return nil, err
	}
	user, err := s.users.FindByID(ctx, v.UserIDOrNil())
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeAuthentication, "verification failed")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}
	s.metrics.IncLogin("otp", "success")
	s.logAudit(ctx, audit.EventLoginSucceeded, user.ID, "method", "otp")
	return s.issue(user)
}
