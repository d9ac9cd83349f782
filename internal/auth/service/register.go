package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"voltid/internal/auth/models"
	vmodels "voltid/internal/verification/models"
	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
	audit "voltid/pkg/platform/audit"
	"voltid/pkg/platform/sentinel"
)

// Register creates an account for a caller who has completed both the email
// and the phone verification. In one transaction it creates the user, links
// both verifications to it, initializes KYC and records the audit event.
func (s *Service) Register(ctx context.Context, tenantID id.TenantID, req *models.RegisterRequest) (*models.AuthResult, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "tenant is required")
	}
	if s.tenants != nil {
		if err := s.tenants.EnsureActive(ctx, tenantID); err != nil {
			return nil, err
		}
	}
	email, err := models.NormalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	phone, err := models.NormalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, dErrors.New(dErrors.CodeValidation, "password must be at most 72 bytes")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	var user *models.User
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.helpers.EnsureUserDoesNotExistByEmail(ctx, email); err != nil {
			return err
		}
		if err := s.helpers.EnsureUserDoesNotExistByPhone(ctx, phone); err != nil {
			return err
		}
		emailV, err := s.helpers.claimVerification(ctx, req.EmailReference, vmodels.TypeEmail, email)
		if err != nil {
			return err
		}
		phoneV, err := s.helpers.claimVerification(ctx, req.PhoneReference, vmodels.TypePhone, phone)
		if err != nil {
			return err
		}

		now := s.otp.Now()
		user, err = models.NewUser(id.UserID(uuid.New()), tenantID, req.FirstName, req.LastName, email, phone, string(passwordHash), now)
		if err != nil {
			return dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
		}
		user.EmailVerified = true
		user.PhoneVerified = true
		if err := s.users.Create(ctx, user); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "an account with this email or phone number already exists")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
		}

		for _, v := range []*vmodels.Verification{emailV, phoneV} {
			v.LinkUser(user.ID, now)
			if err := s.verifications.Update(ctx, v); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to link verification")
			}
		}
		if s.kyc != nil {
			if _, err := s.kyc.CheckOrInitializeKYC(ctx, user.ID); err != nil {
				return err
			}
		}
		return s.emitAudit(ctx, audit.EventUserRegistered, user.ID, "tenant_id", tenantID.String())
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncRegistration()
	return s.issue(user)
}

func (s *Service) issue(user *models.User) (*models.AuthResult, error) {
	token, ttl, err := s.tokens.IssueAccessToken(user.ID, user.TenantID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue access token")
	}
	return &models.AuthResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(ttl.Seconds()),
		User:        user,
	}, nil
}
