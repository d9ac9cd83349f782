// Package service keeps the user's tokenized payment methods and completes
// the PAYMENT_METHOD stage of onboarding when the first one is saved.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	kycmodels "voltid/internal/kyc/models"
	"voltid/internal/payment/metrics"
	"voltid/internal/payment/models"
	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
	audit "voltid/pkg/platform/audit"
	"voltid/pkg/platform/sentinel"
	"voltid/pkg/platform/tx"
	"voltid/pkg/requestcontext"
)

type Store interface {
	Create(ctx context.Context, m *models.PaymentMethod) error
	ListByUserID(ctx context.Context, userID id.UserID) ([]*models.PaymentMethod, error)
	FindByID(ctx context.Context, userID id.UserID, methodID id.PaymentMethodID) (*models.PaymentMethod, error)
	SetDefault(ctx context.Context, userID id.UserID, methodID id.PaymentMethodID) error
	Delete(ctx context.Context, userID id.UserID, methodID id.PaymentMethodID) error
}

// KYC is the onboarding engine the payment stage reports to.
type KYC interface {
	GetKYC(ctx context.Context, userID id.UserID) (*kycmodels.UserKYC, error)
	AdvanceStage(ctx context.Context, userID id.UserID, completed kycmodels.Stage, metadata map[string]any) (*kycmodels.UserKYC, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	store Store
	kyc   KYC
	tx    tx.Runner

	now            func() time.Time
	auditPublisher AuditPublisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = p
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(store Store, kyc KYC, runner tx.Runner, opts ...Option) *Service {
	s := &Service{store: store, kyc: kyc, tx: runner, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddPaymentMethod saves a tokenized card. It is open once onboarding has
// reached PAYMENT_METHOD; saving the first card there completes KYC in the
// same transaction. The first card a user saves becomes the default.
func (s *Service) AddPaymentMethod(ctx context.Context, userID id.UserID, req *models.AddPaymentMethodRequest) (*models.PaymentMethod, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	var saved *models.PaymentMethod
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		k, err := s.kyc.GetKYC(ctx, userID)
		if err != nil {
			return err
		}
		if k.CurrentStage != kycmodels.StagePaymentMethod && !k.IsCompleted() {
			return dErrors.New(dErrors.CodeKYCStageInvalid,
				"payment methods can be added once kyc reaches "+string(kycmodels.StagePaymentMethod))
		}

		existing, err := s.store.ListByUserID(ctx, userID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list payment methods")
		}
		m, err := models.NewPaymentMethod(id.PaymentMethodID(uuid.New()), userID,
			req.Provider, req.ProviderToken, req.Brand, req.Last4, req.ExpMonth, req.ExpYear, s.now())
		if err != nil {
			return err
		}
		m.IsDefault = len(existing) == 0
		if err := s.store.Create(ctx, m); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "this payment method is already on file")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save payment method")
		}

		if k.CurrentStage == kycmodels.StagePaymentMethod {
			if _, err := s.kyc.AdvanceStage(ctx, userID, kycmodels.StagePaymentMethod, map[string]any{
				"payment_method_id": m.ID.String(),
			}); err != nil {
				return err
			}
		}
		saved = m
		return s.logAudit(ctx, audit.EventPaymentMethodAdded, userID, "provider", m.Provider, "method_id", m.ID.String())
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncAdded(saved.Provider)
	return saved, nil
}

func (s *Service) ListPaymentMethods(ctx context.Context, userID id.UserID) ([]*models.PaymentMethod, error) {
	methods, err := s.store.ListByUserID(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list payment methods")
	}
	if methods == nil {
		methods = []*models.PaymentMethod{}
	}
	return methods, nil
}

// SetDefault makes methodID the user's only default method.
func (s *Service) SetDefault(ctx context.Context, userID id.UserID, methodID id.PaymentMethodID) (*models.PaymentMethod, error) {
	var updated *models.PaymentMethod
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.SetDefault(ctx, userID, methodID); err != nil {
			return translate(err, "failed to set default payment method")
		}
		m, err := s.store.FindByID(ctx, userID, methodID)
		if err != nil {
			return translate(err, "failed to load payment method")
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove deletes a method. When it was the default the oldest remaining
// method takes over.
func (s *Service) Remove(ctx context.Context, userID id.UserID, methodID id.PaymentMethodID) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		m, err := s.store.FindByID(ctx, userID, methodID)
		if err != nil {
			return translate(err, "failed to load payment method")
		}
		if err := s.store.Delete(ctx, userID, methodID); err != nil {
			return translate(err, "failed to remove payment method")
		}
		if m.IsDefault {
			rest, err := s.store.ListByUserID(ctx, userID)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list payment methods")
			}
			if len(rest) > 0 {
				if err := s.store.SetDefault(ctx, userID, rest[0].ID); err != nil {
					return translate(err, "failed to promote default payment method")
				}
			}
		}
		return s.logAudit(ctx, audit.EventPaymentMethodRemoved, userID, "method_id", methodID.String())
	})
	if err != nil {
		return err
	}
	s.metrics.IncRemoved()
	return nil
}

func translate(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodePaymentMethodNotFound, "payment method not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, userID id.UserID, attributes ...any) error {
	attributes = append(attributes, "user_id", userID.String())
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", string(event), "log_type", "audit")
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event), args...)
	}
	if s.auditPublisher == nil {
		return nil
	}
	return s.auditPublisher.Emit(ctx, audit.Event{
		UserID:  userID,
		Subject: "payment_method",
		Action:  string(event),
	})
}
