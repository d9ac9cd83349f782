// Package service implements phone and email verification for sign-up,
// registration, and password and one-time-code login.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"
	"time"

	"voltid/internal/auth/metrics"
	"voltid/internal/auth/models"
	kycmodels "voltid/internal/kyc/models"
	"voltid/internal/notification"
	rlmodels "voltid/internal/ratelimit/models"
	vmodels "voltid/internal/verification/models"
	"voltid/pkg/attrs"
	id "voltid/pkg/domain"
	audit "voltid/pkg/platform/audit"
	"voltid/pkg/platform/tx"
	"voltid/pkg/requestcontext"
)

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
}

type VerificationStore interface {
	FindByReference(ctx context.Context, reference string) (*vmodels.Verification, error)
	FindLatest(ctx context.Context, identifier string, typ vmodels.Type) (*vmodels.Verification, error)
	LockByID(ctx context.Context, verificationID id.VerificationID) (*vmodels.Verification, error)
	Update(ctx context.Context, v *vmodels.Verification) error
	UpdateStatusByID(ctx context.Context, verificationID id.VerificationID, status vmodels.Status, now time.Time) error
	Delete(ctx context.Context, verificationID id.VerificationID) error
}

// OTPEngine is the verification engine surface the helpers build on.
type OTPEngine interface {
	Salt() string
	Now() time.Time
	GenerateCode() (string, error)
	CreateVerificationForUser(ctx context.Context, userID *id.UserID, identifier string, typ vmodels.Type, rawCode string) (*vmodels.Verification, error)
	Validate(ctx context.Context, code, referenceOrID string) (*vmodels.Verification, error)
}

type TokenIssuer interface {
	IssueAccessToken(userID id.UserID, tenantID id.TenantID) (string, time.Duration, error)
}

type Notifier interface {
	SendOTP(ctx context.Context, channel notification.Channel, to, code string, expiresAt time.Time) error
}

type Limiter interface {
	Hit(ctx context.Context, subject string) (*rlmodels.Result, error)
	Exceeded(ctx context.Context, subject string) (bool, error)
	Reset(ctx context.Context, subject string)
}

type KYCInitializer interface {
	CheckOrInitializeKYC(ctx context.Context, userID id.UserID) (*kycmodels.UserKYC, error)
}

type TenantChecker interface {
	EnsureActive(ctx context.Context, tenantID id.TenantID) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	helpers       *Helpers
	users         UserStore
	verifications VerificationStore
	otp           OTPEngine
	tx            tx.Runner
	tokens        TokenIssuer

	notifier       Notifier
	resend         Limiter
	logins         Limiter
	kyc            KYCInitializer
	tenants        TenantChecker
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

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithResendLimiter caps how many codes one identifier may request per window.
func WithResendLimiter(l Limiter) Option {
	return func(s *Service) {
		s.resend = l
	}
}

// WithLoginLimiter caps failed password logins per email.
func WithLoginLimiter(l Limiter) Option {
	return func(s *Service) {
		s.logins = l
	}
}

func WithKYC(k KYCInitializer) Option {
	return func(s *Service) {
		s.kyc = k
	}
}

func WithTenants(t TenantChecker) Option {
	return func(s *Service) {
		s.tenants = t
	}
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = p
	}
}

func New(users UserStore, verifications VerificationStore, engine OTPEngine, runner tx.Runner, tokens TokenIssuer, opts ...Option) *Service {
	s := &Service{
		helpers:       NewHelpers(users, verifications, engine, runner),
		users:         users,
		verifications: verifications,
		otp:           engine,
		tx:            runner,
		tokens:        tokens,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Helpers exposes the registration helper layer.
func (s *Service) Helpers() *Helpers {
	return s.helpers
}

// logAudit records an event that must not fail the request it describes.
// A publisher failure is logged and dropped.
func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, userID id.UserID, attributes ...any) {
	if err := s.emitAudit(ctx, event, userID, attributes...); err != nil {
		s.logWarn(ctx, "audit emit failed", "event", string(event), "error", err)
	}
}

// emitAudit logs the event and emits it to the audit publisher, returning the
// publisher error. Registration calls it inside its transaction so a lost
// audit record rolls the account back.
func (s *Service) emitAudit(ctx context.Context, event audit.AuditEvent, userID id.UserID, attributes ...any) error {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	if !userID.IsNil() {
		attributes = append(attributes, "user_id", userID.String())
	}
	args := append(attributes, "event", string(event), "log_type", "audit")
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event), args...)
	}
	if s.auditPublisher == nil {
		return nil
	}
	return s.auditPublisher.Emit(ctx, audit.Event{
		UserID: userID,
		Action: string(event),
		Reason: attrs.ExtractString(attributes, "reason"),
	})
}

func (s *Service) logWarn(ctx context.Context, msg string, args ...any) {
	if s.logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		args = append(args, "request_id", requestID)
	}
	s.logger.WarnContext(ctx, msg, args...)
}
