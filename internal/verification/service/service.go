// Package service is the OTP verification engine: it issues codes bound to an
// identifier, checks submitted codes against the stored hash and enforces the
// expiry windows.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"voltid/internal/verification/metrics"
	"voltid/internal/verification/models"
	"voltid/internal/verification/otp"
	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
	"voltid/pkg/platform/sentinel"
	"voltid/pkg/platform/tx"
	"voltid/pkg/requestcontext"
)

// Store is the persistence surface the engine needs.
type Store interface {
	Create(ctx context.Context, v *models.Verification) error
	FindByID(ctx context.Context, verificationID id.VerificationID) (*models.Verification, error)
	FindByReference(ctx context.Context, reference string) (*models.Verification, error)
	LockByID(ctx context.Context, verificationID id.VerificationID) (*models.Verification, error)
	LockByReference(ctx context.Context, reference string) (*models.Verification, error)
	Update(ctx context.Context, v *models.Verification) error
	DeleteExpired(ctx context.Context, cutoff, now time.Time) (int, error)
}

// Outcome labels for validation metrics.
const (
	outcomeVerified = "verified"
	outcomeMismatch = "mismatch"
	outcomeExpired  = "expired"
	outcomeResolved = "not_pending"
)

const msgVerificationFailed = "verification failed"

type Service struct {
	store   Store
	tx      tx.Runner
	salt    string
	now     func() time.Time
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
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

// WithClock overrides time.Now, mainly for expiry tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New constructs the engine. salt is the server-side pepper mixed into every
// code hash; runner should begin READ COMMITTED transactions.
func New(store Store, runner tx.Runner, salt string, opts ...Option) *Service {
	s := &Service{
		store:  store,
		tx:     runner,
		salt:   salt,
		now:    time.Now,
		tracer: otel.Tracer("voltid/verification"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Salt exposes the configured pepper to collaborators that hash codes the
// same way (the registration helpers).
func (s *Service) Salt() string {
	return s.salt
}

// Now is the engine clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// GenerateCode returns a fresh 6-digit code.
func (s *Service) GenerateCode() (string, error) {
	code, err := otp.Generate()
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate code")
	}
	return code, nil
}

// CreateVerification issues a PENDING verification for identifier with the
// channel windows of typ.
func (s *Service) CreateVerification(ctx context.Context, identifier string, typ models.Type, rawCode string) (*models.Verification, error) {
	return s.CreateVerificationForUser(ctx, nil, identifier, typ, rawCode)
}

// CreateVerificationForUser is CreateVerification with the owning user already known.
func (s *Service) CreateVerificationForUser(ctx context.Context, userID *id.UserID, identifier string, typ models.Type, rawCode string) (*models.Verification, error) {
	ctx, span := s.tracer.Start(ctx, "verification.Create",
		trace.WithAttributes(attribute.String("verification.type", string(typ))))
	defer span.End()

	if rawCode == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "code is required")
	}
	reference, err := otp.NewReference()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeVerificationCreateFailed, "failed to create verification")
	}
	now := s.now()
	v, err := models.NewVerification(id.VerificationID(uuid.New()), typ, identifier, reference, otp.Hash(rawCode, s.salt), now)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, err.Error())
	}
	if userID != nil {
		v.LinkUser(*userID, now)
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.store.Create(ctx, v)
	})
	if err != nil {
		recordSpanError(span, err)
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "an active verification already exists")
		}
		s.logError(ctx, "verification create failed", err, "type", typ)
		return nil, dErrors.Wrap(err, dErrors.CodeVerificationCreateFailed, "failed to create verification")
	}

	s.metrics.IncCreated(string(typ))
	s.logInfo(ctx, "verification created",
		"verification_id", v.ID.String(),
		"type", typ,
		"reference", v.Reference,
	)
	return v, nil
}

// Validate checks code against the verification identified by referenceOrID.
//
// The row is locked for the whole check. Expiry and mismatch are committed
// (EXPIRED status, attempts counter) before the authentication error is
// returned, so a failed guess is never lost to a rollback.
func (s *Service) Validate(ctx context.Context, code, referenceOrID string) (*models.Verification, error) {
	start := time.Now()
	defer s.metrics.ObserveValidate(start)

	ctx, span := s.tracer.Start(ctx, "verification.Validate")
	defer span.End()

	var (
		verified *models.Verification
		outcome  string
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		v, err := s.lock(ctx, referenceOrID)
		if err != nil {
			return err
		}
		now := s.now()

		switch {
		case !v.IsPending():
			outcome = outcomeResolved
			return nil
		case v.OTPExpired(now):
			outcome = outcomeExpired
			if err := v.ApplyExpiry(now); err != nil {
				return err
			}
			return s.store.Update(ctx, v)
		case !otp.Compare(code, s.salt, v.OTP.CodeHash):
			outcome = outcomeMismatch
			if err := v.RecordFailedAttempt(now); err != nil {
				return err
			}
			return s.store.Update(ctx, v)
		}

		outcome = outcomeVerified
		if err := v.ApplyVerified(now); err != nil {
			return err
		}
		if err := s.store.Update(ctx, v); err != nil {
			return err
		}
		verified = v
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "verification not found")
		}
		if _, ok := dErrors.As(err); ok {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to validate verification")
	}

	s.metrics.IncOutcome(outcome)
	span.SetAttributes(attribute.String("verification.outcome", outcome))
	if verified == nil {
		s.logWarn(ctx, "verification rejected", "outcome", outcome)
		return nil, dErrors.New(dErrors.CodeAuthentication, msgVerificationFailed)
	}
	s.logInfo(ctx, "verification verified",
		"verification_id", verified.ID.String(),
		"type", verified.Type,
	)
	return verified, nil
}

// lock resolves by reference first and falls back to the primary key when
// the input is a UUID.
func (s *Service) lock(ctx context.Context, referenceOrID string) (*models.Verification, error) {
	v, err := s.store.LockByReference(ctx, referenceOrID)
	if err == nil || !errors.Is(err, sentinel.ErrNotFound) {
		return v, err
	}
	parsed, parseErr := uuid.Parse(referenceOrID)
	if parseErr != nil {
		return nil, err
	}
	return s.store.LockByID(ctx, id.VerificationID(parsed))
}

// DeleteExpired removes verifications whose window closed before cutoff.
// Unexpired PENDING rows are never removed.
func (s *Service) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	n, err := s.store.DeleteExpired(ctx, cutoff, s.now())
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete expired verifications")
	}
	s.metrics.AddSwept(n)
	s.logInfo(ctx, "expired verifications deleted", "count", n, "cutoff", cutoff)
	return n, nil
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func (s *Service) logInfo(ctx context.Context, msg string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.InfoContext(ctx, msg, withRequestID(ctx, args)...)
}

func (s *Service) logWarn(ctx context.Context, msg string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.WarnContext(ctx, msg, withRequestID(ctx, args)...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.ErrorContext(ctx, msg, withRequestID(ctx, append(args, "error", err))...)
}

func withRequestID(ctx context.Context, args []any) []any {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		return append(args, "request_id", requestID)
	}
	return args
}
