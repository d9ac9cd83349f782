// Package service runs KYC onboarding: it creates each user's progress
// record, hands out upload grants, checks uploaded documents and images, and
// moves users through the stage graph.
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

	authmodels "voltid/internal/auth/models"
	"voltid/internal/kyc/metrics"
	"voltid/internal/kyc/models"
	"voltid/internal/media/vision"
	"voltid/pkg/attrs"
	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
	audit "voltid/pkg/platform/audit"
	"voltid/pkg/platform/sentinel"
	"voltid/pkg/platform/tx"
	"voltid/pkg/requestcontext"
)

type Store interface {
	FindByUserID(ctx context.Context, userID id.UserID) (*models.UserKYC, error)
	LockByUserID(ctx context.Context, userID id.UserID) (*models.UserKYC, error)
	Create(ctx context.Context, k *models.UserKYC) error
	UpdateStage(ctx context.Context, k *models.UserKYC, expected models.Stage) error
	SetFailure(ctx context.Context, userID id.UserID, reason string, now time.Time) error
	ResetKYC(ctx context.Context, userID id.UserID, now time.Time) error
	Upsert(ctx context.Context, k *models.UserKYC) error
}

type UserLookup interface {
	FindByID(ctx context.Context, userID id.UserID) (*authmodels.User, error)
}

// ObjectStore is the media bucket holding user uploads.
type ObjectStore interface {
	PresignedUploadURL(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type TextExtractor interface {
	ExtractDocumentText(ctx context.Context, key string) ([]vision.TextBlock, error)
}

type ObjectDetector interface {
	DetectLabels(ctx context.Context, key string, candidates []string) ([]vision.Label, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

const defaultUploadTTL = 5 * time.Minute

type Service struct {
	store    Store
	users    UserLookup
	objects  ObjectStore
	text     TextExtractor
	detector ObjectDetector
	tx       tx.Runner

	uploadTTL      time.Duration
	now            func() time.Time
	auditPublisher AuditPublisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer
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

// WithUploadTTL overrides how long upload grants stay valid.
func WithUploadTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.uploadTTL = ttl
		}
	}
}

func New(
	store Store,
	users UserLookup,
	objects ObjectStore,
	text TextExtractor,
	detector ObjectDetector,
	runner tx.Runner,
	opts ...Option,
) *Service {
	s := &Service{
		store:     store,
		users:     users,
		objects:   objects,
		text:      text,
		detector:  detector,
		tx:        runner,
		uploadTTL: defaultUploadTTL,
		now:       time.Now,
		tracer:    otel.Tracer("voltid/kyc"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckOrInitializeKYC returns the user's KYC record, creating it on first
// call. A completed record is refused with a registration error.
func (s *Service) CheckOrInitializeKYC(ctx context.Context, userID id.UserID) (*models.UserKYC, error) {
	ctx, span := s.tracer.Start(ctx, "kyc.CheckOrInitialize")
	defer span.End()

	var out *models.UserKYC
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.store.FindByUserID(ctx, userID)
		switch {
		case err == nil:
			if existing.IsCompleted() {
				return dErrors.New(dErrors.CodeRegistration, "KYC is already completed")
			}
			out = existing
			return nil
		case !errors.Is(err, sentinel.ErrNotFound):
			return err
		}

		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeRegistration, "User not found")
			}
			return err
		}
		k, err := models.NewUserKYC(id.KYCID(uuid.New()), userID, initialStage(user), s.now())
		if err != nil {
			return err
		}
		if err := s.store.Create(ctx, k); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "kyc is already being initialized")
			}
			return err
		}
		out = k
		return s.logAudit(ctx, audit.EventKYCInitialized, userID, "stage", string(k.CurrentStage))
	})
	if err != nil {
		recordSpanError(span, err)
		return nil, s.translate(ctx, err, "failed to initialize kyc")
	}
	return out, nil
}

// initialStage skips the contact stages the user has already proven.
func initialStage(user *authmodels.User) models.Stage {
	switch {
	case !user.EmailVerified:
		return models.StageEmailVerification
	case !user.PhoneVerified:
		return models.StagePhoneVerification
	default:
		return models.StageFaceUpload
	}
}

// AdvanceStage records completed as done and moves to the next stage. The
// record must currently be at completed; anything else is refused, so stages
// never skip ahead or move back.
func (s *Service) AdvanceStage(ctx context.Context, userID id.UserID, completed models.Stage, metadata map[string]any) (*models.UserKYC, error) {
	ctx, span := s.tracer.Start(ctx, "kyc.AdvanceStage",
		trace.WithAttributes(attribute.String("kyc.stage", string(completed))))
	defer span.End()

	var out *models.UserKYC
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		k, err := s.store.LockByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if err := k.CanAdvance(completed); err != nil {
			return err
		}
		k.ApplyAdvance(s.now(), metadata)
		if err := s.store.UpdateStage(ctx, k, completed); err != nil {
			return err
		}
		if err := s.logAudit(ctx, audit.EventKYCStageAdvance, userID, "stage", string(completed)); err != nil {
			return err
		}
		if k.IsCompleted() {
			if err := s.logAudit(ctx, audit.EventKYCCompleted, userID); err != nil {
				return err
			}
		}
		out = k
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		return nil, s.translate(ctx, err, "failed to advance kyc stage")
	}
	s.metrics.IncStageAdvance(string(completed))
	return out, nil
}

// FailStage marks the current stage FAILED with reason. The stage itself is
// kept so the user can retry it.
func (s *Service) FailStage(ctx context.Context, userID id.UserID, reason string) error {
	var stage models.Stage
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		k, err := s.store.LockByUserID(ctx, userID)
		if err != nil {
			return err
		}
		now := s.now()
		if err := k.ApplyFailure(now, reason); err != nil {
			return err
		}
		if err := s.store.SetFailure(ctx, userID, reason, now); err != nil {
			return err
		}
		stage = k.CurrentStage
		return s.logAudit(ctx, audit.EventKYCStageFailed, userID, "stage", string(stage), "reason", reason)
	})
	if err != nil {
		return s.translate(ctx, err, "failed to record kyc failure")
	}
	s.metrics.IncStageFailure(string(stage))
	return nil
}

// Reset sends an unfinished record back to the start of the pipeline and
// then skips the contact stages already proven on the user's profile.
func (s *Service) Reset(ctx context.Context, userID id.UserID) (*models.UserKYC, error) {
	var out *models.UserKYC
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		k, err := s.store.LockByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if k.IsCompleted() {
			return dErrors.New(dErrors.CodeKYCStageInvalid, "a completed kyc cannot be reset")
		}
		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		now := s.now()
		if err := s.store.ResetKYC(ctx, userID, now); err != nil {
			return err
		}
		k.ApplyReset(now)
		k.CurrentStage = initialStage(user)
		if err := s.store.Upsert(ctx, k); err != nil {
			return err
		}
		out = k
		return s.logAudit(ctx, audit.EventKYCReset, userID, "stage", string(k.CurrentStage))
	})
	if err != nil {
		return nil, s.translate(ctx, err, "failed to reset kyc")
	}
	return out, nil
}

// GetKYC returns the user's record without creating one.
func (s *Service) GetKYC(ctx context.Context, userID id.UserID) (*models.UserKYC, error) {
	k, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		return nil, s.translate(ctx, err, "failed to load kyc")
	}
	return k, nil
}

// requireStage loads the record and checks it is waiting on stage.
func (s *Service) requireStage(ctx context.Context, userID id.UserID, stage models.Stage) (*models.UserKYC, error) {
	k, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		return nil, s.translate(ctx, err, "failed to load kyc")
	}
	if err := k.CanAdvance(stage); err != nil {
		return nil, err
	}
	return k, nil
}

// translate maps store sentinels to domain errors. Domain errors pass through.
func (s *Service) translate(ctx context.Context, err error, msg string) error {
	if _, ok := dErrors.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "kyc record not found")
	case errors.Is(err, sentinel.ErrInvalidState):
		return dErrors.New(dErrors.CodeConflict, "kyc record changed concurrently, retry")
	}
	s.logError(ctx, msg, err)
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

// logAudit logs the event and emits it. KYC events are compliance records,
// so a publisher error fails the surrounding transaction.
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
		Subject: attrs.ExtractString(attributes, "stage"),
		Action:  string(event),
		Reason:  attrs.ExtractString(attributes, "reason"),
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

func (s *Service) logError(ctx context.Context, msg string, err error, args ...any) {
	if s.logger == nil {
		return
	}
	args = append(args, "error", err)
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		args = append(args, "request_id", requestID)
	}
	s.logger.ErrorContext(ctx, msg, args...)
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
