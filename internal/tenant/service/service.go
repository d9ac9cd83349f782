// Package service manages tenants and decides whether a tenant may accept
// new registrations.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"voltid/internal/tenant/metrics"
	"voltid/internal/tenant/models"
	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
	audit "voltid/pkg/platform/audit"
	"voltid/pkg/platform/sentinel"
	"voltid/pkg/platform/tx"
	"voltid/pkg/requestcontext"
)

type TenantStore interface {
	CreateIfNameAvailable(ctx context.Context, tenant *models.Tenant) error
	FindByID(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
	FindByName(ctx context.Context, name string) (*models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error
}

type UserCounter interface {
	CountByTenant(ctx context.Context, tenantID id.TenantID) (int, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates tenant management.
type Service struct {
	tenants        TenantStore
	userCounter    UserCounter
	tx             tx.Runner
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTx makes creation and status changes run inside runner. Without it
// the store calls run directly.
func WithTx(runner tx.Runner) Option {
	return func(s *Service) {
		s.tx = runner
	}
}

func New(tenants TenantStore, users UserCounter, opts ...Option) *Service {
	s := &Service{tenants: tenants, userCounter: users, tx: tx.NewInMemory()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) CreateTenant(ctx context.Context, name string) (*models.Tenant, error) {
	var tenant *models.Tenant
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		t, err := models.NewTenant(id.TenantID(uuid.New()), name, requestcontext.Now(ctx))
		if err != nil {
			if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
				return dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
			}
			return err
		}
		if err := s.tenants.CreateIfNameAvailable(ctx, t); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeConflict, "tenant name must be unique")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create tenant")
		}
		tenant = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.EventTenantCreated, "tenant_id", tenant.ID.String())
	s.metrics.IncrementTenantCreated()
	return tenant, nil
}

// GetTenant fetches a tenant with its user count.
func (s *Service) GetTenant(ctx context.Context, tenantID id.TenantID) (*models.TenantDetails, error) {
	defer s.metrics.ObserveGetTenant(time.Now())
	if err := requireTenantID(tenantID); err != nil {
		return nil, err
	}
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, wrapTenantErr(err)
	}

	userCount := 0
	if s.userCounter != nil {
		userCount, err = s.userCounter.CountByTenant(ctx, tenantID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count users")
		}
	}
	return &models.TenantDetails{Tenant: tenant, UserCount: userCount}, nil
}

func (s *Service) GetTenantByName(ctx context.Context, name string) (*models.Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "tenant name is required")
	}
	tenant, err := s.tenants.FindByName(ctx, name)
	if err != nil {
		return nil, wrapTenantErr(err)
	}
	return tenant, nil
}

// ResolveTenant is the single choke point registration goes through: an
// unknown tenant is not found and an inactive one is forbidden.
func (s *Service) ResolveTenant(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	defer s.metrics.ObserveResolveTenant(time.Now())
	if err := requireTenantID(tenantID); err != nil {
		return nil, err
	}
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, wrapTenantErr(err)
	}
	if !tenant.IsActive() {
		return nil, dErrors.New(dErrors.CodeForbidden, "tenant is inactive")
	}
	return tenant, nil
}

func (s *Service) DeactivateTenant(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	return s.transition(ctx, tenantID, (*models.Tenant).CanDeactivate, (*models.Tenant).ApplyDeactivation)
}

func (s *Service) ReactivateTenant(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	return s.transition(ctx, tenantID, (*models.Tenant).CanReactivate, (*models.Tenant).ApplyReactivation)
}

func (s *Service) transition(
	ctx context.Context,
	tenantID id.TenantID,
	validate func(*models.Tenant) error,
	apply func(*models.Tenant, time.Time),
) (*models.Tenant, error) {
	if err := requireTenantID(tenantID); err != nil {
		return nil, err
	}
	var tenant *models.Tenant
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		t, err := s.tenants.FindByID(ctx, tenantID)
		if err != nil {
			return wrapTenantErr(err)
		}
		if err := validate(t); err != nil {
			return dErrors.New(dErrors.CodeConflict, dErrors.MessageOf(err))
		}
		apply(t, requestcontext.Now(ctx))
		if err := s.tenants.Update(ctx, t); err != nil {
			return wrapTenantErr(err)
		}
		tenant = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "tenant status changed",
			"tenant_id", tenant.ID.String(),
			"status", tenant.Status,
		)
	}
	return tenant, nil
}

func requireTenantID(tenantID id.TenantID) error {
	if tenantID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "tenant id is required")
	}
	return nil
}

func wrapTenantErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "tenant not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tenant")
}

// logAudit records an event after the change is committed. A publisher
// failure is logged; the tenant change stands.
func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", string(event), "log_type", "audit")
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event), args...)
	}
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, audit.Event{Action: string(event)}); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "event", string(event), "error", err)
	}
}
