package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"voltid/internal/tenant/models"
	"voltid/internal/tenant/service/mocks"
	tenantstore "voltid/internal/tenant/store/tenant"
	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
	audit "voltid/pkg/platform/audit"
	"voltid/pkg/requestcontext"
)

type TenantServiceSuite struct {
	suite.Suite
	ctx     context.Context
	ctrl    *gomock.Controller
	store   *tenantstore.InMemory
	users   *mocks.MockUserCounter
	audit   *mocks.MockAuditPublisher
	service *Service
}

func TestTenantServiceSuite(t *testing.T) {
	suite.Run(t, new(TenantServiceSuite))
}

func (s *TenantServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC))
	s.ctrl = gomock.NewController(s.T())
	s.store = tenantstore.NewInMemory()
	s.users = mocks.NewMockUserCounter(s.ctrl)
	s.audit = mocks.NewMockAuditPublisher(s.ctrl)
	s.service = New(s.store, s.users, WithAuditPublisher(s.audit))
}

func (s *TenantServiceSuite) create(name string) *models.Tenant {
	s.audit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)
	t, err := s.service.CreateTenant(s.ctx, name)
	s.Require().NoError(err)
	return t
}

func (s *TenantServiceSuite) TestCreateTenant() {
	s.Run("creates an active tenant and emits tenant_created", func() {
		s.audit.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e audit.Event) error {
				s.Equal(string(audit.EventTenantCreated), e.Action)
				return nil
			})

		t, err := s.service.CreateTenant(s.ctx, " Volt East ")
		s.Require().NoError(err)
		s.Equal("Volt East", t.Name)
		s.True(t.IsActive())
		s.Equal(requestcontext.Now(s.ctx), t.CreatedAt)
	})

	s.Run("duplicate name is a conflict", func() {
		_, err := s.service.CreateTenant(s.ctx, "VOLT EAST")
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("empty name is a validation error", func() {
		_, err := s.service.CreateTenant(s.ctx, "  ")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *TenantServiceSuite) TestCreateTenantSurvivesAuditFailure() {
	s.audit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("outbox down"))

	t, err := s.service.CreateTenant(s.ctx, "Volt West")
	s.Require().NoError(err)

	stored, err := s.store.FindByID(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal("Volt West", stored.Name)
}

func (s *TenantServiceSuite) TestGetTenant() {
	t := s.create("Counted")
	s.users.EXPECT().CountByTenant(gomock.Any(), t.ID).Return(3, nil)

	details, err := s.service.GetTenant(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal(3, details.UserCount)
	s.Equal(t.ID, details.ID)

	s.users.EXPECT().CountByTenant(gomock.Any(), t.ID).Return(0, errors.New("db down"))
	_, err = s.service.GetTenant(s.ctx, t.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))

	_, err = s.service.GetTenant(s.ctx, id.TenantID(uuid.New()))
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = s.service.GetTenant(s.ctx, id.TenantID{})
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *TenantServiceSuite) TestResolveTenantRejectsInactive() {
	t := s.create("Resolvable")

	resolved, err := s.service.ResolveTenant(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal(t.ID, resolved.ID)

	_, err = s.service.DeactivateTenant(s.ctx, t.ID)
	s.Require().NoError(err)

	_, err = s.service.ResolveTenant(s.ctx, t.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	_, err = s.service.ResolveTenant(s.ctx, id.TenantID(uuid.New()))
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *TenantServiceSuite) TestStatusTransitions() {
	t := s.create("Toggle")

	_, err := s.service.ReactivateTenant(s.ctx, t.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	updated, err := s.service.DeactivateTenant(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal(models.TenantStatusInactive, updated.Status)

	_, err = s.service.DeactivateTenant(s.ctx, t.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	updated, err = s.service.ReactivateTenant(s.ctx, t.ID)
	s.Require().NoError(err)
	s.True(updated.IsActive())
}

func (s *TenantServiceSuite) TestGetTenantByName() {
	t := s.create("Named")

	found, err := s.service.GetTenantByName(s.ctx, "named")
	s.Require().NoError(err)
	s.Equal(t.ID, found.ID)

	_, err = s.service.GetTenantByName(s.ctx, " ")
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}
