package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"voltid/internal/verification/models"
	"voltid/internal/verification/otp"
	"voltid/internal/verification/service/mocks"
	"voltid/internal/verification/store"
	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
	"voltid/pkg/platform/sentinel"
	"voltid/pkg/platform/tx"
)

const testSalt = "test-pepper"

// ServiceSuite exercises the engine against the in-memory store so committed
// state can be inspected after each call.
type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	store   *store.InMemory
	service *Service
	now     time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.NewInMemory()
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.service = New(s.store, tx.NewInMemory(), testSalt, WithClock(func() time.Time { return s.now }))
}

func (s *ServiceSuite) advance(d time.Duration) {
	s.now = s.now.Add(d)
}

func (s *ServiceSuite) stored(v *models.Verification) *models.Verification {
	found, err := s.store.FindByID(s.ctx, v.ID)
	s.Require().NoError(err)
	return found
}

func (s *ServiceSuite) TestCreateVerification() {
	v, err := s.service.CreateVerification(s.ctx, "+15551234567", models.TypePhone, "482913")
	s.Require().NoError(err)

	s.Equal(models.StatusPending, v.Status)
	s.Equal(0, v.OTP.Attempts)
	s.Equal(s.now.Add(15*time.Minute), v.OTP.ExpiresAt)
	s.Equal(s.now.Add(time.Hour), v.ExpiresAt)
	s.Equal(otp.Hash("482913", testSalt), v.OTP.CodeHash)
	s.NotEqual("482913", v.OTP.CodeHash)
	s.Contains(v.Reference, otp.ReferencePrefix)
	s.Nil(v.UserID)
}

func (s *ServiceSuite) TestCreateVerificationRejectsSecondPending() {
	_, err := s.service.CreateVerification(s.ctx, "a@b.com", models.TypeEmail, "111111")
	s.Require().NoError(err)

	_, err = s.service.CreateVerification(s.ctx, "a@b.com", models.TypeEmail, "222222")
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestCreateVerificationValidatesInput() {
	_, err := s.service.CreateVerification(s.ctx, "", models.TypeEmail, "111111")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.service.CreateVerification(s.ctx, "a@b.com", models.TypeEmail, "")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestCreateVerificationForUser() {
	userID := id.UserID(uuid.New())
	v, err := s.service.CreateVerificationForUser(s.ctx, &userID, "a@b.com", models.TypeEmail, "111111")
	s.Require().NoError(err)
	s.Require().NotNil(s.stored(v).UserID)
	s.Equal(userID, *s.stored(v).UserID)
}

// Create then validate immediately; a second validate is rejected.
func (s *ServiceSuite) TestValidateThenRevalidate() {
	v, err := s.service.CreateVerification(s.ctx, "+15551234567", models.TypePhone, "482913")
	s.Require().NoError(err)

	got, err := s.service.Validate(s.ctx, "482913", v.Reference)
	s.Require().NoError(err)
	s.Equal(models.StatusVerified, got.Status)
	s.True(got.OTP.Verified)
	s.Equal(models.StatusVerified, s.stored(v).Status)

	_, err = s.service.Validate(s.ctx, "482913", v.Reference)
	s.True(dErrors.HasCode(err, dErrors.CodeAuthentication))
	s.Equal(models.StatusVerified, s.stored(v).Status)
}

// A correct code after the 15 minute window fails and leaves the record EXPIRED.
func (s *ServiceSuite) TestValidateAfterExpiry() {
	v, err := s.service.CreateVerification(s.ctx, "+15551234567", models.TypePhone, "482913")
	s.Require().NoError(err)

	s.advance(16 * time.Minute)
	_, err = s.service.Validate(s.ctx, "482913", v.Reference)
	s.True(dErrors.HasCode(err, dErrors.CodeAuthentication))
	s.Equal(models.StatusExpired, s.stored(v).Status)

	_, err = s.service.Validate(s.ctx, "482913", v.Reference)
	s.True(dErrors.HasCode(err, dErrors.CodeAuthentication))
	s.Equal(models.StatusExpired, s.stored(v).Status)
}

func (s *ServiceSuite) TestValidateMismatchPersistsAttempts() {
	v, err := s.service.CreateVerification(s.ctx, "+15551234567", models.TypePhone, "482913")
	s.Require().NoError(err)

	for _, wrong := range []string{"482914", "382913", "48291"} {
		_, err := s.service.Validate(s.ctx, wrong, v.Reference)
		s.True(dErrors.HasCode(err, dErrors.CodeAuthentication), wrong)
	}

	stored := s.stored(v)
	s.Equal(models.StatusPending, stored.Status)
	s.Equal(3, stored.OTP.Attempts)
	s.Require().NotNil(stored.OTP.LastAttemptAt)

	got, err := s.service.Validate(s.ctx, "482913", v.Reference)
	s.Require().NoError(err)
	s.Equal(3, got.OTP.Attempts)
}

func (s *ServiceSuite) TestValidateResolvesByID() {
	v, err := s.service.CreateVerification(s.ctx, "a@b.com", models.TypeEmail, "123456")
	s.Require().NoError(err)

	got, err := s.service.Validate(s.ctx, "123456", v.ID.String())
	s.Require().NoError(err)
	s.Equal(v.ID, got.ID)
}

func (s *ServiceSuite) TestValidateUnknownReference() {
	_, err := s.service.Validate(s.ctx, "123456", "vrf_unknown")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = s.service.Validate(s.ctx, "123456", uuid.NewString())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestDeleteExpired() {
	v, err := s.service.CreateVerification(s.ctx, "+15551234567", models.TypePhone, "482913")
	s.Require().NoError(err)

	n, err := s.service.DeleteExpired(s.ctx, s.now.Add(2*time.Hour))
	s.Require().NoError(err)
	s.Equal(0, n, "pending and unexpired must survive")

	s.advance(2 * time.Hour)
	n, err = s.service.DeleteExpired(s.ctx, s.now)
	s.Require().NoError(err)
	s.Equal(1, n)

	_, err = s.store.FindByID(s.ctx, v.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ServiceSuite) TestGenerateCode() {
	code, err := s.service.GenerateCode()
	s.Require().NoError(err)
	s.Len(code, otp.CodeLength)
}

// Store failures are exercised with a mock store.
func TestServiceStoreFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockStore(ctrl)
	svc := New(mockStore, tx.NewInMemory(), testSalt)
	ctx := context.Background()

	t.Run("create failure is a generic creation error", func(t *testing.T) {
		mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		_, err := svc.CreateVerification(ctx, "a@b.com", models.TypeEmail, "123456")
		if !dErrors.HasCode(err, dErrors.CodeVerificationCreateFailed) {
			t.Fatalf("expected verification_create_failed, got %v", err)
		}
	})

	t.Run("update failure during validate surfaces as internal", func(t *testing.T) {
		v, err := models.NewVerification(id.VerificationID(uuid.New()), models.TypePhone, "+15550000000",
			"vrf_ref", otp.Hash("123456", testSalt), time.Now())
		if err != nil {
			t.Fatal(err)
		}
		mockStore.EXPECT().LockByReference(gomock.Any(), "vrf_ref").Return(v, nil)
		mockStore.EXPECT().Update(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		_, err = svc.Validate(ctx, "123456", "vrf_ref")
		if dErrors.CodeOf(err) != dErrors.CodeInternal {
			t.Fatalf("expected internal error, got %v", err)
		}
	})

	t.Run("store not found maps to not found without id fallback", func(t *testing.T) {
		mockStore.EXPECT().LockByReference(gomock.Any(), "vrf_missing").
			Return(nil, sentinel.ErrNotFound)

		_, err := svc.Validate(ctx, "123456", "vrf_missing")
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			t.Fatalf("expected not_found, got %v", err)
		}
	})
}
