package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"voltid/internal/auth/models"
	"voltid/internal/auth/service/mocks"
	userstore "voltid/internal/auth/store/user"
	jwttoken "voltid/internal/jwt_token"
	kycmodels "voltid/internal/kyc/models"
	"voltid/internal/notification"
	rlservice "voltid/internal/ratelimit/service"
	"voltid/internal/ratelimit/store/counter"
	vmodels "voltid/internal/verification/models"
	vservice "voltid/internal/verification/service"
	vstore "voltid/internal/verification/store"
	"voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
	"voltid/pkg/platform/tx"
)

const testSalt = "pepper"

// outbox records the last code sent to each destination.
type outbox struct {
	codes map[string]string
	err   error
}

func (o *outbox) SendOTP(_ context.Context, _ notification.Channel, to, code string, _ time.Time) error {
	if o.err != nil {
		return o.err
	}
	o.codes[to] = code
	return nil
}

type AuthServiceSuite struct {
	suite.Suite
	ctx           context.Context
	now           time.Time
	ctrl          *gomock.Controller
	users         *userstore.InMemoryUserStore
	verifications *vstore.InMemory
	engine        *vservice.Service
	runner        tx.Runner
	outbox        *outbox
	kyc           *mocks.MockKYCInitializer
	tenants       *mocks.MockTenantChecker
	tenantID      domain.TenantID
	service       *Service
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	s.ctrl = gomock.NewController(s.T())
	s.users = userstore.New()
	s.verifications = vstore.NewInMemory()
	s.runner = tx.NewInMemory()
	s.engine = vservice.New(s.verifications, s.runner, testSalt, vservice.WithClock(s.clock))
	s.outbox = &outbox{codes: map[string]string{}}
	s.kyc = mocks.NewMockKYCInitializer(s.ctrl)
	s.tenants = mocks.NewMockTenantChecker(s.ctrl)
	s.tenantID = domain.TenantID{1}
	s.service = s.newService()
}

func (s *AuthServiceSuite) clock() time.Time { return s.now }

func (s *AuthServiceSuite) newService(opts ...Option) *Service {
	tokens := jwttoken.NewJWTServiceAdapter(jwttoken.NewJWTService("test-key", "voltid", "voltid-api"), 15*time.Minute)
	base := []Option{WithNotifier(s.outbox), WithKYC(s.kyc), WithTenants(s.tenants)}
	return New(s.users, s.verifications, s.engine, s.runner, tokens, append(base, opts...)...)
}

func (s *AuthServiceSuite) advance(d time.Duration) { s.now = s.now.Add(d) }

func (s *AuthServiceSuite) verifyEmail(email string) string {
	t, err := s.service.RequestEmailVerification(s.ctx, email)
	s.Require().NoError(err)
	_, err = s.service.ConfirmEmailVerification(s.ctx, t.Reference, s.outbox.codes[email])
	s.Require().NoError(err)
	return t.Reference
}

func (s *AuthServiceSuite) verifyPhone(phone string) string {
	t, err := s.service.RequestPhoneVerification(s.ctx, phone)
	s.Require().NoError(err)
	_, err = s.service.ConfirmPhoneVerification(s.ctx, t.Reference, s.outbox.codes[phone])
	s.Require().NoError(err)
	return t.Reference
}

func (s *AuthServiceSuite) register(email, phone string) *models.AuthResult {
	req := &models.RegisterRequest{
		FirstName:      "Ada",
		LastName:       "Obi",
		Email:          email,
		Phone:          phone,
		Password:       "correct horse",
		EmailReference: s.verifyEmail(email),
		PhoneReference: s.verifyPhone(phone),
	}
	s.tenants.EXPECT().EnsureActive(gomock.Any(), s.tenantID).Return(nil)
	s.kyc.EXPECT().CheckOrInitializeKYC(gomock.Any(), gomock.Any()).Return(&kycmodels.UserKYC{}, nil)
	res, err := s.service.Register(s.ctx, s.tenantID, req)
	s.Require().NoError(err)
	return res
}

func (s *AuthServiceSuite) TestEmailResendGuard() {
	first, err := s.service.RequestEmailVerification(s.ctx, "A@B.com")
	s.Require().NoError(err)
	s.Equal(vmodels.TypeEmail, first.Type)
	s.Len(s.outbox.codes["a@b.com"], 6)

	s.advance(time.Minute)
	_, err = s.service.RequestEmailVerification(s.ctx, "a@b.com")
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	s.Equal(msgActiveCodeExists, dErrors.MessageOf(err))

	s.advance(3 * time.Hour)
	second, err := s.service.RequestEmailVerification(s.ctx, "a@b.com")
	s.Require().NoError(err)
	s.NotEqual(first.Reference, second.Reference)

	// The stale email record is removed rather than expired.
	_, err = s.verifications.FindByReference(s.ctx, first.Reference)
	s.Error(err)
}

func (s *AuthServiceSuite) TestPhoneResendGuard() {
	first, err := s.service.RequestPhoneVerification(s.ctx, "+1 555 555 0100")
	s.Require().NoError(err)

	_, err = s.service.RequestPhoneVerification(s.ctx, "+15555550100")
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	s.advance(16 * time.Minute)
	_, err = s.service.RequestPhoneVerification(s.ctx, "+15555550100")
	s.Require().NoError(err)

	old, err := s.verifications.FindByReference(s.ctx, first.Reference)
	s.Require().NoError(err)
	s.Equal(vmodels.StatusExpired, old.Status)
}

func (s *AuthServiceSuite) TestResendCooldown() {
	limiter := rlservice.New(counter.NewInMemory(counter.WithClock(s.clock)),
		rlservice.Policy{Name: "otp_resend", Limit: 1, Window: 10 * time.Minute})
	svc := s.newService(WithResendLimiter(limiter))

	_, err := svc.RequestPhoneVerification(s.ctx, "+15555550101")
	s.Require().NoError(err)
	// The cooldown is checked before the active code.
	_, err = svc.RequestPhoneVerification(s.ctx, "+15555550101")
	s.True(dErrors.HasCode(err, dErrors.CodeRateLimited))

	s.advance(11 * time.Minute)
	_, err = svc.RequestPhoneVerification(s.ctx, "+15555550101")
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *AuthServiceSuite) TestRequestRejectsExistingAccountsAndBadInput() {
	s.register("taken@example.com", "+15555550102")

	_, err := s.service.RequestEmailVerification(s.ctx, "taken@example.com")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Equal("an account with this email already exists", dErrors.MessageOf(err))

	_, err = s.service.RequestPhoneVerification(s.ctx, "+1 (555) 555-0102")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.service.RequestPhoneVerification(s.ctx, "call me")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *AuthServiceSuite) TestDeliveryFailureIsUnavailable() {
	s.outbox.err = errors.New("queue closed")
	_, err := s.service.RequestEmailVerification(s.ctx, "late@example.com")
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))

	// The record was committed before delivery was attempted.
	v, err := s.verifications.FindLatest(s.ctx, "late@example.com", vmodels.TypeEmail)
	s.Require().NoError(err)
	s.True(v.IsPending())
}

func (s *AuthServiceSuite) TestConfirmVerification() {
	t, err := s.service.RequestEmailVerification(s.ctx, "c@example.com")
	s.Require().NoError(err)

	wrong := "000000"
	if s.outbox.codes["c@example.com"] == wrong {
		wrong = "111111"
	}
	_, err = s.service.ConfirmEmailVerification(s.ctx, t.Reference, wrong)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	v, err := s.verifications.FindByReference(s.ctx, t.Reference)
	s.Require().NoError(err)
	s.Equal(1, v.OTP.Attempts)

	res, err := s.service.ConfirmEmailVerification(s.ctx, t.Reference, s.outbox.codes["c@example.com"])
	s.Require().NoError(err)
	s.True(res.Verified)

	_, err = s.service.ConfirmEmailVerification(s.ctx, t.Reference, s.outbox.codes["c@example.com"])
	s.Equal("already verified", dErrors.MessageOf(err))

	_, err = s.service.ConfirmPhoneVerification(s.ctx, t.Reference, s.outbox.codes["c@example.com"])
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = s.service.ConfirmEmailVerification(s.ctx, "vrf_missing", "123456")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *AuthServiceSuite) TestRegister() {
	s.Run("creates a verified user and links both verifications", func() {
		res := s.register("ada@example.com", "+15555550103")
		s.NotEmpty(res.AccessToken)
		s.Equal("Bearer", res.TokenType)
		s.Equal(900, res.ExpiresIn)
		s.True(res.User.EmailVerified)
		s.True(res.User.PhoneVerified)
		s.Equal(s.tenantID, res.User.TenantID)

		v, err := s.verifications.FindLatest(s.ctx, "+15555550103", vmodels.TypePhone)
		s.Require().NoError(err)
		s.Require().NotNil(v.UserID)
		s.Equal(res.User.ID, *v.UserID)
	})

	s.Run("needs completed verifications for the submitted identifiers", func() {
		emailRef := s.verifyEmail("bo@example.com")
		pending, err := s.service.RequestPhoneVerification(s.ctx, "+15555550104")
		s.Require().NoError(err)

		s.tenants.EXPECT().EnsureActive(gomock.Any(), s.tenantID).Return(nil)
		_, err = s.service.Register(s.ctx, s.tenantID, &models.RegisterRequest{
			FirstName: "Bo", LastName: "Ng", Email: "bo@example.com", Phone: "+15555550104",
			Password: "long enough", EmailReference: emailRef, PhoneReference: pending.Reference,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Equal("phone number has not been verified", dErrors.MessageOf(err))

		s.tenants.EXPECT().EnsureActive(gomock.Any(), s.tenantID).Return(nil)
		_, err = s.service.Register(s.ctx, s.tenantID, &models.RegisterRequest{
			FirstName: "Bo", LastName: "Ng", Email: "other@example.com", Phone: "+15555550104",
			Password: "long enough", EmailReference: emailRef, PhoneReference: pending.Reference,
		})
		s.Equal("email address has not been verified", dErrors.MessageOf(err))
	})

	s.Run("inactive tenant is refused before anything is written", func() {
		s.tenants.EXPECT().EnsureActive(gomock.Any(), s.tenantID).
			Return(dErrors.New(dErrors.CodeForbidden, "tenant is inactive"))
		_, err := s.service.Register(s.ctx, s.tenantID, &models.RegisterRequest{
			FirstName: "X", LastName: "Y", Email: "x@example.com", Phone: "+15555550105",
			Password: "long enough", EmailReference: "a", PhoneReference: "b",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		_, err = s.users.FindByEmail(s.ctx, "x@example.com")
		s.Error(err)
	})

	s.Run("missing tenant", func() {
		_, err := s.service.Register(s.ctx, domain.TenantID{}, &models.RegisterRequest{})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *AuthServiceSuite) TestAuditFailureOnlyBlocksRegistration() {
	outage := errors.New("outbox down")
	publisher := mocks.NewMockAuditPublisher(s.ctrl)
	publisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(outage).AnyTimes()
	s.service = s.newService(WithAuditPublisher(publisher))

	emailRef := s.verifyEmail("audit@example.com")
	phoneRef := s.verifyPhone("+15555550109")

	s.tenants.EXPECT().EnsureActive(gomock.Any(), s.tenantID).Return(nil)
	s.kyc.EXPECT().CheckOrInitializeKYC(gomock.Any(), gomock.Any()).Return(&kycmodels.UserKYC{}, nil)
	_, err := s.service.Register(s.ctx, s.tenantID, &models.RegisterRequest{
		FirstName: "Ada", LastName: "Obi", Email: "audit@example.com", Phone: "+15555550109",
		Password: "correct horse", EmailReference: emailRef, PhoneReference: phoneRef,
	})
	s.ErrorIs(err, outage)

	_, err = s.service.Login(s.ctx, "nobody@example.com", "whatever")
	s.True(dErrors.HasCode(err, dErrors.CodeAuthentication), "login failure is reported, not the audit error")
}

func (s *AuthServiceSuite) TestLogin() {
	s.register("login@example.com", "+15555550106")
	limiter := rlservice.New(counter.NewInMemory(counter.WithClock(s.clock)),
		rlservice.Policy{Name: "login", Limit: 2, Window: 15 * time.Minute})
	svc := s.newService(WithLoginLimiter(limiter))

	res, err := svc.Login(s.ctx, " LOGIN@example.com ", "correct horse")
	s.Require().NoError(err)
	s.NotEmpty(res.AccessToken)

	_, err = svc.Login(s.ctx, "nobody@example.com", "whatever")
	s.True(dErrors.HasCode(err, dErrors.CodeAuthentication))
	s.Equal(msgInvalidCredentials, dErrors.MessageOf(err))

	for range 2 {
		_, err = svc.Login(s.ctx, "login@example.com", "wrong")
		s.True(dErrors.HasCode(err, dErrors.CodeAuthentication))
	}
	_, err = svc.Login(s.ctx, "login@example.com", "correct horse")
	s.True(dErrors.HasCode(err, dErrors.CodeRateLimited))

	s.advance(16 * time.Minute)
	_, err = svc.Login(s.ctx, "login@example.com", "correct horse")
	s.NoError(err)
}

func (s *AuthServiceSuite) TestLoginOTP() {
	reg := s.register("otp@example.com", "+15555550107")
	s.advance(time.Minute)

	ticket, err := s.service.RequestLoginOTP(s.ctx, "+15555550107")
	s.Require().NoError(err)
	s.Equal(vmodels.TypePhone, ticket.Type)

	_, err = s.service.RequestLoginOTP(s.ctx, "+15555550107")
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	res, err := s.service.VerifyLoginOTP(s.ctx, ticket.Reference, s.outbox.codes["+15555550107"])
	s.Require().NoError(err)
	s.Equal(reg.User.ID, res.User.ID)

	_, err = s.service.VerifyLoginOTP(s.ctx, ticket.Reference, s.outbox.codes["+15555550107"])
	s.True(dErrors.HasCode(err, dErrors.CodeAuthentication))

	_, err = s.service.RequestLoginOTP(s.ctx, "+15555550999")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *AuthServiceSuite) TestLoginOTPExpiredCodeIsReplaced() {
	s.register("exp@example.com", "+15555550108")
	s.advance(time.Minute)

	first, err := s.service.RequestLoginOTP(s.ctx, "+15555550108")
	s.Require().NoError(err)
	code := s.outbox.codes["+15555550108"]

	s.advance(16 * time.Minute)
	_, err = s.service.VerifyLoginOTP(s.ctx, first.Reference, code)
	s.True(dErrors.HasCode(err, dErrors.CodeAuthentication))

	_, err = s.service.RequestLoginOTP(s.ctx, "+15555550108")
	s.Require().NoError(err)
}

func (s *AuthServiceSuite) TestSignupReferenceCannotLogIn() {
	t, err := s.service.RequestPhoneVerification(s.ctx, "+15555550109")
	s.Require().NoError(err)
	_, err = s.service.VerifyLoginOTP(s.ctx, t.Reference, s.outbox.codes["+15555550109"])
	s.True(dErrors.HasCode(err, dErrors.CodeAuthentication))
}
