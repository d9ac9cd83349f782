package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"voltid/internal/auth/handler/mocks"
	"voltid/internal/auth/models"
	vmodels "voltid/internal/verification/models"
	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
	"voltid/pkg/platform/httputil"
)

func newRouter(svc Service) http.Handler {
	r := chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r
}

func post(router http.Handler, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	var body httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestRequestVerification(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	router := newRouter(svc)

	t.Run("email ticket", func(t *testing.T) {
		expires := time.Date(2026, 6, 1, 11, 0, 0, 0, time.UTC)
		svc.EXPECT().RequestEmailVerification(gomock.Any(), "a@b.com").Return(&models.VerificationTicket{
			Reference: "vrf_abc", Type: vmodels.TypeEmail, ExpiresAt: expires,
		}, nil)
		rec := post(router, "/auth/email/request", map[string]string{"email": "a@b.com"}, nil)
		require.Equal(t, http.StatusAccepted, rec.Code)

		var body struct {
			Data models.VerificationTicket `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "vrf_abc", body.Data.Reference)
		assert.True(t, expires.Equal(body.Data.ExpiresAt))
	})

	t.Run("invalid email never reaches the service", func(t *testing.T) {
		rec := post(router, "/auth/email/request", map[string]string{"email": "nope"}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("active code conflicts", func(t *testing.T) {
		svc.EXPECT().RequestPhoneVerification(gomock.Any(), "+15555550100").
			Return(nil, dErrors.New(dErrors.CodeConflict, "an active verification code already exists"))
		rec := post(router, "/auth/phone/request", map[string]string{"phone": "+15555550100"}, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
		body := errorBody(t, rec)
		assert.Equal(t, 401, body.ErrorCode)
		assert.Equal(t, "an active verification code already exists", body.Message)
	})

	t.Run("cooldown", func(t *testing.T) {
		svc.EXPECT().RequestPhoneVerification(gomock.Any(), "+15555550100").
			Return(nil, dErrors.New(dErrors.CodeRateLimited, "too many verification requests, please try again later"))
		rec := post(router, "/auth/phone/request", map[string]string{"phone": "+15555550100"}, nil)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})
}

func TestConfirmVerification(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	router := newRouter(svc)

	rec := post(router, "/auth/phone/confirm", map[string]string{"reference": "vrf_abc", "code": "12ab56"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.EXPECT().ConfirmPhoneVerification(gomock.Any(), "vrf_abc", "123456").
		Return(&models.ConfirmResult{Reference: "vrf_abc", Verified: true}, nil)
	rec = post(router, "/auth/phone/confirm", map[string]string{"reference": "vrf_abc", "code": "123456"}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	svc.EXPECT().ConfirmEmailVerification(gomock.Any(), "vrf_abc", "123456").
		Return(nil, dErrors.New(dErrors.CodeValidation, "invalid verification code"))
	rec = post(router, "/auth/email/confirm", map[string]string{"reference": "vrf_abc", "code": "123456"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid verification code", errorBody(t, rec).Message)
}

func TestRegister(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	router := newRouter(svc)
	tenantID := id.TenantID(uuid.New())
	req := map[string]string{
		"first_name":      "Ada",
		"last_name":       "Obi",
		"email":           "ada@example.com",
		"phone":           "+15555550100",
		"password":        "correct horse",
		"email_reference": "vrf_e",
		"phone_reference": "vrf_p",
	}

	t.Run("tenant header is required", func(t *testing.T) {
		rec := post(router, "/auth/register", req, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "X-Tenant-ID header must be a tenant id", errorBody(t, rec).Message)

		rec = post(router, "/auth/register", req, map[string]string{TenantHeader: "acme"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("short password", func(t *testing.T) {
		short := map[string]string{}
		for k, v := range req {
			short[k] = v
		}
		short["password"] = "abc"
		rec := post(router, "/auth/register", short, map[string]string{TenantHeader: tenantID.String()})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("created", func(t *testing.T) {
		svc.EXPECT().Register(gomock.Any(), tenantID, gomock.Any()).
			DoAndReturn(func(_ any, _ id.TenantID, r *models.RegisterRequest) (*models.AuthResult, error) {
				assert.Equal(t, "vrf_p", r.PhoneReference)
				return &models.AuthResult{AccessToken: "tok", TokenType: "Bearer", ExpiresIn: 900, User: &models.User{Email: r.Email}}, nil
			})
		rec := post(router, "/auth/register", req, map[string]string{TenantHeader: tenantID.String()})
		require.Equal(t, http.StatusCreated, rec.Code)

		var body struct {
			Data struct {
				AccessToken string `json:"access_token"`
				User        struct {
					Email        string `json:"email"`
					PasswordHash string `json:"password_hash"`
				} `json:"user"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "tok", body.Data.AccessToken)
		assert.Equal(t, "ada@example.com", body.Data.User.Email)
		assert.Empty(t, body.Data.User.PasswordHash)
	})

	t.Run("inactive tenant", func(t *testing.T) {
		svc.EXPECT().Register(gomock.Any(), tenantID, gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeForbidden, "tenant is inactive"))
		rec := post(router, "/auth/register", req, map[string]string{TenantHeader: tenantID.String()})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	router := newRouter(svc)

	svc.EXPECT().Login(gomock.Any(), "a@b.com", "pw").
		Return(nil, dErrors.New(dErrors.CodeAuthentication, "invalid email or password"))
	rec := post(router, "/auth/login", map[string]string{"email": "a@b.com", "password": "pw"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	svc.EXPECT().RequestLoginOTP(gomock.Any(), "+15555550100").
		Return(&models.VerificationTicket{Reference: "vrf_l", Type: vmodels.TypePhone}, nil)
	rec = post(router, "/auth/otp/request", map[string]string{"phone": "+15555550100"}, nil)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	svc.EXPECT().VerifyLoginOTP(gomock.Any(), "vrf_l", "654321").
		Return(&models.AuthResult{AccessToken: "tok", TokenType: "Bearer"}, nil)
	rec = post(router, "/auth/otp/verify", map[string]string{"reference": "vrf_l", "code": "654321"}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
