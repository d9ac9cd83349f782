package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"voltid/internal/auth/models"
	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
	"voltid/pkg/platform/httputil"
	"voltid/pkg/platform/middleware/request"
)

// TenantHeader names the tenant a registration belongs to.
const TenantHeader = "X-Tenant-ID"

type Service interface {
	RequestEmailVerification(ctx context.Context, email string) (*models.VerificationTicket, error)
	ConfirmEmailVerification(ctx context.Context, reference, code string) (*models.ConfirmResult, error)
	RequestPhoneVerification(ctx context.Context, phone string) (*models.VerificationTicket, error)
	ConfirmPhoneVerification(ctx context.Context, reference, code string) (*models.ConfirmResult, error)
	Register(ctx context.Context, tenantID id.TenantID, req *models.RegisterRequest) (*models.AuthResult, error)
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	RequestLoginOTP(ctx context.Context, phone string) (*models.VerificationTicket, error)
	VerifyLoginOTP(ctx context.Context, reference, code string) (*models.AuthResult, error)
}

// Handler serves the public sign-up and login routes.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/email/request", h.handleRequestEmail)
	r.Post("/auth/email/confirm", h.handleConfirmEmail)
	r.Post("/auth/phone/request", h.handleRequestPhone)
	r.Post("/auth/phone/confirm", h.handleConfirmPhone)
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/otp/request", h.handleRequestLoginOTP)
	r.Post("/auth/otp/verify", h.handleVerifyLoginOTP)
}

func (h *Handler) handleRequestEmail(w http.ResponseWriter, r *http.Request) {
	var req models.EmailVerificationRequest
	if !h.decode(w, r, &req) {
		return
	}
	ticket, err := h.service.RequestEmailVerification(r.Context(), req.Email)
	h.respond(w, r, http.StatusAccepted, "email verification request failed", ticket, err)
}

func (h *Handler) handleConfirmEmail(w http.ResponseWriter, r *http.Request) {
	var req models.ConfirmVerificationRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.service.ConfirmEmailVerification(r.Context(), req.Reference, req.Code)
	h.respond(w, r, http.StatusOK, "email confirmation failed", res, err)
}

func (h *Handler) handleRequestPhone(w http.ResponseWriter, r *http.Request) {
	var req models.PhoneVerificationRequest
	if !h.decode(w, r, &req) {
		return
	}
	ticket, err := h.service.RequestPhoneVerification(r.Context(), req.Phone)
	h.respond(w, r, http.StatusAccepted, "phone verification request failed", ticket, err)
}

func (h *Handler) handleConfirmPhone(w http.ResponseWriter, r *http.Request) {
	var req models.ConfirmVerificationRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.service.ConfirmPhoneVerification(r.Context(), req.Reference, req.Code)
	h.respond(w, r, http.StatusOK, "phone confirmation failed", res, err)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	tenantID, err := id.ParseTenantID(strings.TrimSpace(r.Header.Get(TenantHeader)))
	if err != nil || tenantID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, TenantHeader+" header must be a tenant id"))
		return
	}
	var req models.RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.service.Register(r.Context(), tenantID, &req)
	h.respond(w, r, http.StatusCreated, "registration failed", res, err)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.service.Login(r.Context(), req.Email, req.Password)
	h.respond(w, r, http.StatusOK, "login failed", res, err)
}

func (h *Handler) handleRequestLoginOTP(w http.ResponseWriter, r *http.Request) {
	var req models.LoginOTPRequest
	if !h.decode(w, r, &req) {
		return
	}
	ticket, err := h.service.RequestLoginOTP(r.Context(), req.Phone)
	h.respond(w, r, http.StatusAccepted, "login code request failed", ticket, err)
}

func (h *Handler) handleVerifyLoginOTP(w http.ResponseWriter, r *http.Request) {
	var req models.ConfirmVerificationRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.service.VerifyLoginOTP(r.Context(), req.Reference, req.Code)
	h.respond(w, r, http.StatusOK, "login code verification failed", res, err)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httputil.DecodeJSON(r, dst); err != nil {
		h.logger.WarnContext(r.Context(), "invalid auth request",
			"request_id", request.GetRequestID(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
		httputil.WriteError(w, err)
		return false
	}
	return true
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, msg string, body any, err error) {
	if err != nil {
		ctx := r.Context()
		if dErrors.CodeOf(err).IsInternal() {
			h.logger.ErrorContext(ctx, msg, "request_id", request.GetRequestID(ctx), "error", err)
		} else {
			h.logger.WarnContext(ctx, msg, "request_id", request.GetRequestID(ctx), "error", err)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, status, body)
}
