package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"voltid/internal/payment/models"
	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
	"voltid/pkg/platform/httputil"
	"voltid/pkg/platform/middleware/auth"
	"voltid/pkg/platform/middleware/request"
)

type Service interface {
	AddPaymentMethod(ctx context.Context, userID id.UserID, req *models.AddPaymentMethodRequest) (*models.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, userID id.UserID) ([]*models.PaymentMethod, error)
	SetDefault(ctx context.Context, userID id.UserID, methodID id.PaymentMethodID) (*models.PaymentMethod, error)
	Remove(ctx context.Context, userID id.UserID, methodID id.PaymentMethodID) error
}

// Handler serves the payment method routes. Mount it behind auth.RequireAuth.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/payment-methods", h.handleList)
	r.Post("/payment-methods", h.handleAdd)
	r.Post("/payment-methods/{id}/default", h.handleSetDefault)
	r.Delete("/payment-methods/{id}", h.handleRemove)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	methods, err := h.service.ListPaymentMethods(r.Context(), userID)
	if err != nil {
		h.writeServiceError(r.Context(), w, "failed to list payment methods", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, methods)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	var req models.AddPaymentMethodRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid add payment method request",
			"request_id", request.GetRequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	m, err := h.service.AddPaymentMethod(ctx, userID, &req)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to add payment method", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) handleSetDefault(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	methodID, ok := h.methodIDParam(w, r)
	if !ok {
		return
	}
	m, err := h.service.SetDefault(r.Context(), userID, methodID)
	if err != nil {
		h.writeServiceError(r.Context(), w, "failed to set default payment method", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	methodID, ok := h.methodIDParam(w, r)
	if !ok {
		return
	}
	if err := h.service.Remove(r.Context(), userID, methodID); err != nil {
		h.writeServiceError(r.Context(), w, "failed to remove payment method", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (id.UserID, bool) {
	userID := auth.GetUserID(r.Context())
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.UserID{}, false
	}
	return userID, true
}

func (h *Handler) methodIDParam(w http.ResponseWriter, r *http.Request) (id.PaymentMethodID, bool) {
	methodID, err := id.ParsePaymentMethodID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.PaymentMethodID{}, false
	}
	return methodID, true
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.CodeOf(err).IsInternal() {
		h.logger.ErrorContext(ctx, msg, "request_id", request.GetRequestID(ctx), "error", err)
	} else {
		h.logger.WarnContext(ctx, msg, "request_id", request.GetRequestID(ctx), "error", err)
	}
	httputil.WriteError(w, err)
}
