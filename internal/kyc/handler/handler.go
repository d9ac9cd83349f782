package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"voltid/internal/kyc/models"
	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
	"voltid/pkg/platform/httputil"
	"voltid/pkg/platform/middleware/auth"
	"voltid/pkg/platform/middleware/request"
)

type Service interface {
	CheckOrInitializeKYC(ctx context.Context, userID id.UserID) (*models.UserKYC, error)
	GetSecureUploadURL(ctx context.Context, userID id.UserID) (*models.UploadGrant, error)
	GetFaceUploadURL(ctx context.Context, userID id.UserID) (*models.UploadGrant, error)
	GetVehicleImageUploadURL(ctx context.Context, userID id.UserID, vehicleType models.VehicleType) (*models.UploadGrant, error)
	SubmitLicense(ctx context.Context, userID id.UserID, key string) (*models.UserKYC, error)
	SubmitFace(ctx context.Context, userID id.UserID, key string) (*models.UserKYC, error)
	CompareFace(ctx context.Context, userID id.UserID) (*models.UserKYC, error)
	SubmitVehicleImage(ctx context.Context, userID id.UserID, key string, vehicleType models.VehicleType) (*models.UserKYC, error)
	Reset(ctx context.Context, userID id.UserID) (*models.UserKYC, error)
}

// Handler serves the onboarding routes. Every route needs an authenticated
// user; mount it behind auth.RequireAuth.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/kyc", h.handleGetKYC)
	r.Post("/kyc/license/upload-url", h.handleLicenseUploadURL)
	r.Post("/kyc/license/submit", h.handleSubmitLicense)
	r.Post("/kyc/face/upload-url", h.handleFaceUploadURL)
	r.Post("/kyc/face/submit", h.handleSubmitFace)
	r.Post("/kyc/face/compare", h.handleCompareFace)
	r.Post("/kyc/vehicle/upload-url", h.handleVehicleUploadURL)
	r.Post("/kyc/vehicle/submit", h.handleSubmitVehicle)
	r.Post("/kyc/reset", h.handleReset)
}

func (h *Handler) handleGetKYC(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	k, err := h.service.CheckOrInitializeKYC(r.Context(), userID)
	h.respond(w, r, "failed to load kyc", k, err)
}

func (h *Handler) handleLicenseUploadURL(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	grant, err := h.service.GetSecureUploadURL(r.Context(), userID)
	h.respond(w, r, "failed to grant license upload", grant, err)
}

func (h *Handler) handleFaceUploadURL(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	grant, err := h.service.GetFaceUploadURL(r.Context(), userID)
	h.respond(w, r, "failed to grant face upload", grant, err)
}

func (h *Handler) handleVehicleUploadURL(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	var req models.UploadURLRequest
	if !h.decode(w, r, &req) {
		return
	}
	grant, err := h.service.GetVehicleImageUploadURL(r.Context(), userID, models.VehicleType(req.VehicleType))
	h.respond(w, r, "failed to grant vehicle upload", grant, err)
}

func (h *Handler) handleSubmitLicense(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	var req models.SubmitRequest
	if !h.decode(w, r, &req) {
		return
	}
	k, err := h.service.SubmitLicense(r.Context(), userID, req.Key)
	h.respond(w, r, "license submission rejected", k, err)
}

func (h *Handler) handleSubmitFace(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	var req models.SubmitRequest
	if !h.decode(w, r, &req) {
		return
	}
	k, err := h.service.SubmitFace(r.Context(), userID, req.Key)
	h.respond(w, r, "face submission rejected", k, err)
}

func (h *Handler) handleCompareFace(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	k, err := h.service.CompareFace(r.Context(), userID)
	h.respond(w, r, "face comparison rejected", k, err)
}

func (h *Handler) handleSubmitVehicle(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	var req models.SubmitVehicleRequest
	if !h.decode(w, r, &req) {
		return
	}
	k, err := h.service.SubmitVehicleImage(r.Context(), userID, req.Key, models.VehicleType(req.VehicleType))
	h.respond(w, r, "vehicle submission rejected", k, err)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	k, err := h.service.Reset(r.Context(), userID)
	h.respond(w, r, "failed to reset kyc", k, err)
}

func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (id.UserID, bool) {
	userID := auth.GetUserID(r.Context())
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.UserID{}, false
	}
	return userID, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httputil.DecodeJSON(r, dst); err != nil {
		h.logger.WarnContext(r.Context(), "invalid kyc request",
			"request_id", request.GetRequestID(r.Context()),
			"error", err,
		)
		httputil.WriteError(w, err)
		return false
	}
	return true
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, msg string, body any, err error) {
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
	httputil.WriteJSON(w, http.StatusOK, body)
}
