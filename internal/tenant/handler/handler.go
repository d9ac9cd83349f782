package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"voltid/internal/tenant/models"
	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
	"voltid/pkg/platform/httputil"
	"voltid/pkg/platform/middleware/request"
)

type Service interface {
	CreateTenant(ctx context.Context, name string) (*models.Tenant, error)
	GetTenant(ctx context.Context, tenantID id.TenantID) (*models.TenantDetails, error)
	DeactivateTenant(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
	ReactivateTenant(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
}

// Handler serves the operator routes for tenants. It expects to be mounted
// behind the admin token middleware.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/tenants", h.handleCreateTenant)
	r.Get("/admin/tenants/{id}", h.handleGetTenant)
	r.Post("/admin/tenants/{id}/deactivate", h.handleDeactivateTenant)
	r.Post("/admin/tenants/{id}/reactivate", h.handleReactivateTenant)
}

type createTenantResponse struct {
	TenantID string `json:"tenant_id"`
	Name     string `json:"name"`
}

func (h *Handler) handleCreateTenant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.CreateTenantRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid create tenant request",
			"request_id", request.GetRequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	tenant, err := h.service.CreateTenant(ctx, req.Name)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to create tenant", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, createTenantResponse{
		TenantID: tenant.ID.String(),
		Name:     tenant.Name,
	})
}

func (h *Handler) handleGetTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantIDParam(w, r)
	if !ok {
		return
	}
	details, err := h.service.GetTenant(r.Context(), tenantID)
	if err != nil {
		h.writeServiceError(r.Context(), w, "failed to get tenant", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, details)
}

func (h *Handler) handleDeactivateTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantIDParam(w, r)
	if !ok {
		return
	}
	tenant, err := h.service.DeactivateTenant(r.Context(), tenantID)
	if err != nil {
		h.writeServiceError(r.Context(), w, "failed to deactivate tenant", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tenant)
}

func (h *Handler) handleReactivateTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantIDParam(w, r)
	if !ok {
		return
	}
	tenant, err := h.service.ReactivateTenant(r.Context(), tenantID)
	if err != nil {
		h.writeServiceError(r.Context(), w, "failed to reactivate tenant", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tenant)
}

func (h *Handler) tenantIDParam(w http.ResponseWriter, r *http.Request) (id.TenantID, bool) {
	tenantID, err := id.ParseTenantID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid tenant id"))
		return id.TenantID{}, false
	}
	return tenantID, true
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.CodeOf(err).IsInternal() {
		h.logger.ErrorContext(ctx, msg, "request_id", request.GetRequestID(ctx), "error", err)
	} else {
		h.logger.WarnContext(ctx, msg, "request_id", request.GetRequestID(ctx), "error", err)
	}
	httputil.WriteError(w, err)
}
