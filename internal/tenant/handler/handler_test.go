package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"voltid/internal/tenant/handler/mocks"
	"voltid/internal/tenant/service"
	tenantstore "voltid/internal/tenant/store/tenant"
	dErrors "voltid/pkg/domain-errors"
	"voltid/pkg/platform/middleware/admin"
)

const adminToken = "secret-token"

func newTenantRouter(t *testing.T, svc Service) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	r.Use(admin.RequireAdminToken(adminToken, logger))
	New(svc, logger).Register(r)
	return r
}

func do(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(admin.HeaderAdminToken, adminToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAdminTokenRequired(t *testing.T) {
	router := newTenantRouter(t, service.New(tenantstore.NewInMemory(), nil))
	req := httptest.NewRequest(http.MethodGet, "/admin/tenants/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateAndGetTenant(t *testing.T) {
	router := newTenantRouter(t, service.New(tenantstore.NewInMemory(), nil))

	rec := do(router, http.MethodPost, "/admin/tenants", map[string]string{"name": "Acme"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data struct {
			TenantID uuid.UUID `json:"tenant_id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	require.NotEqual(t, uuid.Nil, created.Data.TenantID)

	rec = do(router, http.MethodGet, "/admin/tenants/"+created.Data.TenantID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var details struct {
		Data struct {
			ID        uuid.UUID `json:"id"`
			Name      string    `json:"name"`
			Status    string    `json:"status"`
			UserCount int       `json:"user_count"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&details))
	assert.Equal(t, created.Data.TenantID, details.Data.ID)
	assert.Equal(t, "Acme", details.Data.Name)
	assert.Equal(t, "active", details.Data.Status)

	rec = do(router, http.MethodPost, "/admin/tenants", map[string]string{"name": "acme"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(router, http.MethodPost, "/admin/tenants/"+created.Data.TenantID.String()+"/deactivate", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRejectsBadInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	router := newTenantRouter(t, svc)

	rec := do(router, http.MethodPost, "/admin/tenants", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodGet, "/admin/tenants/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.EXPECT().GetTenant(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "tenant not found"))
	rec = do(router, http.MethodGet, "/admin/tenants/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
