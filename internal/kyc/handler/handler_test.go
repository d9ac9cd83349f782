package handler

import (
	"bytes"
	"encoding/json"
	"errors"
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

	"voltid/internal/kyc/handler/mocks"
	"voltid/internal/kyc/models"
	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
	"voltid/pkg/platform/httputil"
	"voltid/pkg/requestcontext"
)

var userID = id.UserID(uuid.New())

// newRouter stands in for RequireAuth by placing userID on every request
// unless anonymous is set.
func newRouter(svc Service, anonymous bool) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !anonymous {
				req = req.WithContext(requestcontext.WithUserID(req.Context(), userID))
			}
			next.ServeHTTP(w, req)
		})
	})
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r
}

func do(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	var body httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestGetKYC(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	router := newRouter(svc, false)

	svc.EXPECT().CheckOrInitializeKYC(gomock.Any(), userID).Return(&models.UserKYC{
		UserID:       userID,
		CurrentStage: models.StageFaceUpload,
		Status:       models.StatusPending,
	}, nil)

	rec := do(router, http.MethodGet, "/kyc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data struct {
			UserID       string `json:"user_id"`
			CurrentStage string `json:"current_stage"`
			Status       string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, userID.String(), body.Data.UserID)
	assert.Equal(t, "FACE_UPLOAD", body.Data.CurrentStage)
	assert.Equal(t, "PENDING", body.Data.Status)

	svc.EXPECT().CheckOrInitializeKYC(gomock.Any(), userID).
		Return(nil, dErrors.New(dErrors.CodeRegistration, "KYC is already completed"))
	rec = do(router, http.MethodGet, "/kyc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 800, decodeError(t, rec).ErrorCode)
}

func TestRequiresUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := newRouter(mocks.NewMockService(ctrl), true)

	rec := do(router, http.MethodGet, "/kyc", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUploadURLs(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	router := newRouter(svc, false)

	grant := &models.UploadGrant{URL: "https://media/x", Key: "kyc-documents/u/license/1", ContentType: "image/jpeg", ExpiresAt: time.Now()}
	svc.EXPECT().GetSecureUploadURL(gomock.Any(), userID).Return(grant, nil)
	rec := do(router, http.MethodPost, "/kyc/license/upload-url", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data models.UploadGrant `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, grant.Key, body.Data.Key)
	assert.Equal(t, grant.URL, body.Data.URL)

	svc.EXPECT().GetVehicleImageUploadURL(gomock.Any(), userID, models.VehicleScooter).Return(grant, nil)
	rec = do(router, http.MethodPost, "/kyc/vehicle/upload-url", map[string]string{"vehicle_type": "SCOOTER"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodPost, "/kyc/vehicle/upload-url", map[string]string{"vehicle_type": "TRAIN"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "vehicle_type must be one of: CAR MOTORCYCLE SCOOTER VAN", decodeError(t, rec).Message)
}

func TestSubmitLicense(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	router := newRouter(svc, false)

	t.Run("missing key", func(t *testing.T) {
		rec := do(router, http.MethodPost, "/kyc/license/submit", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("document errors are unprocessable", func(t *testing.T) {
		svc.EXPECT().SubmitLicense(gomock.Any(), userID, "k").
			Return(nil, dErrors.New(dErrors.CodeDocumentDataMismatch, "name on the document does not match your profile"))
		rec := do(router, http.MethodPost, "/kyc/license/submit", map[string]string{"key": "k"})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, 803, body.ErrorCode)
		assert.Equal(t, "document_data_mismatch", body.Error)
	})

	t.Run("internal errors do not leak", func(t *testing.T) {
		svc.EXPECT().SubmitLicense(gomock.Any(), userID, "k").Return(nil, errors.New("pq: connection reset"))
		rec := do(router, http.MethodPost, "/kyc/license/submit", map[string]string{"key": "k"})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, decodeError(t, rec).Message, "pq")
	})

	t.Run("accepted", func(t *testing.T) {
		svc.EXPECT().SubmitLicense(gomock.Any(), userID, "k").
			Return(&models.UserKYC{CurrentStage: models.StageFaceComparison, Status: models.StatusInProgress}, nil)
		rec := do(router, http.MethodPost, "/kyc/license/submit", map[string]string{"key": "k"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestFaceVehicleAndReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	router := newRouter(svc, false)
	ok := &models.UserKYC{UserID: userID}

	svc.EXPECT().SubmitFace(gomock.Any(), userID, "f").Return(ok, nil)
	assert.Equal(t, http.StatusOK, do(router, http.MethodPost, "/kyc/face/submit", map[string]string{"key": "f"}).Code)

	svc.EXPECT().CompareFace(gomock.Any(), userID).
		Return(nil, dErrors.New(dErrors.CodeKYCStageInvalid, "kyc is at stage FACE_UPLOAD, not FACE_COMPARISON"))
	assert.Equal(t, http.StatusConflict, do(router, http.MethodPost, "/kyc/face/compare", nil).Code)

	svc.EXPECT().SubmitVehicleImage(gomock.Any(), userID, "v", models.VehicleVan).Return(ok, nil)
	rec := do(router, http.MethodPost, "/kyc/vehicle/submit", map[string]string{"key": "v", "vehicle_type": "VAN"})
	assert.Equal(t, http.StatusOK, rec.Code)

	svc.EXPECT().Reset(gomock.Any(), userID).Return(ok, nil)
	assert.Equal(t, http.StatusOK, do(router, http.MethodPost, "/kyc/reset", nil).Code)
}
