package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"voltid/internal/ratelimit/service"
	"voltid/internal/ratelimit/store/counter"
	"voltid/pkg/requestcontext"
)

func TestByIP(t *testing.T) {
	limiter := service.New(counter.NewInMemory(), service.Policy{Name: "auth_ip", Limit: 1, Window: time.Minute})
	mw := New(limiter, nil)
	h := mw.ByIP(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req = req.WithContext(requestcontext.WithClientMetadata(req.Context(), "10.0.0.1", "", ""))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	second := send()
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
}

func TestByIPDisabled(t *testing.T) {
	limiter := service.New(counter.NewInMemory(), service.Policy{Name: "auth_ip", Limit: 0, Window: time.Minute})
	h := New(limiter, nil, WithDisabled(true)).ByIP(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
