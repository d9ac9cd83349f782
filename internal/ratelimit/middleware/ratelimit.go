// Package middleware rate limits HTTP requests by client IP.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"voltid/internal/ratelimit/models"
	"voltid/pkg/platform/httputil"
	"voltid/pkg/requestcontext"
)

// Limiter is satisfied by service.Limiter.
type Limiter interface {
	Hit(ctx context.Context, subject string) (*models.Result, error)
}

type Middleware struct {
	limiter  Limiter
	logger   *slog.Logger
	disabled bool
}

type Option func(*Middleware)

// WithDisabled turns the middleware into a pass-through (local demos, tests).
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func New(limiter Limiter, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{limiter: limiter, logger: logger}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled && logger != nil {
		logger.Info("rate limiting disabled")
	}
	return m
}

// ByIP limits requests per client IP. Client metadata middleware must run first.
func (m *Middleware) ByIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			next.ServeHTTP(w, r)
			return
		}
		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)
		if ip == "" {
			ip = "unknown"
		}
		result, err := m.limiter.Hit(ctx, ip)
		addRateLimitHeaders(w, result)
		if err != nil {
			if result != nil {
				w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter(time.Now())))
			}
			if m.logger != nil {
				m.logger.WarnContext(ctx, "rate limit exceeded", "path", r.URL.Path,
					"request_id", requestcontext.RequestID(ctx))
			}
			httputil.WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.Result) {
	if result == nil {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	if !result.ResetAt.IsZero() {
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
	}
}
