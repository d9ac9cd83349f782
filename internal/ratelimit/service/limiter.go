// Package service applies named rate limit policies on top of a counter store.
package service

import (
	"context"
	"log/slog"
	"time"

	"voltid/internal/ratelimit/metrics"
	"voltid/internal/ratelimit/models"
	dErrors "voltid/pkg/domain-errors"
)

// CounterStore is a keyed sliding-window counter. The in-memory and Redis
// stores in store/counter both satisfy it.
type CounterStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error)
	Reset(ctx context.Context, key string) error
	Count(ctx context.Context, key string, window time.Duration) (int, error)
}

// Policy names one limit: at most Limit hits per Window.
type Policy struct {
	Name   string
	Limit  int
	Window time.Duration
}

// Limiter enforces a single Policy. Store failures fail open and are logged.
type Limiter struct {
	store   CounterStore
	policy  Policy
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Limiter)

func WithLogger(logger *slog.Logger) Option {
	return func(l *Limiter) {
		l.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Limiter) {
		l.metrics = m
	}
}

func New(store CounterStore, policy Policy, opts ...Option) *Limiter {
	l := &Limiter{store: store, policy: policy}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Limiter) key(subject string) string {
	return models.Key("rl", l.policy.Name, subject)
}

// Hit records one attempt for subject and returns CodeRateLimited when the
// policy is exhausted.
func (l *Limiter) Hit(ctx context.Context, subject string) (*models.Result, error) {
	res, err := l.store.Allow(ctx, l.key(subject), l.policy.Limit, l.policy.Window)
	if err != nil {
		l.metrics.IncStoreErrors()
		if l.logger != nil {
			l.logger.WarnContext(ctx, "rate limit store unavailable, allowing request",
				"policy", l.policy.Name, "error", err)
		}
		return &models.Result{Allowed: true, Limit: l.policy.Limit, Remaining: l.policy.Limit}, nil
	}
	if !res.Allowed {
		l.metrics.IncRejected(l.policy.Name)
		return res, dErrors.New(dErrors.CodeRateLimited, "too many requests, please try again later")
	}
	return res, nil
}

// Exceeded reports whether subject has used up the policy without recording a hit.
func (l *Limiter) Exceeded(ctx context.Context, subject string) (bool, error) {
	n, err := l.store.Count(ctx, l.key(subject), l.policy.Window)
	if err != nil {
		l.metrics.IncStoreErrors()
		return false, nil
	}
	return n >= l.policy.Limit, nil
}

// Reset clears the counter for subject, e.g. after a successful login.
func (l *Limiter) Reset(ctx context.Context, subject string) {
	if err := l.store.Reset(ctx, l.key(subject)); err != nil && l.logger != nil {
		l.logger.WarnContext(ctx, "rate limit reset failed", "policy", l.policy.Name, "error", err)
	}
}
