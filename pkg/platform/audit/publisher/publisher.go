// Package publisher stamps audit events with request metadata and writes
// them to an audit store.
//
// Compliance events are fail-closed: when they cannot be persisted Emit
// returns an error and the calling operation must fail. Security and
// operations events are best-effort; persistence failures are logged and
// swallowed.
package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	audit "voltid/pkg/platform/audit"
	"voltid/pkg/requestcontext"
)

type Publisher struct {
	store  audit.Store
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Publisher) {
		p.now = now
	}
}

func New(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Action == "" {
		return fmt.Errorf("audit event requires Action")
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now()
	}
	event.Category = audit.AuditEvent(event.Action).Category()
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.IP == "" {
		event.IP = requestcontext.ClientIP(ctx)
	}
	if event.Device == "" {
		event.Device = requestcontext.Device(ctx)
	}
	if event.Subject == "" && !event.UserID.IsNil() {
		event.Subject = event.UserID.String()
	}

	err := p.store.Append(ctx, event)
	if err == nil {
		return nil
	}
	if event.Category == audit.CategoryCompliance {
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "compliance audit failed",
				"action", event.Action,
				"user_id", event.UserID,
				"error", err,
			)
		}
		return fmt.Errorf("compliance audit persistence failed: %w", err)
	}
	if p.logger != nil {
		p.logger.WarnContext(ctx, "audit event dropped",
			"action", event.Action,
			"error", err,
		)
	}
	return nil
}
