// Package worker relays outbox entries to the audit topic.
package worker

//go:generate mockgen -source=worker.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	audit "voltid/pkg/platform/audit"
	"voltid/pkg/platform/tx"
)

type OutboxStore interface {
	Pending(ctx context.Context, limit int) ([]audit.OutboxEntry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

type Producer interface {
	Publish(ctx context.Context, entries []audit.OutboxEntry) error
}

// Worker polls the outbox and publishes pending entries. A batch is marked
// published only after the producer acknowledged every record, so a crash
// between the two steps re-sends rather than loses events.
type Worker struct {
	store    OutboxStore
	producer Producer
	tx       tx.Runner
	interval time.Duration
	batch    int
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Worker)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batch = n
		}
	}
}

func NewWorker(store OutboxStore, producer Producer, runner tx.Runner, opts ...Option) *Worker {
	w := &Worker{
		store:    store,
		producer: producer,
		tx:       runner,
		interval: 2 * time.Second,
		batch:    100,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run relays until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := w.RelayOnce(ctx); err != nil && w.logger != nil {
				w.logger.WarnContext(ctx, "outbox relay failed", "error", err)
			}
		}
	}
}

// RelayOnce publishes one batch and returns how many entries it relayed.
func (w *Worker) RelayOnce(ctx context.Context) (int, error) {
	relayed := 0
	err := w.tx.RunInTx(ctx, func(ctx context.Context) error {
		entries, err := w.store.Pending(ctx, w.batch)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		if err := w.producer.Publish(ctx, entries); err != nil {
			return fmt.Errorf("publish outbox batch: %w", err)
		}
		ids := make([]uuid.UUID, len(entries))
		for i, e := range entries {
			ids[i] = e.ID
		}
		if err := w.store.MarkPublished(ctx, ids, w.now()); err != nil {
			return err
		}
		relayed = len(entries)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return relayed, nil
}
