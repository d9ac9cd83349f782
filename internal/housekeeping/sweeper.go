// Package housekeeping schedules the periodic cleanup of expired
// verification records and relayed audit outbox rows.
package housekeeping

//go:generate mockgen -source=sweeper.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type VerificationSweeper interface {
	DeleteExpired(ctx context.Context, cutoff time.Time) (int, error)
}

type OutboxCleaner interface {
	DeletePublished(ctx context.Context, cutoff time.Time) (int, error)
}

const (
	defaultRetention = 24 * time.Hour
	sweepTimeout     = time.Minute
)

type Sweeper struct {
	verifications VerificationSweeper
	outbox        OutboxCleaner
	retention     time.Duration
	now           func() time.Time
	logger        *slog.Logger
	cron          *cron.Cron
}

type Option func(*Sweeper)

func WithOutbox(o OutboxCleaner) Option {
	return func(s *Sweeper) {
		s.outbox = o
	}
}

// WithRetention sets how long resolved rows are kept past their expiry.
func WithRetention(d time.Duration) Option {
	return func(s *Sweeper) {
		if d > 0 {
			s.retention = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Sweeper) {
		s.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Sweeper) {
		s.now = now
	}
}

func New(verifications VerificationSweeper, opts ...Option) *Sweeper {
	s := &Sweeper{
		verifications: verifications,
		retention:     defaultRetention,
		now:           time.Now,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SweepOnce runs every cleanup step. A failing step does not stop the
// others; their errors are joined.
func (s *Sweeper) SweepOnce(ctx context.Context) error {
	cutoff := s.now().Add(-s.retention)
	var errs []error

	n, err := s.verifications.DeleteExpired(ctx, cutoff)
	if err != nil {
		errs = append(errs, fmt.Errorf("sweep verifications: %w", err))
	} else if n > 0 {
		s.logger.InfoContext(ctx, "swept expired verifications", "count", n, "cutoff", cutoff)
	}

	if s.outbox != nil {
		n, err := s.outbox.DeletePublished(ctx, cutoff)
		if err != nil {
			errs = append(errs, fmt.Errorf("sweep outbox: %w", err))
		} else if n > 0 {
			s.logger.InfoContext(ctx, "swept published outbox entries", "count", n, "cutoff", cutoff)
		}
	}
	return errors.Join(errs...)
}

// Start schedules SweepOnce on schedule (standard cron syntax or descriptors
// such as "@every 10m"). It returns once the schedule is registered.
func (s *Sweeper) Start(schedule string) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(schedule, s.run); err != nil {
		return fmt.Errorf("schedule sweep %q: %w", schedule, err)
	}
	s.cron = c
	c.Start()
	s.logger.Info("housekeeping sweep scheduled", "schedule", schedule)
	return nil
}

// Stop halts the schedule and waits for a running sweep, up to ctx.
func (s *Sweeper) Stop(ctx context.Context) {
	if s.cron == nil {
		return
	}
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("housekeeping sweep still running at shutdown")
	}
}

func (s *Sweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()
	if err := s.SweepOnce(ctx); err != nil {
		s.logger.ErrorContext(ctx, "housekeeping sweep failed", "error", err)
	}
}
