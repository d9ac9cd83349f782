package tx

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	dErrors "voltid/pkg/domain-errors"
	"voltid/pkg/platform/dberr"
)

// Runner is the transactional boundary services depend on. fn receives a
// context carrying the transaction; stores pick it up through Exec.
type Runner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const defaultTxTimeout = 5 * time.Second

// Manager runs functions inside Postgres transactions.
type Manager struct {
	db        *sqlx.DB
	isolation sql.IsolationLevel
	timeout   time.Duration
	logger    *slog.Logger
}

type Option func(*Manager)

func WithTimeout(d time.Duration) Option {
	return func(m *Manager) {
		m.timeout = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

func NewManager(db *sqlx.DB, opts ...Option) *Manager {
	m := &Manager{db: db, isolation: sql.LevelDefault, timeout: defaultTxTimeout}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithIsolation returns a copy of the manager that begins transactions at level.
func (m *Manager) WithIsolation(level sql.IsolationLevel) *Manager {
	cp := *m
	cp.isolation = level
	return &cp
}

// RunInTx begins a transaction, runs fn, and commits when fn returns nil.
// Every other path, panics included, rolls back. When ctx already carries a
// transaction fn joins it and the outermost caller decides the outcome.
func (m *Manager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := From(ctx); ok {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	tx, err := m.db.BeginTxx(ctx, &sql.TxOptions{Isolation: m.isolation})
	if err != nil {
		return dberr.Transaction(err, "failed to begin transaction")
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone && m.logger != nil {
			m.logger.WarnContext(ctx, "transaction rollback failed", "error", rbErr)
		}
	}()

	if err := fn(WithTx(ctx, tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return dberr.Transaction(err, "failed to commit transaction")
	}
	return nil
}
