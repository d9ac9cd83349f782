package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	audit "voltid/pkg/platform/audit"
	"voltid/pkg/platform/dberr"
	"voltid/pkg/platform/tx"
)

// Store implements audit.Store using the transactional outbox pattern.
// Events are written to the outbox table, on the caller's transaction when
// ctx carries one, and relayed to Kafka by the outbox worker.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db, now: time.Now}
}

type outboxRow struct {
	ID            uuid.UUID `db:"id"`
	AggregateType string    `db:"aggregate_type"`
	AggregateID   string    `db:"aggregate_id"`
	EventType     string    `db:"event_type"`
	Payload       []byte    `db:"payload"`
	CreatedAt     time.Time `db:"created_at"`
}

// Append writes an audit event to the outbox table for Kafka publishing.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	entry, err := audit.NewOutboxEntry(event, s.now())
	if err != nil {
		return err
	}
	query := `
		INSERT INTO outbox (id, aggregate_type, aggregate_id, event_type, payload, created_at)
		VALUES (:id, :aggregate_type, :aggregate_id, :event_type, :payload, :created_at)
	`
	row := outboxRow{
		ID:            entry.ID,
		AggregateType: entry.AggregateType,
		AggregateID:   entry.AggregateID,
		EventType:     entry.EventType,
		Payload:       entry.Payload,
		CreatedAt:     entry.CreatedAt,
	}
	if _, err := sqlx.NamedExecContext(ctx, tx.Exec(ctx, s.db), query, row); err != nil {
		return fmt.Errorf("insert outbox entry: %w", dberr.Map(err))
	}
	return nil
}

// Pending locks up to limit unpublished entries, oldest first. Rows locked by
// another relay are skipped.
func (s *Store) Pending(ctx context.Context, limit int) ([]audit.OutboxEntry, error) {
	query := `
		SELECT id, aggregate_type, aggregate_id, event_type, payload, created_at
		FROM outbox
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`
	var rows []outboxRow
	if err := sqlx.SelectContext(ctx, tx.Exec(ctx, s.db), &rows, query, limit); err != nil {
		return nil, fmt.Errorf("select pending outbox entries: %w", dberr.Map(err))
	}
	out := make([]audit.OutboxEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, audit.OutboxEntry{
			ID:            r.ID,
			AggregateType: r.AggregateType,
			AggregateID:   r.AggregateID,
			EventType:     r.EventType,
			Payload:       r.Payload,
			CreatedAt:     r.CreatedAt,
		})
	}
	return out, nil
}

func (s *Store) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]string, len(ids))
	for i, entryID := range ids {
		raw[i] = entryID.String()
	}
	_, err := tx.Exec(ctx, s.db).ExecContext(ctx,
		`UPDATE outbox SET published_at = $1 WHERE id = ANY($2::uuid[])`, at, pq.Array(raw))
	if err != nil {
		return fmt.Errorf("mark outbox entries published: %w", dberr.Map(err))
	}
	return nil
}

// DeletePublished removes relayed entries published before cutoff.
func (s *Store) DeletePublished(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := tx.Exec(ctx, s.db).ExecContext(ctx,
		`DELETE FROM outbox WHERE published_at IS NOT NULL AND published_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete published outbox entries: %w", dberr.Map(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete published outbox entries: %w", dberr.Map(err))
	}
	return int(n), nil
}
