package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"voltid/internal/kyc/models"
	id "voltid/pkg/domain"
	"voltid/pkg/platform/dberr"
	"voltid/pkg/platform/sentinel"
	"voltid/pkg/platform/tx"
)

type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByUserID(ctx context.Context, userID id.UserID) (*models.UserKYC, error) {
	return s.findOne(ctx, "find kyc by user", `WHERE user_id = $1`, userID)
}

// LockByUserID loads the record with FOR UPDATE. Callers must be inside a transaction.
func (s *PostgresStore) LockByUserID(ctx context.Context, userID id.UserID) (*models.UserKYC, error) {
	return s.findOne(ctx, "lock kyc by user", `WHERE user_id = $1 FOR UPDATE`, userID)
}

func (s *PostgresStore) findOne(ctx context.Context, op, where string, userID id.UserID) (*models.UserKYC, error) {
	var r row
	err := sqlx.GetContext(ctx, tx.Exec(ctx, s.db), &r, `SELECT `+columns+` FROM user_kyc `+where, uuid.UUID(userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, dberr.Map(err))
	}
	k, err := r.toModel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return k, nil
}

func (s *PostgresStore) Create(ctx context.Context, k *models.UserKYC) error {
	r, err := toRow(k)
	if err != nil {
		return fmt.Errorf("create kyc: %w", err)
	}
	query := `
		INSERT INTO user_kyc (` + columns + `)
		VALUES (:id, :user_id, :current_stage, :status, :failure_reason, :stage_metadata, :last_updated, :created_at)
	`
	if _, err := sqlx.NamedExecContext(ctx, tx.Exec(ctx, s.db), query, r); err != nil {
		if dberr.IsUniqueViolation(err) {
			return fmt.Errorf("create kyc: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create kyc: %w", dberr.Map(err))
	}
	return nil
}

// UpdateStage writes k only while the stored stage still equals expected.
func (s *PostgresStore) UpdateStage(ctx context.Context, k *models.UserKYC, expected models.Stage) error {
	r, err := toRow(k)
	if err != nil {
		return fmt.Errorf("update kyc stage: %w", err)
	}
	res, err := tx.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE user_kyc
		SET current_stage = $3, status = $4, failure_reason = $5, stage_metadata = $6, last_updated = $7
		WHERE user_id = $1 AND current_stage = $2`,
		r.UserID, string(expected), r.CurrentStage, r.Status, r.FailureReason, string(r.StageMetadata), r.LastUpdated)
	if err != nil {
		return fmt.Errorf("update kyc stage: %w", dberr.Map(err))
	}
	return requireRow(res, "update kyc stage", sentinel.ErrInvalidState)
}

func (s *PostgresStore) SetFailure(ctx context.Context, userID id.UserID, reason string, now time.Time) error {
	res, err := tx.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE user_kyc SET status = 'FAILED', failure_reason = $2, last_updated = $3
		WHERE user_id = $1 AND status <> 'COMPLETED'`,
		uuid.UUID(userID), reason, now)
	if err != nil {
		return fmt.Errorf("set kyc failure: %w", dberr.Map(err))
	}
	return requireRow(res, "set kyc failure", sentinel.ErrInvalidState)
}

// ResetKYC returns the record to EMAIL_VERIFICATION/PENDING with no evidence.
func (s *PostgresStore) ResetKYC(ctx context.Context, userID id.UserID, now time.Time) error {
	res, err := tx.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE user_kyc
		SET current_stage = $2, status = $3, failure_reason = NULL, stage_metadata = '{}'::jsonb, last_updated = $4
		WHERE user_id = $1`,
		uuid.UUID(userID), string(models.StageEmailVerification), string(models.StatusPending), now)
	if err != nil {
		return fmt.Errorf("reset kyc: %w", dberr.Map(err))
	}
	return requireRow(res, "reset kyc", sentinel.ErrNotFound)
}

// Upsert inserts k or overwrites the user's existing record.
func (s *PostgresStore) Upsert(ctx context.Context, k *models.UserKYC) error {
	r, err := toRow(k)
	if err != nil {
		return fmt.Errorf("upsert kyc: %w", err)
	}
	query := `
		INSERT INTO user_kyc (` + columns + `)
		VALUES (:id, :user_id, :current_stage, :status, :failure_reason, :stage_metadata, :last_updated, :created_at)
		ON CONFLICT (user_id) DO UPDATE SET
			current_stage = EXCLUDED.current_stage,
			status = EXCLUDED.status,
			failure_reason = EXCLUDED.failure_reason,
			stage_metadata = EXCLUDED.stage_metadata,
			last_updated = EXCLUDED.last_updated
	`
	if _, err := sqlx.NamedExecContext(ctx, tx.Exec(ctx, s.db), query, r); err != nil {
		return fmt.Errorf("upsert kyc: %w", dberr.Map(err))
	}
	return nil
}

func requireRow(res sql.Result, op string, sentinelErr error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, dberr.Map(err))
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, sentinelErr)
	}
	return nil
}
