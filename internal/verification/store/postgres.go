package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"voltid/internal/verification/models"
	id "voltid/pkg/domain"
	"voltid/pkg/platform/dberr"
	"voltid/pkg/platform/sentinel"
	"voltid/pkg/platform/tx"
)

// PostgresStore persists verifications in PostgreSQL. Every statement runs on
// the transaction carried by ctx when there is one.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, v *models.Verification) error {
	query := `
		INSERT INTO verifications (` + columns + `)
		VALUES (:id, :user_id, :reference, :identifier, :type, :status, :token,
			:otp_code_hash, :otp_attempts, :otp_expires_at, :otp_last_attempt_at, :otp_verified,
			:expires_at, :created_at, :updated_at)
	`
	if _, err := sqlx.NamedExecContext(ctx, tx.Exec(ctx, s.db), query, toRow(v)); err != nil {
		if dberr.IsUniqueViolation(err) {
			return fmt.Errorf("create verification: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create verification: %w", dberr.Map(err))
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, verificationID id.VerificationID) (*models.Verification, error) {
	return s.findOne(ctx, "find verification by id", `WHERE id = $1`, uuid.UUID(verificationID))
}

func (s *PostgresStore) FindByReference(ctx context.Context, reference string) (*models.Verification, error) {
	return s.findOne(ctx, "find verification by reference", `WHERE reference = $1`, reference)
}

func (s *PostgresStore) FindByToken(ctx context.Context, token string) (*models.Verification, error) {
	return s.findOne(ctx, "find verification by token",
		`WHERE token = $1 ORDER BY created_at DESC LIMIT 1`, token)
}

// LockByID loads the row with FOR UPDATE. Callers must be inside a transaction.
func (s *PostgresStore) LockByID(ctx context.Context, verificationID id.VerificationID) (*models.Verification, error) {
	return s.findOne(ctx, "lock verification by id", `WHERE id = $1 FOR UPDATE`, uuid.UUID(verificationID))
}

// LockByReference loads the row with FOR UPDATE. Callers must be inside a transaction.
func (s *PostgresStore) LockByReference(ctx context.Context, reference string) (*models.Verification, error) {
	return s.findOne(ctx, "lock verification by reference", `WHERE reference = $1 FOR UPDATE`, reference)
}

// FindLatest returns the most recent verification for identifier and type.
func (s *PostgresStore) FindLatest(ctx context.Context, identifier string, typ models.Type) (*models.Verification, error) {
	return s.findOne(ctx, "find latest verification",
		`WHERE identifier = $1 AND type = $2 ORDER BY created_at DESC LIMIT 1`, identifier, string(typ))
}

func (s *PostgresStore) findOne(ctx context.Context, op, where string, args ...any) (*models.Verification, error) {
	var r row
	err := sqlx.GetContext(ctx, tx.Exec(ctx, s.db), &r, `SELECT `+columns+` FROM verifications `+where, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, dberr.Map(err))
	}
	return r.toModel(), nil
}

// Update writes every mutable column of v.
func (s *PostgresStore) Update(ctx context.Context, v *models.Verification) error {
	query := `
		UPDATE verifications SET
			user_id = :user_id,
			status = :status,
			token = :token,
			otp_code_hash = :otp_code_hash,
			otp_attempts = :otp_attempts,
			otp_last_attempt_at = :otp_last_attempt_at,
			otp_verified = :otp_verified,
			updated_at = :updated_at
		WHERE id = :id
	`
	res, err := sqlx.NamedExecContext(ctx, tx.Exec(ctx, s.db), query, toRow(v))
	if err != nil {
		return fmt.Errorf("update verification: %w", dberr.Map(err))
	}
	return requireRow(res, "update verification", sentinel.ErrNotFound)
}

func (s *PostgresStore) UpdateStatusByID(ctx context.Context, verificationID id.VerificationID, status models.Status, now time.Time) error {
	return s.updateStatus(ctx, "update status by id", `id = $3`, status, now, uuid.UUID(verificationID))
}

func (s *PostgresStore) UpdateStatusByReference(ctx context.Context, reference string, status models.Status, now time.Time) error {
	return s.updateStatus(ctx, "update status by reference", `reference = $3`, status, now, reference)
}

func (s *PostgresStore) updateStatus(ctx context.Context, op, where string, status models.Status, now time.Time, key any) error {
	query := `
		UPDATE verifications
		SET status = $1, updated_at = $2, otp_verified = otp_verified OR $1 IN ('VERIFIED', 'COMPLETED')
		WHERE ` + where + ` AND status = 'PENDING'`
	res, err := tx.Exec(ctx, s.db).ExecContext(ctx, query, string(status), now, key)
	if err != nil {
		return fmt.Errorf("%s: %w", op, dberr.Map(err))
	}
	return requireRow(res, op, sentinel.ErrInvalidState)
}

func (s *PostgresStore) Delete(ctx context.Context, verificationID id.VerificationID) error {
	res, err := tx.Exec(ctx, s.db).ExecContext(ctx, `DELETE FROM verifications WHERE id = $1`, uuid.UUID(verificationID))
	if err != nil {
		return fmt.Errorf("delete verification: %w", dberr.Map(err))
	}
	return requireRow(res, "delete verification", sentinel.ErrNotFound)
}

// DeleteExpired removes rows whose overall window closed before cutoff.
// PENDING rows are kept unless they have also expired relative to now.
func (s *PostgresStore) DeleteExpired(ctx context.Context, cutoff, now time.Time) (int, error) {
	query := `
		DELETE FROM verifications
		WHERE expires_at < $1
		  AND (status <> 'PENDING' OR expires_at < $2)
	`
	res, err := tx.Exec(ctx, s.db).ExecContext(ctx, query, cutoff, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired verifications: %w", dberr.Map(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired verifications: %w", dberr.Map(err))
	}
	return int(n), nil
}

// CountSince counts verifications created for identifier and type at or after since.
func (s *PostgresStore) CountSince(ctx context.Context, identifier string, typ models.Type, since time.Time) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, tx.Exec(ctx, s.db), &n,
		`SELECT COUNT(*) FROM verifications WHERE identifier = $1 AND type = $2 AND created_at >= $3`,
		identifier, string(typ), since)
	if err != nil {
		return 0, fmt.Errorf("count verifications: %w", dberr.Map(err))
	}
	return n, nil
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
