package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"voltid/internal/payment/models"
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

func (s *PostgresStore) Create(ctx context.Context, m *models.PaymentMethod) error {
	query := `
		INSERT INTO payment_methods (` + columns + `)
		VALUES (:id, :user_id, :provider, :provider_token, :brand, :last4, :exp_month, :exp_year, :is_default, :created_at)
	`
	if _, err := sqlx.NamedExecContext(ctx, tx.Exec(ctx, s.db), query, toRow(m)); err != nil {
		if dberr.IsUniqueViolation(err) {
			return fmt.Errorf("create payment method: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create payment method: %w", dberr.Map(err))
	}
	return nil
}

func (s *PostgresStore) ListByUserID(ctx context.Context, userID id.UserID) ([]*models.PaymentMethod, error) {
	var rows []row
	err := sqlx.SelectContext(ctx, tx.Exec(ctx, s.db), &rows,
		`SELECT `+columns+` FROM payment_methods WHERE user_id = $1 ORDER BY created_at, id`, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", dberr.Map(err))
	}
	out := make([]*models.PaymentMethod, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID, methodID id.PaymentMethodID) (*models.PaymentMethod, error) {
	var r row
	err := sqlx.GetContext(ctx, tx.Exec(ctx, s.db), &r,
		`SELECT `+columns+` FROM payment_methods WHERE id = $1 AND user_id = $2`,
		uuid.UUID(methodID), uuid.UUID(userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("find payment method: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find payment method: %w", dberr.Map(err))
	}
	return r.toModel(), nil
}

// SetDefault clears the current default before setting the new one so the
// partial unique index on is_default never sees two rows. Run it inside a
// transaction.
func (s *PostgresStore) SetDefault(ctx context.Context, userID id.UserID, methodID id.PaymentMethodID) error {
	exec := tx.Exec(ctx, s.db)
	if _, err := exec.ExecContext(ctx,
		`UPDATE payment_methods SET is_default = FALSE WHERE user_id = $1 AND is_default AND id <> $2`,
		uuid.UUID(userID), uuid.UUID(methodID)); err != nil {
		return fmt.Errorf("set default payment method: %w", dberr.Map(err))
	}
	res, err := exec.ExecContext(ctx,
		`UPDATE payment_methods SET is_default = TRUE WHERE id = $1 AND user_id = $2`,
		uuid.UUID(methodID), uuid.UUID(userID))
	if err != nil {
		return fmt.Errorf("set default payment method: %w", dberr.Map(err))
	}
	return requireRow(res, "set default payment method")
}

func (s *PostgresStore) Delete(ctx context.Context, userID id.UserID, methodID id.PaymentMethodID) error {
	res, err := tx.Exec(ctx, s.db).ExecContext(ctx,
		`DELETE FROM payment_methods WHERE id = $1 AND user_id = $2`,
		uuid.UUID(methodID), uuid.UUID(userID))
	if err != nil {
		return fmt.Errorf("delete payment method: %w", dberr.Map(err))
	}
	return requireRow(res, "delete payment method")
}

func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, dberr.Map(err))
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, sentinel.ErrNotFound)
	}
	return nil
}
