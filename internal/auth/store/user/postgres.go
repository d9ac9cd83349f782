package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"voltid/internal/auth/models"
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

func (s *PostgresStore) Create(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (` + columns + `)
		VALUES (:id, :tenant_id, :first_name, :last_name, :email, :phone, :password_hash,
			:email_verified, :phone_verified, :created_at, :updated_at)
	`
	if _, err := sqlx.NamedExecContext(ctx, tx.Exec(ctx, s.db), query, toRow(u)); err != nil {
		if dberr.IsUniqueViolation(err) {
			return fmt.Errorf("create user: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create user: %w", dberr.Map(err))
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	return s.findOne(ctx, "find user by id", `id = $1`, uuid.UUID(userID))
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, "find user by email", `email = $1`, email)
}

func (s *PostgresStore) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	return s.findOne(ctx, "find user by phone", `phone = $1`, phone)
}

func (s *PostgresStore) findOne(ctx context.Context, op, where string, arg any) (*models.User, error) {
	var r row
	err := sqlx.GetContext(ctx, tx.Exec(ctx, s.db), &r, `SELECT `+columns+` FROM users WHERE `+where, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, dberr.Map(err))
	}
	return r.toModel(), nil
}

func (s *PostgresStore) CountByTenant(ctx context.Context, tenantID id.TenantID) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, tx.Exec(ctx, s.db), &n,
		`SELECT COUNT(*) FROM users WHERE tenant_id = $1`, uuid.UUID(tenantID))
	if err != nil {
		return 0, fmt.Errorf("count users by tenant: %w", dberr.Map(err))
	}
	return n, nil
}
