package tenant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"voltid/internal/tenant/models"
	id "voltid/pkg/domain"
	"voltid/pkg/platform/dberr"
	"voltid/pkg/platform/sentinel"
	"voltid/pkg/platform/tx"
)

const columns = `id, name, status, created_at, updated_at`

type row struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r row) toModel() *models.Tenant {
	return &models.Tenant{
		ID:        id.TenantID(r.ID),
		Name:      r.Name,
		Status:    models.TenantStatus(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// CreateIfNameAvailable relies on the LOWER(name) unique index, so two
// concurrent inserts of the same name yield exactly one success.
func (s *PostgresStore) CreateIfNameAvailable(ctx context.Context, t *models.Tenant) error {
	_, err := tx.Exec(ctx, s.db).ExecContext(ctx,
		`INSERT INTO tenants (`+columns+`) VALUES ($1, $2, $3, $4, $5)`,
		uuid.UUID(t.ID), t.Name, string(t.Status), t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return fmt.Errorf("create tenant: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create tenant: %w", dberr.Map(err))
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	return s.findOne(ctx, "find tenant by id", `id = $1`, uuid.UUID(tenantID))
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*models.Tenant, error) {
	return s.findOne(ctx, "find tenant by name", `LOWER(name) = LOWER($1)`, name)
}

func (s *PostgresStore) findOne(ctx context.Context, op, where string, arg any) (*models.Tenant, error) {
	var r row
	err := sqlx.GetContext(ctx, tx.Exec(ctx, s.db), &r, `SELECT `+columns+` FROM tenants WHERE `+where, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, dberr.Map(err))
	}
	return r.toModel(), nil
}

func (s *PostgresStore) Update(ctx context.Context, t *models.Tenant) error {
	res, err := tx.Exec(ctx, s.db).ExecContext(ctx,
		`UPDATE tenants SET name = $2, status = $3, updated_at = $4 WHERE id = $1`,
		uuid.UUID(t.ID), t.Name, string(t.Status), t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update tenant: %w", dberr.Map(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update tenant: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, tx.Exec(ctx, s.db), &n, `SELECT COUNT(*) FROM tenants`); err != nil {
		return 0, fmt.Errorf("count tenants: %w", dberr.Map(err))
	}
	return n, nil
}
