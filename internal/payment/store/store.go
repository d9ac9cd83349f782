// Package store persists tokenized payment methods.
//
// Every lookup is scoped to the owning user: a method id belonging to
// somebody else is reported as sentinel.ErrNotFound. Create returns
// sentinel.ErrConflict when the provider token is already on file.
package store

import (
	"time"

	"github.com/google/uuid"

	"voltid/internal/payment/models"
	id "voltid/pkg/domain"
)

const columns = `id, user_id, provider, provider_token, brand, last4, exp_month, exp_year, is_default, created_at`

type row struct {
	ID            uuid.UUID `db:"id"`
	UserID        uuid.UUID `db:"user_id"`
	Provider      string    `db:"provider"`
	ProviderToken string    `db:"provider_token"`
	Brand         string    `db:"brand"`
	Last4         string    `db:"last4"`
	ExpMonth      int       `db:"exp_month"`
	ExpYear       int       `db:"exp_year"`
	IsDefault     bool      `db:"is_default"`
	CreatedAt     time.Time `db:"created_at"`
}

func toRow(m *models.PaymentMethod) row {
	return row{
		ID:            uuid.UUID(m.ID),
		UserID:        uuid.UUID(m.UserID),
		Provider:      m.Provider,
		ProviderToken: m.ProviderToken,
		Brand:         m.Brand,
		Last4:         m.Last4,
		ExpMonth:      m.ExpMonth,
		ExpYear:       m.ExpYear,
		IsDefault:     m.IsDefault,
		CreatedAt:     m.CreatedAt,
	}
}

func (r row) toModel() *models.PaymentMethod {
	return &models.PaymentMethod{
		ID:            id.PaymentMethodID(r.ID),
		UserID:        id.UserID(r.UserID),
		Provider:      r.Provider,
		ProviderToken: r.ProviderToken,
		Brand:         r.Brand,
		Last4:         r.Last4,
		ExpMonth:      r.ExpMonth,
		ExpYear:       r.ExpYear,
		IsDefault:     r.IsDefault,
		CreatedAt:     r.CreatedAt,
	}
}
