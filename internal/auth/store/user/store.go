// Package user persists registered accounts.
package user

import (
	"time"

	"github.com/google/uuid"

	"voltid/internal/auth/models"
	id "voltid/pkg/domain"
)

const columns = `id, tenant_id, first_name, last_name, email, phone, password_hash,
	email_verified, phone_verified, created_at, updated_at`

type row struct {
	ID            uuid.UUID `db:"id"`
	TenantID      uuid.UUID `db:"tenant_id"`
	FirstName     string    `db:"first_name"`
	LastName      string    `db:"last_name"`
	Email         string    `db:"email"`
	Phone         string    `db:"phone"`
	PasswordHash  string    `db:"password_hash"`
	EmailVerified bool      `db:"email_verified"`
	PhoneVerified bool      `db:"phone_verified"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func toRow(u *models.User) row {
	return row{
		ID:            uuid.UUID(u.ID),
		TenantID:      uuid.UUID(u.TenantID),
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		Phone:         u.Phone,
		PasswordHash:  u.PasswordHash,
		EmailVerified: u.EmailVerified,
		PhoneVerified: u.PhoneVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (r row) toModel() *models.User {
	return &models.User{
		ID:            id.UserID(r.ID),
		TenantID:      id.TenantID(r.TenantID),
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Email:         r.Email,
		Phone:         r.Phone,
		PasswordHash:  r.PasswordHash,
		EmailVerified: r.EmailVerified,
		PhoneVerified: r.PhoneVerified,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
