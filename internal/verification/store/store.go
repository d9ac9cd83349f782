// Package store persists verification records.
//
// Lookups return sentinel.ErrNotFound when no row matches. Writes that would
// break reference uniqueness or the one-pending-per-identifier rule return
// sentinel.ErrConflict. Status updates only move rows out of PENDING and
// return sentinel.ErrInvalidState otherwise.
package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"voltid/internal/verification/models"
	id "voltid/pkg/domain"
)

const columns = `id, user_id, reference, identifier, type, status, token,
	otp_code_hash, otp_attempts, otp_expires_at, otp_last_attempt_at, otp_verified,
	expires_at, created_at, updated_at`

type row struct {
	ID               uuid.UUID      `db:"id"`
	UserID           uuid.NullUUID  `db:"user_id"`
	Reference        string         `db:"reference"`
	Identifier       string         `db:"identifier"`
	Type             string         `db:"type"`
	Status           string         `db:"status"`
	Token            sql.NullString `db:"token"`
	OTPCodeHash      string         `db:"otp_code_hash"`
	OTPAttempts      int            `db:"otp_attempts"`
	OTPExpiresAt     time.Time      `db:"otp_expires_at"`
	OTPLastAttemptAt sql.NullTime   `db:"otp_last_attempt_at"`
	OTPVerified      bool           `db:"otp_verified"`
	ExpiresAt        time.Time      `db:"expires_at"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func toRow(v *models.Verification) row {
	r := row{
		ID:           uuid.UUID(v.ID),
		Reference:    v.Reference,
		Identifier:   v.Identifier,
		Type:         string(v.Type),
		Status:       string(v.Status),
		Token:        sql.NullString{String: v.Token, Valid: v.Token != ""},
		OTPCodeHash:  v.OTP.CodeHash,
		OTPAttempts:  v.OTP.Attempts,
		OTPExpiresAt: v.OTP.ExpiresAt,
		OTPVerified:  v.OTP.Verified,
		ExpiresAt:    v.ExpiresAt,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
	if v.UserID != nil {
		r.UserID = uuid.NullUUID{UUID: uuid.UUID(*v.UserID), Valid: true}
	}
	if v.OTP.LastAttemptAt != nil {
		r.OTPLastAttemptAt = sql.NullTime{Time: *v.OTP.LastAttemptAt, Valid: true}
	}
	return r
}

func (r row) toModel() *models.Verification {
	v := &models.Verification{
		ID:         id.VerificationID(r.ID),
		Reference:  r.Reference,
		Identifier: r.Identifier,
		Type:       models.Type(r.Type),
		Status:     models.Status(r.Status),
		Token:      r.Token.String,
		OTP: models.OTP{
			CodeHash:  r.OTPCodeHash,
			Attempts:  r.OTPAttempts,
			ExpiresAt: r.OTPExpiresAt,
			Verified:  r.OTPVerified,
		},
		ExpiresAt: r.ExpiresAt,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.UserID.Valid {
		uid := id.UserID(r.UserID.UUID)
		v.UserID = &uid
	}
	if r.OTPLastAttemptAt.Valid {
		t := r.OTPLastAttemptAt.Time
		v.OTP.LastAttemptAt = &t
	}
	return v
}
