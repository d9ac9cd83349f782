// Package store persists KYC progress, one record per user.
//
// Lookups return sentinel.ErrNotFound when the user has no record. Create
// returns sentinel.ErrConflict for a second record. UpdateStage is a
// compare-and-set on the stage the caller read and returns
// sentinel.ErrInvalidState when another writer moved it first.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"voltid/internal/kyc/models"
	id "voltid/pkg/domain"
)

const columns = `id, user_id, current_stage, status, failure_reason, stage_metadata, last_updated, created_at`

type row struct {
	ID            uuid.UUID `db:"id"`
	UserID        uuid.UUID `db:"user_id"`
	CurrentStage  string    `db:"current_stage"`
	Status        string    `db:"status"`
	FailureReason *string   `db:"failure_reason"`
	StageMetadata []byte    `db:"stage_metadata"`
	LastUpdated   time.Time `db:"last_updated"`
	CreatedAt     time.Time `db:"created_at"`
}

func toRow(k *models.UserKYC) (row, error) {
	meta := k.StageMetadata
	if meta == nil {
		meta = map[string]any{}
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return row{}, fmt.Errorf("encode stage metadata: %w", err)
	}
	return row{
		ID:            uuid.UUID(k.ID),
		UserID:        uuid.UUID(k.UserID),
		CurrentStage:  string(k.CurrentStage),
		Status:        string(k.Status),
		FailureReason: k.FailureReason,
		StageMetadata: raw,
		LastUpdated:   k.LastUpdated,
		CreatedAt:     k.CreatedAt,
	}, nil
}

func (r row) toModel() (*models.UserKYC, error) {
	meta := map[string]any{}
	if len(r.StageMetadata) > 0 {
		if err := json.Unmarshal(r.StageMetadata, &meta); err != nil {
			return nil, fmt.Errorf("decode stage metadata: %w", err)
		}
	}
	return &models.UserKYC{
		ID:            id.KYCID(r.ID),
		UserID:        id.UserID(r.UserID),
		CurrentStage:  models.Stage(r.CurrentStage),
		Status:        models.Status(r.Status),
		FailureReason: r.FailureReason,
		StageMetadata: meta,
		LastUpdated:   r.LastUpdated,
		CreatedAt:     r.CreatedAt,
	}, nil
}
