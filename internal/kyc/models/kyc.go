package models

import (
	"maps"
	"time"

	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
)

// UserKYC is one user's progress through onboarding.
//
// Invariants:
//   - one record per user
//   - CurrentStage only moves forward, except through ApplyReset
//   - Status is COMPLETED exactly when CurrentStage is COMPLETED
type UserKYC struct {
	ID            id.KYCID       `json:"id"`
	UserID        id.UserID      `json:"user_id"`
	CurrentStage  Stage          `json:"current_stage"`
	Status        Status         `json:"status"`
	FailureReason *string        `json:"failure_reason,omitempty"`
	StageMetadata map[string]any `json:"stage_metadata"`
	LastUpdated   time.Time      `json:"last_updated"`
	CreatedAt     time.Time      `json:"created_at"`
}

func NewUserKYC(kycID id.KYCID, userID id.UserID, stage Stage, now time.Time) (*UserKYC, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "user id is required")
	}
	if !stage.IsValid() || stage == StageCompleted {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid initial kyc stage")
	}
	return &UserKYC{
		ID:            kycID,
		UserID:        userID,
		CurrentStage:  stage,
		Status:        StatusPending,
		StageMetadata: map[string]any{},
		LastUpdated:   now,
		CreatedAt:     now,
	}, nil
}

func (k *UserKYC) IsCompleted() bool {
	return k.Status == StatusCompleted
}

// CanAdvance checks that completed is the stage the record is waiting on.
// Skipping ahead, going back and touching a finished record are all refused.
func (k *UserKYC) CanAdvance(completed Stage) error {
	if k.IsCompleted() {
		return dErrors.New(dErrors.CodeKYCStageInvalid, "kyc is already completed")
	}
	if !completed.IsValid() {
		return dErrors.New(dErrors.CodeKYCStageInvalid, "unknown kyc stage")
	}
	if completed != k.CurrentStage {
		return dErrors.New(dErrors.CodeKYCStageInvalid,
			"kyc is at stage "+string(k.CurrentStage)+", not "+string(completed))
	}
	return nil
}

// ApplyAdvance moves to the next stage, merging metadata into the evidence
// bag and clearing any earlier failure.
func (k *UserKYC) ApplyAdvance(now time.Time, metadata map[string]any) {
	if k.StageMetadata == nil {
		k.StageMetadata = map[string]any{}
	}
	maps.Copy(k.StageMetadata, metadata)
	k.CurrentStage = k.CurrentStage.Next()
	k.Status = StatusInProgress
	if k.CurrentStage == StageCompleted {
		k.Status = StatusCompleted
	}
	k.FailureReason = nil
	k.LastUpdated = now
}

// ApplyFailure marks the current stage FAILED. The stage stays put so the
// user can retry it.
func (k *UserKYC) ApplyFailure(now time.Time, reason string) error {
	if k.IsCompleted() {
		return dErrors.New(dErrors.CodeKYCStageInvalid, "kyc is already completed")
	}
	k.Status = StatusFailed
	k.FailureReason = &reason
	k.LastUpdated = now
	return nil
}

// ApplyReset returns the record to the first stage with no evidence.
func (k *UserKYC) ApplyReset(now time.Time) {
	k.CurrentStage = StageEmailVerification
	k.Status = StatusPending
	k.FailureReason = nil
	k.StageMetadata = map[string]any{}
	k.LastUpdated = now
}
