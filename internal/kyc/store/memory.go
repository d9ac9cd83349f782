package store

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"voltid/internal/kyc/models"
	id "voltid/pkg/domain"
	"voltid/pkg/platform/sentinel"
)

// InMemory keys records by user id, which also enforces one record per user.
type InMemory struct {
	mu     sync.Mutex
	byUser map[id.UserID]*models.UserKYC
}

func NewInMemory() *InMemory {
	return &InMemory{byUser: make(map[id.UserID]*models.UserKYC)}
}

func clone(k *models.UserKYC) *models.UserKYC {
	cp := *k
	cp.StageMetadata = maps.Clone(k.StageMetadata)
	if cp.StageMetadata == nil {
		cp.StageMetadata = map[string]any{}
	}
	if k.FailureReason != nil {
		reason := *k.FailureReason
		cp.FailureReason = &reason
	}
	return &cp
}

func (s *InMemory) FindByUserID(_ context.Context, userID id.UserID) (*models.UserKYC, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k, ok := s.byUser[userID]
	if !ok {
		return nil, fmt.Errorf("find kyc by user: %w", sentinel.ErrNotFound)
	}
	return clone(k), nil
}

// LockByUserID is FindByUserID; serialization comes from the in-memory tx runner.
func (s *InMemory) LockByUserID(ctx context.Context, userID id.UserID) (*models.UserKYC, error) {
	return s.FindByUserID(ctx, userID)
}

func (s *InMemory) Create(_ context.Context, k *models.UserKYC) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byUser[k.UserID]; ok {
		return fmt.Errorf("create kyc: %w", sentinel.ErrConflict)
	}
	s.byUser[k.UserID] = clone(k)
	return nil
}

func (s *InMemory) UpdateStage(_ context.Context, k *models.UserKYC, expected models.Stage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.byUser[k.UserID]
	if !ok || current.CurrentStage != expected {
		return fmt.Errorf("update kyc stage: %w", sentinel.ErrInvalidState)
	}
	next := clone(k)
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	s.byUser[k.UserID] = next
	return nil
}

func (s *InMemory) SetFailure(_ context.Context, userID id.UserID, reason string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k, ok := s.byUser[userID]
	if !ok || k.IsCompleted() {
		return fmt.Errorf("set kyc failure: %w", sentinel.ErrInvalidState)
	}
	k.Status = models.StatusFailed
	k.FailureReason = &reason
	k.LastUpdated = now
	return nil
}

func (s *InMemory) ResetKYC(_ context.Context, userID id.UserID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k, ok := s.byUser[userID]
	if !ok {
		return fmt.Errorf("reset kyc: %w", sentinel.ErrNotFound)
	}
	k.ApplyReset(now)
	return nil
}

func (s *InMemory) Upsert(_ context.Context, k *models.UserKYC) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := clone(k)
	if existing, ok := s.byUser[k.UserID]; ok {
		next.ID = existing.ID
		next.CreatedAt = existing.CreatedAt
	}
	s.byUser[k.UserID] = next
	return nil
}
