package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"voltid/internal/verification/models"
	id "voltid/pkg/domain"
	"voltid/pkg/platform/sentinel"
)

// InMemory is a map-backed store with the same uniqueness rules as the
// Postgres schema. Records are copied on the way in and out.
type InMemory struct {
	mu      sync.RWMutex
	records map[id.VerificationID]*models.Verification
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[id.VerificationID]*models.Verification)}
}

func clone(v *models.Verification) *models.Verification {
	cp := *v
	if v.UserID != nil {
		uid := *v.UserID
		cp.UserID = &uid
	}
	if v.OTP.LastAttemptAt != nil {
		t := *v.OTP.LastAttemptAt
		cp.OTP.LastAttemptAt = &t
	}
	return &cp
}

func (s *InMemory) Create(_ context.Context, v *models.Verification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[v.ID]; exists {
		return fmt.Errorf("create verification: %w", sentinel.ErrConflict)
	}
	for _, existing := range s.records {
		if existing.Reference == v.Reference {
			return fmt.Errorf("create verification: %w", sentinel.ErrConflict)
		}
		if v.IsPending() && existing.IsPending() &&
			existing.Identifier == v.Identifier && existing.Type == v.Type {
			return fmt.Errorf("create verification: %w", sentinel.ErrConflict)
		}
	}
	s.records[v.ID] = clone(v)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, verificationID id.VerificationID) (*models.Verification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[verificationID]
	if !ok {
		return nil, fmt.Errorf("find verification by id: %w", sentinel.ErrNotFound)
	}
	return clone(v), nil
}

func (s *InMemory) FindByReference(_ context.Context, reference string) (*models.Verification, error) {
	return s.first("find verification by reference", func(v *models.Verification) bool {
		return v.Reference == reference
	})
}

func (s *InMemory) FindByToken(_ context.Context, token string) (*models.Verification, error) {
	return s.first("find verification by token", func(v *models.Verification) bool {
		return token != "" && v.Token == token
	})
}

// LockByID is FindByID; the in-memory transaction runner already serializes callers.
func (s *InMemory) LockByID(ctx context.Context, verificationID id.VerificationID) (*models.Verification, error) {
	return s.FindByID(ctx, verificationID)
}

func (s *InMemory) LockByReference(ctx context.Context, reference string) (*models.Verification, error) {
	return s.FindByReference(ctx, reference)
}

func (s *InMemory) FindLatest(_ context.Context, identifier string, typ models.Type) (*models.Verification, error) {
	return s.first("find latest verification", func(v *models.Verification) bool {
		return v.Identifier == identifier && v.Type == typ
	})
}

// first returns the newest record matching pred.
func (s *InMemory) first(op string, pred func(*models.Verification) bool) (*models.Verification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matches []*models.Verification
	for _, v := range s.records {
		if pred(v) {
			matches = append(matches, v)
		}
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%s: %w", op, sentinel.ErrNotFound)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return clone(matches[0]), nil
}

func (s *InMemory) Update(_ context.Context, v *models.Verification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[v.ID]; !ok {
		return fmt.Errorf("update verification: %w", sentinel.ErrNotFound)
	}
	s.records[v.ID] = clone(v)
	return nil
}

func (s *InMemory) UpdateStatusByID(_ context.Context, verificationID id.VerificationID, status models.Status, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.records[verificationID]
	if !ok {
		return fmt.Errorf("update status by id: %w", sentinel.ErrInvalidState)
	}
	return s.setStatus(v, status, now, "update status by id")
}

func (s *InMemory) UpdateStatusByReference(_ context.Context, reference string, status models.Status, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.records {
		if v.Reference == reference {
			return s.setStatus(v, status, now, "update status by reference")
		}
	}
	return fmt.Errorf("update status by reference: %w", sentinel.ErrInvalidState)
}

func (s *InMemory) setStatus(v *models.Verification, status models.Status, now time.Time, op string) error {
	if !v.IsPending() {
		return fmt.Errorf("%s: %w", op, sentinel.ErrInvalidState)
	}
	v.Status = status
	v.UpdatedAt = now
	if status.IsResolved() {
		v.OTP.Verified = true
	}
	return nil
}

func (s *InMemory) Delete(_ context.Context, verificationID id.VerificationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[verificationID]; !ok {
		return fmt.Errorf("delete verification: %w", sentinel.ErrNotFound)
	}
	delete(s.records, verificationID)
	return nil
}

func (s *InMemory) DeleteExpired(_ context.Context, cutoff, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for key, v := range s.records {
		if !v.ExpiresAt.Before(cutoff) {
			continue
		}
		if v.IsPending() && !v.ExpiresAt.Before(now) {
			continue
		}
		delete(s.records, key)
		deleted++
	}
	return deleted, nil
}

func (s *InMemory) CountSince(_ context.Context, identifier string, typ models.Type, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, v := range s.records {
		if v.Identifier == identifier && v.Type == typ && !v.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}
