package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"voltid/internal/payment/models"
	id "voltid/pkg/domain"
	"voltid/pkg/platform/sentinel"
)

type InMemory struct {
	mu      sync.Mutex
	methods map[id.PaymentMethodID]*models.PaymentMethod
}

func NewInMemory() *InMemory {
	return &InMemory{methods: make(map[id.PaymentMethodID]*models.PaymentMethod)}
}

func (s *InMemory) Create(_ context.Context, m *models.PaymentMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.methods {
		if existing.Provider == m.Provider && existing.ProviderToken == m.ProviderToken {
			return fmt.Errorf("create payment method: %w", sentinel.ErrConflict)
		}
		if m.IsDefault && existing.UserID == m.UserID && existing.IsDefault {
			return fmt.Errorf("create payment method: %w", sentinel.ErrConflict)
		}
	}
	cp := *m
	s.methods[m.ID] = &cp
	return nil
}

// ListByUserID returns the user's methods, oldest first.
func (s *InMemory) ListByUserID(_ context.Context, userID id.UserID) ([]*models.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.PaymentMethod
	for _, m := range s.methods {
		if m.UserID == userID {
			cp := *m
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *models.PaymentMethod) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (s *InMemory) FindByID(_ context.Context, userID id.UserID, methodID id.PaymentMethodID) (*models.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.methods[methodID]
	if !ok || m.UserID != userID {
		return nil, fmt.Errorf("find payment method: %w", sentinel.ErrNotFound)
	}
	cp := *m
	return &cp, nil
}

func (s *InMemory) SetDefault(_ context.Context, userID id.UserID, methodID id.PaymentMethodID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	target, ok := s.methods[methodID]
	if !ok || target.UserID != userID {
		return fmt.Errorf("set default payment method: %w", sentinel.ErrNotFound)
	}
	for _, m := range s.methods {
		if m.UserID == userID {
			m.IsDefault = m.ID == methodID
		}
	}
	return nil
}

func (s *InMemory) Delete(_ context.Context, userID id.UserID, methodID id.PaymentMethodID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.methods[methodID]
	if !ok || m.UserID != userID {
		return fmt.Errorf("delete payment method: %w", sentinel.ErrNotFound)
	}
	delete(s.methods, methodID)
	return nil
}
