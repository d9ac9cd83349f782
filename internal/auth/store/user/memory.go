package user

import (
	"context"
	"fmt"
	"sync"

	"voltid/internal/auth/models"
	id "voltid/pkg/domain"
	"voltid/pkg/platform/sentinel"
)

// InMemoryUserStore enforces the same email and phone uniqueness as the
// users table.
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[id.UserID]*models.User
}

func New() *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[id.UserID]*models.User)}
}

func (s *InMemoryUserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; ok {
		return fmt.Errorf("create user: %w", sentinel.ErrConflict)
	}
	for _, existing := range s.users {
		if existing.Email == u.Email || existing.Phone == u.Phone {
			return fmt.Errorf("create user: %w", sentinel.ErrConflict)
		}
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *InMemoryUserStore) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("find user by id: %w", sentinel.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (s *InMemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return s.find("find user by email", func(u *models.User) bool { return u.Email == email })
}

func (s *InMemoryUserStore) FindByPhone(_ context.Context, phone string) (*models.User, error) {
	return s.find("find user by phone", func(u *models.User) bool { return u.Phone == phone })
}

func (s *InMemoryUserStore) find(op string, match func(*models.User) bool) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, sentinel.ErrNotFound)
}

func (s *InMemoryUserStore) CountByTenant(_ context.Context, tenantID id.TenantID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, u := range s.users {
		if u.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}
