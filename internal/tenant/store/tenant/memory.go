// Package tenant persists tenants.
package tenant

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"voltid/internal/tenant/models"
	id "voltid/pkg/domain"
	"voltid/pkg/platform/sentinel"
)

// InMemory keeps tenants in a map with the same case-insensitive name
// uniqueness as the tenants table.
type InMemory struct {
	mu      sync.RWMutex
	tenants map[id.TenantID]*models.Tenant
}

func NewInMemory() *InMemory {
	return &InMemory{tenants: make(map[id.TenantID]*models.Tenant)}
}

func (s *InMemory) CreateIfNameAvailable(_ context.Context, t *models.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.tenants {
		if strings.EqualFold(existing.Name, t.Name) {
			return fmt.Errorf("create tenant: %w", sentinel.ErrAlreadyUsed)
		}
	}
	cp := *t
	s.tenants[t.ID] = &cp
	return nil
}

func (s *InMemory) FindByID(_ context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tenants[tenantID]
	if !ok {
		return nil, fmt.Errorf("find tenant by id: %w", sentinel.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (s *InMemory) FindByName(_ context.Context, name string) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tenants {
		if strings.EqualFold(t.Name, name) {
			cp := *t
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("find tenant by name: %w", sentinel.ErrNotFound)
}

func (s *InMemory) Update(_ context.Context, t *models.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenants[t.ID]; !ok {
		return fmt.Errorf("update tenant: %w", sentinel.ErrNotFound)
	}
	cp := *t
	s.tenants[t.ID] = &cp
	return nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tenants), nil
}
