package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	id "voltid/pkg/domain"
	audit "voltid/pkg/platform/audit"
)

// InMemoryStore keeps events per user and mirrors every append into an
// in-process outbox so the relay worker can run without Postgres.
type InMemoryStore struct {
	mu        sync.RWMutex
	events    map[id.UserID][]audit.Event
	outbox    []audit.OutboxEntry
	published map[uuid.UUID]time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		events:    make(map[id.UserID][]audit.Event),
		published: make(map[uuid.UUID]time.Time),
	}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	entry, err := audit.NewOutboxEntry(event, time.Now())
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.UserID] = append(s.events[event.UserID], event)
	s.outbox = append(s.outbox, entry)
	return nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID id.UserID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[userID]...), nil
}

// Actions lists the actions recorded for userID in order.
func (s *InMemoryStore) Actions(userID id.UserID) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.events[userID]))
	for _, e := range s.events[userID] {
		out = append(out, e.Action)
	}
	return out
}

func (s *InMemoryStore) Pending(_ context.Context, limit int) ([]audit.OutboxEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.OutboxEntry
	for _, e := range s.outbox {
		if _, done := s.published[e.ID]; done {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemoryStore) MarkPublished(_ context.Context, ids []uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entryID := range ids {
		s.published[entryID] = at
	}
	return nil
}

// DeletePublished drops relayed entries published before cutoff.
func (s *InMemoryStore) DeletePublished(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.outbox[:0]
	deleted := 0
	for _, e := range s.outbox {
		if at, ok := s.published[e.ID]; ok && at.Before(cutoff) {
			delete(s.published, e.ID)
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	s.outbox = kept
	return deleted, nil
}
