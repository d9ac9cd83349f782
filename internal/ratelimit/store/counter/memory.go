package counter

import (
	"context"
	"sync"
	"time"

	"voltid/internal/ratelimit/models"
)

// InMemory is a sliding-window counter for a single process.
// Use the Redis store when more than one instance serves traffic.
type InMemory struct {
	mu      sync.Mutex
	windows map[string]*slidingWindow
	now     func() time.Time
}

type slidingWindow struct {
	timestamps []time.Time
	window     time.Duration
}

type Option func(*InMemory)

func WithClock(now func() time.Time) Option {
	return func(s *InMemory) {
		s.now = now
	}
}

func NewInMemory(opts ...Option) *InMemory {
	s := &InMemory{windows: make(map[string]*slidingWindow), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allow records a hit for key when fewer than limit hits fall inside window.
// Rejected hits are not recorded.
func (s *InMemory) Allow(_ context.Context, key string, limit int, window time.Duration) (*models.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sw := s.windows[key]
	if sw == nil {
		sw = &slidingWindow{window: window}
		s.windows[key] = sw
	}
	sw.window = window
	sw.cleanup(now)

	if len(sw.timestamps) >= limit {
		return &models.Result{
			Allowed:   false,
			Limit:     limit,
			Remaining: 0,
			ResetAt:   sw.timestamps[0].Add(window),
		}, nil
	}

	sw.timestamps = append(sw.timestamps, now)
	return &models.Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - len(sw.timestamps),
		ResetAt:   sw.timestamps[0].Add(window),
	}, nil
}

func (s *InMemory) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, key)
	return nil
}

// Count returns the hits currently inside the window for key.
func (s *InMemory) Count(_ context.Context, key string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sw := s.windows[key]
	if sw == nil {
		return 0, nil
	}
	sw.window = window
	sw.cleanup(s.now())
	return len(sw.timestamps), nil
}

func (sw *slidingWindow) cleanup(now time.Time) {
	cutoff := now.Add(-sw.window)
	i := 0
	for ; i < len(sw.timestamps); i++ {
		if sw.timestamps[i].After(cutoff) {
			break
		}
	}
	sw.timestamps = sw.timestamps[i:]
}
