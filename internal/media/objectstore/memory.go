package objectstore

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"voltid/pkg/platform/sentinel"
)

// InMemory keeps objects in a map and counts deletes per key.
type InMemory struct {
	mu      sync.Mutex
	bucket  string
	objects map[string][]byte
	deletes map[string]int
}

func NewInMemory(bucket string) *InMemory {
	return &InMemory{
		bucket:  bucket,
		objects: make(map[string][]byte),
		deletes: make(map[string]int),
	}
}

// Put stores data under key, standing in for a client-side upload.
func (s *InMemory) Put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = append([]byte(nil), data...)
}

func (s *InMemory) PresignedUploadURL(_ context.Context, key, contentType string, ttl time.Duration) (string, error) {
	q := url.Values{}
	q.Set("content-type", contentType)
	q.Set("expires", fmt.Sprint(int(ttl.Seconds())))
	return (&url.URL{Scheme: "memory", Host: s.bucket, Path: "/" + key, RawQuery: q.Encode()}).String(), nil
}

func (s *InMemory) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("get object %s: %w", key, sentinel.ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

// Delete is idempotent like S3 RemoveObject.
func (s *InMemory) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.deletes[key]++
	return nil
}

// Deletes returns how many times key was deleted.
func (s *InMemory) Deletes(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deletes[key]
}

func (s *InMemory) Exists(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}
