package storage

import (
	"context"
	"sync"

	"credkit/pkg/platform/sentinel"
)

// InMemory keeps values in a map. It favors clarity over performance and is
// the default backend for tests and single-process demos.
type InMemory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewInMemory() *InMemory {
	return &InMemory{values: make(map[string][]byte)}
}

func (s *InMemory) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *InMemory) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}

// Unavailable is the backend used when the process has no durable storage.
// Every call fails with sentinel.ErrUnavailable so services can degrade to
// their defaults.
type Unavailable struct{}

func (Unavailable) Get(context.Context, string) ([]byte, error) {
	return nil, sentinel.ErrUnavailable
}

func (Unavailable) Set(context.Context, string, []byte) error {
	return sentinel.ErrUnavailable
}

// Update holds the write lock for the whole cycle.
func (s *InMemory) Update(_ context.Context, key string, fn MutateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, found := s.values[key]
	next, err := fn(append([]byte(nil), current...), found)
	if err != nil {
		return err
	}
	s.values[key] = append([]byte(nil), next...)
	return nil
}
