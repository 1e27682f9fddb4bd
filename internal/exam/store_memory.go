package exam

import (
	"context"
	"sync"
)

// memoryStore is a map-backed attempt Store for tests and dev runs.
type memoryStore struct {
	mu sync.RWMutex
	m  map[string]Attempt
}

func NewInMemoryStore() Store {
	return &memoryStore{m: map[string]Attempt{}}
}

func (s *memoryStore) Create(_ context.Context, a Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[a.ID] = a
	return nil
}

func (s *memoryStore) Get(_ context.Context, id string) (Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.m[id]
	if !ok {
		return Attempt{}, ErrNotFound
	}
	return a, nil
}

func (s *memoryStore) Update(_ context.Context, a Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[a.ID]; !ok {
		return ErrNotFound
	}
	s.m[a.ID] = a
	return nil
}
