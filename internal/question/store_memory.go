package question

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryStore is a map-backed Store for tests and dev runs.
type memoryStore struct {
	mu sync.RWMutex
	m  map[string]Question
}

func NewInMemoryStore() Store {
	return &memoryStore{m: map[string]Question{}}
}

func (s *memoryStore) Put(_ context.Context, q Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q.CreatedAt == 0 {
		q.CreatedAt = time.Now().Unix()
	}
	s.m[q.ID] = q
	return nil
}

func (s *memoryStore) Get(_ context.Context, id string) (Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.m[id]
	if !ok {
		return Question{}, ErrNotFound
	}
	return q, nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return ErrNotFound
	}
	delete(s.m, id)
	return nil
}

func (s *memoryStore) List(_ context.Context, opts ListOpts) ([]Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Question
	for _, q := range s.m {
		if opts.Chapter > 0 && q.Chapter != opts.Chapter {
			continue
		}
		if opts.Type != "" && q.Type != opts.Type {
			continue
		}
		if opts.Language != "" && q.Language != opts.Language {
			continue
		}
		if opts.Q != "" && !strings.Contains(strings.ToLower(q.QuestionText), strings.ToLower(opts.Q)) {
			continue
		}
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return nil, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out, nil
}
