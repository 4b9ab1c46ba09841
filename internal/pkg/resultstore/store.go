// Package resultstore keeps short-lived results that are handed out once.
package resultstore

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Store is a TTL map safe for concurrent use. Take removes the entry it returns.
type Store[T any] struct {
	ttl   time.Duration
	now   func() time.Time
	mu    sync.Mutex
	items map[string]entry[T]
}

func New[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]entry[T]),
	}
}

// Save stores value under id, replacing any previous value.
func (s *Store[T]) Save(id string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[id] = entry[T]{value: value, expiresAt: s.now().Add(s.ttl)}
}

// Take returns and removes the value under id. Expired entries are reported
// as missing.
func (s *Store[T]) Take(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	e, ok := s.items[id]
	if !ok {
		return zero, false
	}
	delete(s.items, id)

	if !s.now().Before(e.expiresAt) {
		return zero, false
	}
	return e.value, true
}

// Prune drops expired entries and returns how many were removed.
func (s *Store[T]) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.items {
		if !now.Before(e.expiresAt) {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}

func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
