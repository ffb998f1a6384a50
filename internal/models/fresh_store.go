package models

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// FreshStore is a keyed cache where every entry carries the wall
// clock time of the fetch that produced it. Entries are immutable
// once written; Put replaces the whole entry.
//
// Concurrent refreshes of the same key are not coalesced. Callers
// keep at most one refresh in flight per key.
type FreshStore[K comparable, V any] struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[K]entry[V]
}

func NewFreshStore[K comparable, V any](ttl time.Duration) *FreshStore[K, V] {
	return &FreshStore[K, V]{
		ttl:  ttl,
		data: make(map[K]entry[V]),
	}
}

func (s *FreshStore[K, V]) Get(key K) (V, time.Time, bool) {
	return s.get(key)
}

// Fresh reports whether the entry exists and its age is below the TTL.
func (s *FreshStore[K, V]) Fresh(key K, now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[key]
	return ok && now.Sub(e.storedAt) < s.ttl
}

func (s *FreshStore[K, V]) Put(key K, val V, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry[V]{value: val, storedAt: now}
}

func (s *FreshStore[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// GetOrRefresh returns the cached value when it is still fresh,
// otherwise invokes refresh. A failed refresh degrades to the prior
// value when one exists (degraded=true); with no prior value the
// refresh error is returned.
func (s *FreshStore[K, V]) GetOrRefresh(key K, now time.Time, refresh func() (V, error)) (val V, degraded bool, err error) {
	if prior, storedAt, ok := s.get(key); ok && now.Sub(storedAt) < s.ttl {
		return prior, false, nil
	}

	fresh, err := refresh()
	if err != nil {
		if prior, _, ok := s.get(key); ok {
			return prior, true, nil
		}
		var zero V
		return zero, false, err
	}

	s.Put(key, fresh, now)
	return fresh, false, nil
}

func (s *FreshStore[K, V]) get(key K) (V, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[key]
	return e.value, e.storedAt, ok
}
