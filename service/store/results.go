// Package store provides the shared result stores that workers publish
// findings into and the scheduler drains. Entries are append-only per key
// for the duration of a run; nothing is deleted until the whole store is
// discarded.
package store

import (
	"sync"

	"github.com/ursalint/ursa/model/result"
)

// Results is a concurrent mapping from a key (filename for local bears,
// ordinal for global bears) to the findings published under it. Each key is
// written by at most one worker and read by exactly the scheduler.
type Results[K comparable] struct {
	mu      sync.RWMutex
	records map[K][]*result.Result
}

// NewResults creates an empty store.
func NewResults[K comparable]() *Results[K] {
	return &Results[K]{records: make(map[K][]*result.Result)}
}

// Append publishes findings under key. Successive appends to the same key
// extend the existing list.
func (s *Results[K]) Append(key K, results []*result.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = append(s.records[key], results...)
}

// Get returns the findings published under key. The slice is left in place;
// reading does not consume it.
func (s *Results[K]) Get(key K) []*result.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[key]
}

// Len returns the number of keys with published findings.
func (s *Results[K]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Keys returns every key with published findings, in unspecified order.
func (s *Results[K]) Keys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]K, 0, len(s.records))
	for key := range s.records {
		keys = append(keys, key)
	}
	return keys
}
