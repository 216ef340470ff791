package registry

import (
	"sync"

	"github.com/bridgeoracle/bridgeoracle-go/types"
)

// MemoryStore is an in-process Store for tests and ephemeral nodes.
// An RWMutex lets many concurrent admission checks read against a
// consistent snapshot while commits take the write lock.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[types.Message]bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[types.Message]bool),
	}
}

// Get reports the flag stored for msg and whether msg is present.
func (s *MemoryStore) Get(msg types.Message) (bool, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	verified, present := s.entries[msg]
	return verified, present, nil
}

// Put stores the flag for msg.
func (s *MemoryStore) Put(msg types.Message, verified bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[msg] = verified
	return nil
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
