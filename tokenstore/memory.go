package tokenstore

import (
	"context"
	"sync"
)

// MemoryStore keeps credentials for the lifetime of the process only.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[Slot]string
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[Slot]string)}
}

func (s *MemoryStore) Get(_ context.Context, slot Slot) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.tokens[slot]
	return token, ok
}

func (s *MemoryStore) Set(_ context.Context, slot Slot, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" {
		delete(s.tokens, slot)
		return nil
	}
	s.tokens[slot] = token
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[Slot]string)
	return nil
}
