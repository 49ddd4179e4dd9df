package history

import (
	"context"
	"sync"
)

// Store persists per-session conversation histories for the web layer.
// Implementations enforce the MaxEntries bound on save.
type Store interface {
	// Load returns the history for a session; an unknown session yields
	// an empty history, not an error
	Load(ctx context.Context, sessionID string) ([]Turn, error)
	// Save replaces the history for a session, truncated to MaxEntries
	Save(ctx context.Context, sessionID string, turns []Turn) error
	// Delete removes a session's history
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore is an in-process Store, suitable for tests and single-node use
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]Turn
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]Turn)}
}

// Load returns the history for a session
func (s *MemoryStore) Load(ctx context.Context, sessionID string) ([]Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.sessions[sessionID]
	out := make([]Turn, len(stored))
	copy(out, stored)
	return out, nil
}

// Save replaces the history for a session
func (s *MemoryStore) Save(ctx context.Context, sessionID string, turns []Turn) error {
	turns = Truncate(turns)
	stored := make([]Turn, len(turns))
	copy(stored, turns)

	s.mu.Lock()
	s.sessions[sessionID] = stored
	s.mu.Unlock()
	return nil
}

// Delete removes a session's history
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}
