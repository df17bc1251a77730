package sessionstore

import (
	"context"
	"sort"
	"sync"

	"github.com/ventuslabs/siteflow/workflow"
)

// MemoryStore is the in-memory Store implementation. It is thread-safe and
// copies state on both Save and Load so no caller aliases stored snapshots.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]*workflow.State
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states: make(map[string]*workflow.State),
	}
}

// Load retrieves a session state by id.
func (s *MemoryStore) Load(_ context.Context, sessionID string) (*workflow.State, error) {
	if sessionID == "" {
		return nil, ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return state.Clone(), nil
}

// Save stores a deep copy of the session state.
func (s *MemoryStore) Save(_ context.Context, state *workflow.State) error {
	if state == nil || state.SessionID == "" {
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[state.SessionID] = state.Clone()
	return nil
}

// Delete removes a session.
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, sessionID)
	return nil
}

// List returns all stored session ids, sorted.
func (s *MemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.states))
	for id := range s.states {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
