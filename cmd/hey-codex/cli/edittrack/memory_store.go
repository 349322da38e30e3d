package edittrack

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore is an in-process Store used by tests and dry runs.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string][]string

	// LoadErr and AppendErr, when set, are returned by every call.
	LoadErr   error
	AppendErr error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]string)}
}

// Load returns a copy of the paths recorded for key.
func (s *MemoryStore) Load(_ context.Context, key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return slices.Clone(s.sessions[key]), nil
}

// Append records path for key.
func (s *MemoryStore) Append(_ context.Context, key, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.AppendErr != nil {
		return s.AppendErr
	}
	if s.sessions == nil {
		s.sessions = make(map[string][]string)
	}
	s.sessions[key] = append(s.sessions[key], path)
	return nil
}
