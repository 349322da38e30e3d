// Package edittrack counts the distinct files edited within one host session.
//
// A session is keyed by the host's parent process id. Paths are kept in an
// append-only store and de-duplicated on load, so a store may hold the same
// path more than once without affecting the distinct count.
package edittrack

import "context"

// Store persists the paths edited in each session.
type Store interface {
	// Load returns the paths recorded for key in insertion order.
	// Duplicates may be present. A session with no records yields an empty slice.
	Load(ctx context.Context, key string) ([]string, error)

	// Append records one more path for key.
	Append(ctx context.Context, key, path string) error
}

// PathSet is a set of distinct paths.
type PathSet struct {
	seen map[string]struct{}
}

// NewPathSet builds a set from paths, dropping duplicates.
func NewPathSet(paths []string) *PathSet {
	s := &PathSet{seen: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Add inserts p and reports whether it was new.
func (s *PathSet) Add(p string) bool {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[p]; ok {
		return false
	}
	s.seen[p] = struct{}{}
	return true
}

// Contains reports whether p is in the set.
func (s *PathSet) Contains(p string) bool {
	_, ok := s.seen[p]
	return ok
}

// Len returns the number of distinct paths.
func (s *PathSet) Len() int {
	return len(s.seen)
}
