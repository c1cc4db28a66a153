package markers

import (
	"context"
	"sync"
)

// MemoryStore keeps markers in process memory. It is the tab-scoped
// analogue: markers live exactly as long as the process owning the view.
type MemoryStore struct {
	mu      sync.RWMutex
	current Markers
	set     bool
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Put describes the put operation and its observable behavior.
//
// Put may return an error when input validation, dependency calls, or security checks fail.
// Put does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MemoryStore) Put(_ context.Context, m Markers) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = m
	s.set = true
	return nil
}

// Get describes the get operation and its observable behavior.
//
// Get may return an error when input validation, dependency calls, or security checks fail.
// Get does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MemoryStore) Get(_ context.Context) (Markers, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current, s.set, nil
}

// Clear describes the clear operation and its observable behavior.
//
// Clear may return an error when input validation, dependency calls, or security checks fail.
// Clear does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Markers{}
	s.set = false
	return nil
}
