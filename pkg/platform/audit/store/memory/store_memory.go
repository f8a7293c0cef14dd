package memory

import (
	"context"
	"sync"

	audit "canna-gate/pkg/platform/audit"
	id "canna-gate/pkg/domain"
)

// InMemoryStore keeps audit events in process memory, grouped by the
// jurisdiction the event concerns. It backs unit tests and local runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[id.JurisdictionCode][]audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[id.JurisdictionCode][]audit.Event)}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[id.JurisdictionCode][]audit.Event)
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.Jurisdiction] = append(s.events[event.Jurisdiction], event)
	return nil
}

// ListByJurisdiction returns events recorded against one jurisdiction.
func (s *InMemoryStore) ListByJurisdiction(_ context.Context, code id.JurisdictionCode) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[code]...), nil
}

// ListAll returns all audit events across all jurisdictions.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []audit.Event
	for _, events := range s.events {
		all = append(all, events...)
	}
	return all, nil
}
