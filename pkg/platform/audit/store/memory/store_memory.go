package memory

import (
	"context"
	"slices"
	"sync"

	id "formgate/pkg/domain"
	audit "formgate/pkg/platform/audit"
)

// InMemoryStore keeps audit events per form, in append order.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[id.FormID][]audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[id.FormID][]audit.Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.Fields = slices.Clone(event.Fields)
	s.events[event.FormID] = append(s.events[event.FormID], event)
	return nil
}

func (s *InMemoryStore) ListByForm(_ context.Context, formID id.FormID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[formID]...), nil
}

// ListRecent returns up to limit of the most recently appended events for
// formID, oldest first.
func (s *InMemoryStore) ListRecent(_ context.Context, formID id.FormID, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.events[formID]
	start := max(len(events)-limit, 0)
	return append([]audit.Event{}, events[start:]...), nil
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[id.FormID][]audit.Event)
}
