package memory

import (
	"context"
	"slices"
	"sync"

	id "enrolsight/pkg/domain"
	audit "enrolsight/pkg/platform/audit"
)

// InMemoryStore keeps events in process. It backs tests, local runs and the
// publisher's fallback path.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
	// capacity bounds memory; zero means unbounded.
	capacity int
}

// NewInMemoryStore returns an unbounded store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// NewBoundedStore keeps only the newest capacity events.
func NewBoundedStore(capacity int) *InMemoryStore {
	return &InMemoryStore{capacity: capacity}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if s.capacity > 0 && len(s.events) > s.capacity {
		s.events = slices.Delete(s.events, 0, len(s.events)-s.capacity)
	}
	return nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID id.UserID, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newest(s.events, audit.ClampLimit(limit), func(e audit.Event) bool { return e.UserID == userID }), nil
}

func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newest(s.events, audit.ClampLimit(limit), func(audit.Event) bool { return true }), nil
}

// Len reports how many events are held.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// newest walks from the latest append backwards, then orders by timestamp so
// late-arriving async events still sort correctly.
func newest(events []audit.Event, limit int, keep func(audit.Event) bool) []audit.Event {
	out := make([]audit.Event, 0, min(limit, len(events)))
	for i := len(events) - 1; i >= 0; i-- {
		if keep(events[i]) {
			out = append(out, events[i])
		}
	}
	slices.SortStableFunc(out, func(a, b audit.Event) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
