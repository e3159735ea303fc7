// Package cache memoizes composed dashboards. Redis is shared across
// replicas; the in-process store serves single instances and stands in for
// Redis while it is unreachable.
package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"enrolsight/pkg/platform/sentinel"
)

// DefaultMaxEntries bounds the in-process store.
const DefaultMaxEntries = 1024

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process TTL cache. It is safe for concurrent use.
type Memory struct {
	mu         sync.Mutex
	entries    map[string]entry
	maxEntries int
	now        func() time.Time
}

// MemoryOption configures a Memory cache.
type MemoryOption func(*Memory)

// WithMaxEntries caps the number of stored keys.
func WithMaxEntries(n int) MemoryOption {
	return func(m *Memory) {
		if n > 0 {
			m.maxEntries = n
		}
	}
}

// WithClock overrides the expiry clock.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries:    make(map[string]entry),
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns a copy of the stored value or sentinel.ErrNotFound.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		return nil, sentinel.ErrNotFound
	}
	return slices.Clone(e.value), nil
}

// Set stores value until ttl elapses. A full cache first drops expired keys,
// then the key closest to expiry.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxEntries {
		m.evict(now)
	}
	m.entries[key] = entry{value: slices.Clone(value), expiresAt: now.Add(ttl)}
	return nil
}

func (m *Memory) evict(now time.Time) {
	var (
		soonestKey string
		soonest    time.Time
	)
	for k, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, k)
			continue
		}
		if soonestKey == "" || e.expiresAt.Before(soonest) {
			soonestKey, soonest = k, e.expiresAt
		}
	}
	if len(m.entries) >= m.maxEntries && soonestKey != "" {
		delete(m.entries, soonestKey)
	}
}

// Len reports the number of stored keys, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
