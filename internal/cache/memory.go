package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process cache bounded by entry count. When full, the
// oldest inserted entry is evicted first.
type Memory struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	entries    map[string]memoryEntry
	order      []string
	now        func() time.Time
}

// NewMemory creates a cache holding at most maxEntries results. A zero ttl
// keeps entries until evicted or invalidated.
func NewMemory(maxEntries int, ttl time.Duration) *Memory {
	if maxEntries <= 0 {
		maxEntries = 50
	}
	return &Memory{
		maxEntries: maxEntries,
		ttl:        ttl,
		entries:    make(map[string]memoryEntry),
		now:        time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		m.remove(key)
		return nil, false
	}
	return e.value, true
}

func (m *Memory) Set(_ context.Context, key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; exists {
		m.remove(key)
	}
	for len(m.order) >= m.maxEntries {
		m.remove(m.order[0])
	}

	var expiresAt time.Time
	if m.ttl > 0 {
		expiresAt = m.now().Add(m.ttl)
	}
	m.entries[key] = memoryEntry{value: value, expiresAt: expiresAt}
	m.order = append(m.order, key)
}

func (m *Memory) Invalidate(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]memoryEntry)
	m.order = nil
}

// Len returns the number of cached entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// remove must be called with mu held.
func (m *Memory) remove(key string) {
	delete(m.entries, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}
