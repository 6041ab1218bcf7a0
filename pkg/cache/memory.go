package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/umputun/feedreader/pkg/domain"
)

// Memory is an in-process cache, safe for concurrent use
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	value     domain.FeedResult
	expiresAt time.Time
}

// NewMemory makes an empty in-memory cache
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry), now: time.Now}
}

// Get returns a not expired value for the key. Entries are copied, the stored value is never shared.
func (m *Memory) Get(_ context.Context, key string) (domain.FeedResult, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return domain.FeedResult{}, false
	}
	if !m.now().Before(e.expiresAt) {
		m.mu.Lock()
		// recheck, entry could be replaced in between
		if cur, found := m.entries[key]; found && cur.expiresAt.Equal(e.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return domain.FeedResult{}, false
	}
	return cloneResult(e.value), true
}

// Set stores the value for ttl, overwriting any previous value
func (m *Memory) Set(_ context.Context, key string, value domain.FeedResult, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry{value: cloneResult(value), expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Purge drops all entries
func (m *Memory) Purge(_ context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}

// Cleanup removes expired entries and returns the number removed
func (m *Memory) Cleanup(_ context.Context) (int, error) {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for k, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, k)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored entries, expired included
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Close does nothing for memory cache
func (m *Memory) Close() error { return nil }

func cloneResult(r domain.FeedResult) domain.FeedResult {
	r.Entries = slices.Clone(r.Entries)
	return r
}
