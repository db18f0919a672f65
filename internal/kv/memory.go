package kv

import (
	"context"
	"sort"
	"sync"
)

var _ Backend = (*MemoryBackend)(nil)

// MemoryBackend keeps entries in a map. It is used by tests and by runs
// against ":memory:" where nothing needs to survive the process.
type MemoryBackend struct {
	mu         sync.Mutex
	entries    map[string][]byte
	quota      int64
	failWrites error
}

// NewMemoryBackend returns an empty backend. A quota of 0 disables the limit.
func NewMemoryBackend(quota int64) *MemoryBackend {
	return &MemoryBackend{
		entries: make(map[string][]byte),
		quota:   quota,
	}
}

// FailWrites makes every subsequent Set and Delete fail with err.
// Passing nil restores normal behavior.
func (m *MemoryBackend) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrites = err
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryBackend) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWrites != nil {
		return m.failWrites
	}

	if m.quota > 0 {
		used := m.usageLocked()
		if old, ok := m.entries[key]; ok {
			used -= entrySize(key, old)
		}
		if used+entrySize(key, value) > m.quota {
			return ErrQuotaExceeded
		}
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	m.entries[key] = stored
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWrites != nil {
		return m.failWrites
	}
	delete(m.entries, key)
	return nil
}

func (m *MemoryBackend) Keys(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryBackend) Usage(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.usageLocked(), nil
}

func (m *MemoryBackend) Quota() int64 { return m.quota }

func (m *MemoryBackend) usageLocked() int64 {
	var used int64
	for k, v := range m.entries {
		used += entrySize(k, v)
	}
	return used
}
