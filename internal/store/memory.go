package store

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// Memory is an in-process backend with a byte quota, mirroring the
// semantics of browser local storage. A quota of zero or less disables the limit.
type Memory struct {
	mu    sync.RWMutex
	data  map[string]string
	used  int
	quota int
}

// NewMemory returns an empty Memory store limited to quota bytes of keys and values.
func NewMemory(quota int) *Memory {
	return &Memory{data: map[string]string{}, quota: quota}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	return m.SetMany(ctx, map[string]string{key: value})
}

// SetMany checks the quota for the whole batch before writing any entry.
func (m *Memory) SetMany(_ context.Context, entries map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	used := m.used
	for k, v := range entries {
		if old, ok := m.data[k]; ok {
			used -= len(k) + len(old)
		}
		used += len(k) + len(v)
	}
	if m.quota > 0 && used > m.quota {
		return ErrQuotaExceeded
	}
	for k, v := range entries {
		m.data[k] = v
	}
	m.used = used
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		if old, ok := m.data[k]; ok {
			m.used -= len(k) + len(old)
			delete(m.data, k)
		}
	}
	return nil
}

func (m *Memory) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := []string{}
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

// Used reports the number of bytes currently stored.
func (m *Memory) Used() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.used
}
