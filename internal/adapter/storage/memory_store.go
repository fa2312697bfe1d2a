package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/rl1809/shopping-assistant/internal/core/domain"
)

// MemoryStore is an in-process key-value store. A positive quota caps the
// total size of keys and values in bytes, mimicking browser storage limits.
type MemoryStore struct {
	mu    sync.RWMutex
	data  map[string]string
	quota int
	used  int
}

func NewMemoryStore(quotaBytes int) *MemoryStore {
	return &MemoryStore{
		data:  make(map[string]string),
		quota: quotaBytes,
	}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	used := m.used + len(value)
	if old, ok := m.data[key]; ok {
		used -= len(old)
	} else {
		used += len(key)
	}
	if m.quota > 0 && used > m.quota {
		return fmt.Errorf("memory set %s: %w: quota of %d bytes exceeded", key, domain.ErrStorageUnavailable, m.quota)
	}

	m.data[key] = value
	m.used = used
	return nil
}
