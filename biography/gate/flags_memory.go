package gate

import (
	"context"
	"sync"
)

// MemoryFlags is an in-process FlagStore.
type MemoryFlags struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryFlags() *MemoryFlags {
	return &MemoryFlags{values: make(map[string]string)}
}

func (m *MemoryFlags) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryFlags) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
