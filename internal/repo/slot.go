// Package repo contains all persistence logic for the travel journal.
// The journal is stored as one JSON document in a named slot; SlotRepo is the
// byte-level key/value contract and each backend has its own file.
// No business logic lives here, only storage and encoding.
package repo

import (
	"context"
	"sync"
)

// SlotRepo stores opaque values under string keys.
// The service layer never sees it directly; StateRepo wraps it with the
// journal encoding.
type SlotRepo interface {
	// Get returns the value stored under key. The boolean is false when the
	// key has never been written; err is reserved for backend failures.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put overwrites the value stored under key.
	Put(ctx context.Context, key string, value []byte) error
}

// MemorySlots is an in-process SlotRepo. Values live as long as the process.
type MemorySlots struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemorySlots returns an empty in-memory SlotRepo.
func NewMemorySlots() *MemorySlots {
	return &MemorySlots{slots: make(map[string][]byte)}
}

// Get implements SlotRepo.
func (m *MemorySlots) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.slots[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Put implements SlotRepo.
func (m *MemorySlots) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = append([]byte(nil), value...)
	return nil
}
