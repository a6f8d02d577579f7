package policy

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	snap  Snapshot
	flags map[string]Flags
}

// NewMemoryRepository constructs an in-memory policy store seeded with the
// provided snapshot. Used in tests and development mode.
func NewMemoryRepository(initial Snapshot) Repository {
	return &memoryRepository{snap: initial, flags: make(map[string]Flags)}
}

func (r *memoryRepository) Load(_ context.Context) (Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap, nil
}

func (r *memoryRepository) Save(_ context.Context, snap Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = snap
	return nil
}

func (r *memoryRepository) Flags(_ context.Context, code string) (Flags, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.flags[code], nil
}

func (r *memoryRepository) SaveFlags(_ context.Context, code string, flags Flags) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flags[code] = flags
	return nil
}
