package uow

import (
	"context"
	"sync"
)

// Snapshotter is implemented by memory stores that can participate in a
// memory-backed unit of work. Snapshot returns a function restoring the store
// to the captured state.
type Snapshotter interface {
	Snapshot() (restore func())
}

// MemorySessionFactory provides transactional semantics over in-memory stores
// with a coarse lock: one unit of work at a time, stores snapshotted on open
// and restored on rollback. It exists for tests and the no-database profile;
// it favors correctness over concurrency.
type MemorySessionFactory struct {
	mu     sync.Mutex
	stores []Snapshotter
}

func NewMemorySessionFactory(stores ...Snapshotter) *MemorySessionFactory {
	return &MemorySessionFactory{stores: stores}
}

// Register adds a store after construction; only valid before the first Open.
func (f *MemorySessionFactory) Register(s Snapshotter) {
	f.stores = append(f.stores, s)
}

func (f *MemorySessionFactory) Open(ctx context.Context) (Session, error) {
	f.mu.Lock()
	restores := make([]func(), 0, len(f.stores))
	for _, s := range f.stores {
		restores = append(restores, s.Snapshot())
	}
	return &memorySession{factory: f, restores: restores}, nil
}

type memorySession struct {
	factory  *MemorySessionFactory
	restores []func()
	done     bool
}

func (s *memorySession) Bind(ctx context.Context) context.Context { return ctx }

func (s *memorySession) Commit(context.Context) error {
	if s.done {
		return nil
	}
	s.done = true
	s.restores = nil
	s.factory.mu.Unlock()
	return nil
}

func (s *memorySession) Rollback(context.Context) error {
	if s.done {
		return nil
	}
	s.done = true
	// Restore in reverse registration order.
	for i := len(s.restores) - 1; i >= 0; i-- {
		s.restores[i]()
	}
	s.restores = nil
	s.factory.mu.Unlock()
	return nil
}
