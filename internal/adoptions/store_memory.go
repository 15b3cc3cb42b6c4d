package adoptions

import (
	"context"
	"sort"
	"sync"

	"petconnect/pkg/domain"
	"petconnect/pkg/sentinel"
)

type MemoryStore struct {
	mu   sync.RWMutex
	byID map[domain.ApplicationID]Application
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[domain.ApplicationID]Application)}
}

func (s *MemoryStore) Snapshot() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := make(map[domain.ApplicationID]Application, len(s.byID))
	for k, v := range s.byID {
		saved[k] = v
	}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.byID = saved
	}
}

func (s *MemoryStore) Create(_ context.Context, app Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.PetID == app.PetID &&
			existing.ApplicantAccountID == app.ApplicantAccountID &&
			existing.Status == StatusPending {
			return sentinel.ErrConflict
		}
	}
	s.byID[app.ID] = app
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id domain.ApplicationID) (Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if app, ok := s.byID[id]; ok {
		return app, nil
	}
	return Application{}, sentinel.ErrNotFound
}

func (s *MemoryStore) ListPendingByPet(_ context.Context, petID domain.PetID) ([]Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Application
	for _, app := range s.byID {
		if app.PetID == petID && app.Status == StatusPending {
			out = append(out, app)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, app Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[app.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.byID[app.ID] = app
	return nil
}
