package profiles

import (
	"context"
	"sync"

	"petconnect/pkg/domain"
	"petconnect/pkg/sentinel"
)

type MemoryStore struct {
	mu        sync.RWMutex
	byAccount map[domain.AccountID]Profile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byAccount: make(map[domain.AccountID]Profile)}
}

func (s *MemoryStore) Snapshot() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := make(map[domain.AccountID]Profile, len(s.byAccount))
	for k, v := range s.byAccount {
		saved[k] = v
	}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.byAccount = saved
	}
}

func (s *MemoryStore) Create(_ context.Context, profile Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byAccount[profile.AccountID]; exists {
		return sentinel.ErrConflict
	}
	s.byAccount[profile.AccountID] = profile
	return nil
}

func (s *MemoryStore) FindByAccount(_ context.Context, accountID domain.AccountID) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if profile, ok := s.byAccount[accountID]; ok {
		return profile, nil
	}
	return Profile{}, sentinel.ErrNotFound
}
