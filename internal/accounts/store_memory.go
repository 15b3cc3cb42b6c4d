package accounts

import (
	"context"
	"sync"

	"petconnect/pkg/domain"
	"petconnect/pkg/sentinel"
)

// MemoryStore keeps accounts in a map keyed by normalised email. It
// participates in memory-backed units of work through Snapshot.
type MemoryStore struct {
	mu      sync.RWMutex
	byEmail map[string]Account
	byID    map[domain.AccountID]Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byEmail: make(map[string]Account),
		byID:    make(map[domain.AccountID]Account),
	}
}

// Snapshot captures current state for the memory session factory.
func (s *MemoryStore) Snapshot() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	emails := make(map[string]Account, len(s.byEmail))
	for k, v := range s.byEmail {
		emails[k] = v
	}
	ids := make(map[domain.AccountID]Account, len(s.byID))
	for k, v := range s.byID {
		ids[k] = v
	}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.byEmail = emails
		s.byID = ids
	}
}

func (s *MemoryStore) Create(_ context.Context, account Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[account.Email]; exists {
		return sentinel.ErrConflict
	}
	s.byEmail[account.Email] = account
	s.byID[account.ID] = account
	return nil
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if account, ok := s.byEmail[email]; ok {
		return account, nil
	}
	return Account{}, sentinel.ErrNotFound
}

func (s *MemoryStore) FindByID(_ context.Context, id domain.AccountID) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if account, ok := s.byID[id]; ok {
		return account, nil
	}
	return Account{}, sentinel.ErrNotFound
}

func (s *MemoryStore) Update(_ context.Context, account Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.byID[account.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byEmail, current.Email)
	s.byEmail[account.Email] = account
	s.byID[account.ID] = account
	return nil
}
