package organizations

import (
	"context"
	"sync"

	"petconnect/pkg/domain"
	"petconnect/pkg/sentinel"
)

type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[domain.OrganizationID]Organization
	byName map[string]domain.OrganizationID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[domain.OrganizationID]Organization),
		byName: make(map[string]domain.OrganizationID),
	}
}

func (s *MemoryStore) Snapshot() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make(map[domain.OrganizationID]Organization, len(s.byID))
	for k, v := range s.byID {
		ids[k] = v
	}
	names := make(map[string]domain.OrganizationID, len(s.byName))
	for k, v := range s.byName {
		names[k] = v
	}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.byID = ids
		s.byName = names
	}
}

func (s *MemoryStore) Create(_ context.Context, org Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := NormalizeName(org.Name)
	if _, exists := s.byName[key]; exists {
		return sentinel.ErrConflict
	}
	s.byID[org.ID] = org
	s.byName[key] = org.ID
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id domain.OrganizationID) (Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if org, ok := s.byID[id]; ok {
		return org, nil
	}
	return Organization{}, sentinel.ErrNotFound
}

func (s *MemoryStore) FindByName(_ context.Context, normalizedName string) (Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.byName[normalizedName]; ok {
		return s.byID[id], nil
	}
	return Organization{}, sentinel.ErrNotFound
}

func (s *MemoryStore) Update(_ context.Context, org Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.byID[org.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byName, NormalizeName(current.Name))
	s.byID[org.ID] = org
	s.byName[NormalizeName(org.Name)] = org.ID
	return nil
}
