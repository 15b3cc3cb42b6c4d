package pets

import (
	"context"
	"sync"

	"petconnect/pkg/domain"
	"petconnect/pkg/sentinel"
)

type MemoryStore struct {
	mu   sync.RWMutex
	byID map[domain.PetID]Pet
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[domain.PetID]Pet)}
}

func (s *MemoryStore) Snapshot() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := make(map[domain.PetID]Pet, len(s.byID))
	for k, v := range s.byID {
		saved[k] = v
	}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.byID = saved
	}
}

func (s *MemoryStore) Create(_ context.Context, pet Pet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[pet.ID]; exists {
		return sentinel.ErrConflict
	}
	s.byID[pet.ID] = pet
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id domain.PetID) (Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if pet, ok := s.byID[id]; ok {
		return pet, nil
	}
	return Pet{}, sentinel.ErrNotFound
}

func (s *MemoryStore) Update(_ context.Context, pet Pet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[pet.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.byID[pet.ID] = pet
	return nil
}

// MemoryMediaStore is the in-process MediaStore used by tests and the
// no-database profile.
type MemoryMediaStore struct {
	mu    sync.RWMutex
	blobs map[string]memoryBlob
}

type memoryBlob struct {
	data        []byte
	contentType string
}

func NewMemoryMediaStore() *MemoryMediaStore {
	return &MemoryMediaStore{blobs: make(map[string]memoryBlob)}
}

func (s *MemoryMediaStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.blobs[key] = memoryBlob{data: buf, contentType: contentType}
	return nil
}

func (s *MemoryMediaStore) Get(_ context.Context, key string) ([]byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, "", sentinel.ErrNotFound
	}
	return blob.data, blob.contentType, nil
}
