package donations

import (
	"context"
	"sync"

	"petconnect/pkg/domain"
	"petconnect/pkg/sentinel"
)

type MemoryStore struct {
	mu        sync.RWMutex
	campaigns map[domain.CampaignID]Campaign
	donations map[domain.DonationID]Donation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		campaigns: make(map[domain.CampaignID]Campaign),
		donations: make(map[domain.DonationID]Donation),
	}
}

func (s *MemoryStore) Snapshot() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	camps := make(map[domain.CampaignID]Campaign, len(s.campaigns))
	for k, v := range s.campaigns {
		camps[k] = v
	}
	dons := make(map[domain.DonationID]Donation, len(s.donations))
	for k, v := range s.donations {
		dons[k] = v
	}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.campaigns = camps
		s.donations = dons
	}
}

func (s *MemoryStore) CreateCampaign(_ context.Context, c Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.campaigns[c.ID]; exists {
		return sentinel.ErrConflict
	}
	s.campaigns[c.ID] = c
	return nil
}

func (s *MemoryStore) FindCampaign(_ context.Context, id domain.CampaignID) (Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.campaigns[id]; ok {
		return c, nil
	}
	return Campaign{}, sentinel.ErrNotFound
}

func (s *MemoryStore) IncrementRaised(_ context.Context, id domain.CampaignID, amountCents int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	c.RaisedCents += amountCents
	s.campaigns[id] = c
	return nil
}

func (s *MemoryStore) CreateDonation(_ context.Context, d Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.donations[d.ID]; exists {
		return sentinel.ErrConflict
	}
	s.donations[d.ID] = d
	return nil
}
