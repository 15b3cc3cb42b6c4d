package organizations

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"petconnect/internal/uow"
	"petconnect/pkg/domain"
	"petconnect/pkg/sentinel"
)

// Service implements organization management. Status transitions are guarded:
// deactivate requires active, reactivate requires inactive, and only the owner
// may change status.
type Service struct {
	store  Store
	runner *uow.Runner
	log    zerolog.Logger
}

func NewService(store Store, runner *uow.Runner, log zerolog.Logger) *Service {
	return &Service{
		store:  store,
		runner: runner,
		log:    log.With().Str("component", "organizations").Logger(),
	}
}

// Create registers a new active organization owned by owner.
func (s *Service) Create(ctx context.Context, owner domain.AccountID, name, description string) (Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Organization{}, ErrInvalidOrganizationData("name cannot be empty")
	}

	return uow.RunValue(ctx, s.runner, func(ctx context.Context) (Organization, error) {
		org := Organization{
			ID:             domain.NewOrganizationID(),
			OwnerAccountID: owner,
			Name:           name,
			Description:    strings.TrimSpace(description),
			Status:         StatusActive,
			CreatedAt:      time.Now().UTC(),
		}
		if err := s.store.Create(ctx, org); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return Organization{}, ErrNameTaken(name)
			}
			return Organization{}, err
		}
		s.log.Info().Str("organization_id", org.ID.String()).Msg("organization created")
		return org, nil
	})
}

// Get returns one organization.
func (s *Service) Get(ctx context.Context, id domain.OrganizationID) (Organization, error) {
	org, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Organization{}, ErrOrganizationNotFound(id)
		}
		return Organization{}, err
	}
	return org, nil
}

// Deactivate moves an active organization to inactive.
func (s *Service) Deactivate(ctx context.Context, actor domain.AccountID, id domain.OrganizationID) (Organization, error) {
	return s.transition(ctx, actor, id, StatusActive, StatusInactive)
}

// Reactivate moves an inactive organization back to active.
func (s *Service) Reactivate(ctx context.Context, actor domain.AccountID, id domain.OrganizationID) (Organization, error) {
	return s.transition(ctx, actor, id, StatusInactive, StatusActive)
}

func (s *Service) transition(ctx context.Context, actor domain.AccountID, id domain.OrganizationID, from, to Status) (Organization, error) {
	return uow.RunValue(ctx, s.runner, func(ctx context.Context) (Organization, error) {
		org, err := s.Get(ctx, id)
		if err != nil {
			return Organization{}, err
		}
		if org.OwnerAccountID != actor {
			return Organization{}, ErrNotOwner(id, actor)
		}
		if org.Status != from {
			return Organization{}, ErrAlreadyInStatus(id, to)
		}

		org.Status = to
		if err := s.store.Update(ctx, org); err != nil {
			return Organization{}, err
		}
		s.log.Info().
			Str("organization_id", id.String()).
			Str("status", string(to)).
			Msg("organization status changed")
		return org, nil
	})
}
