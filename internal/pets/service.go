package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"petconnect/internal/events"
	"petconnect/internal/organizations"
	"petconnect/internal/platform/background"
	"petconnect/internal/uow"
	"petconnect/pkg/domain"
	"petconnect/pkg/sentinel"
)

// Service implements pet reporting and the reunite flow.
type Service struct {
	store  Store
	orgs   *organizations.Service
	media  MediaStore
	exec   *background.Executor
	runner *uow.Runner
	log    zerolog.Logger
}

func NewService(store Store, orgs *organizations.Service, media MediaStore, exec *background.Executor, runner *uow.Runner, log zerolog.Logger) *Service {
	return &Service{
		store:  store,
		orgs:   orgs,
		media:  media,
		exec:   exec,
		runner: runner,
		log:    log.With().Str("component", "pets").Logger(),
	}
}

// ReportInput is the payload for reporting a pet.
type ReportInput struct {
	Reporter       domain.AccountID
	OrganizationID *domain.OrganizationID
	Name           string
	Species        string
	Status         Status
	Description    string
}

// Report registers a pet as lost, found or adoptable. When the report is filed
// on behalf of an organization, that organization must exist and be active.
func (s *Service) Report(ctx context.Context, in ReportInput) (Pet, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Pet{}, ErrInvalidPetData("name cannot be empty")
	}
	if strings.TrimSpace(in.Species) == "" {
		return Pet{}, ErrInvalidPetData("species cannot be empty")
	}
	if !reportableStatuses[in.Status] {
		return Pet{}, ErrInvalidPetData(fmt.Sprintf("status %q is not reportable", in.Status))
	}

	return uow.RunValue(ctx, s.runner, func(ctx context.Context) (Pet, error) {
		if in.OrganizationID != nil {
			org, err := s.orgs.Get(ctx, *in.OrganizationID)
			if err != nil {
				return Pet{}, err
			}
			if !org.Active() {
				return Pet{}, organizations.ErrOrganizationInactive(org.ID)
			}
		}

		pet := Pet{
			ID:                domain.NewPetID(),
			ReporterAccountID: in.Reporter,
			OrganizationID:    in.OrganizationID,
			Name:              name,
			Species:           strings.TrimSpace(in.Species),
			Status:            in.Status,
			Description:       strings.TrimSpace(in.Description),
			CreatedAt:         time.Now().UTC(),
		}
		if err := s.store.Create(ctx, pet); err != nil {
			return Pet{}, err
		}
		s.log.Info().
			Str("pet_id", pet.ID.String()).
			Str("status", string(pet.Status)).
			Msg("pet reported")
		return pet, nil
	})
}

// Get returns one pet.
func (s *Service) Get(ctx context.Context, id domain.PetID) (Pet, error) {
	pet, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Pet{}, ErrPetNotFound(id)
		}
		return Pet{}, err
	}
	return pet, nil
}

// AttachPhoto stores the photo blob and records its key on the pet. The
// blocking upload runs on the executor before the transactional update.
func (s *Service) AttachPhoto(ctx context.Context, actor domain.AccountID, id domain.PetID, data []byte, contentType string) (Pet, error) {
	if len(data) == 0 {
		return Pet{}, ErrInvalidPetData("photo cannot be empty")
	}

	pet, err := s.Get(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if pet.ReporterAccountID != actor {
		return Pet{}, ErrNotReporter(id, actor)
	}

	key := fmt.Sprintf("pets/%s/photo", id)
	err = s.exec.RunBlocking(ctx, func() error {
		return s.media.Put(context.WithoutCancel(ctx), key, data, contentType)
	})
	if err != nil {
		return Pet{}, fmt.Errorf("store pet photo: %w", err)
	}

	return uow.RunValue(ctx, s.runner, func(ctx context.Context) (Pet, error) {
		pet, err := s.Get(ctx, id)
		if err != nil {
			return Pet{}, err
		}
		pet.PhotoKey = key
		if err := s.store.Update(ctx, pet); err != nil {
			return Pet{}, err
		}
		return pet, nil
	})
}

// Reunite closes a lost or found report and emits PetReunited. Only the
// reporter may do this.
func (s *Service) Reunite(ctx context.Context, actor domain.AccountID, id domain.PetID) (Pet, error) {
	return uow.RunValue(ctx, s.runner, func(ctx context.Context) (Pet, error) {
		pet, err := s.Get(ctx, id)
		if err != nil {
			return Pet{}, err
		}
		if pet.ReporterAccountID != actor {
			return Pet{}, ErrNotReporter(id, actor)
		}
		if pet.Status != StatusLost && pet.Status != StatusFound {
			return Pet{}, ErrPetNotReunitable(id, pet.Status)
		}

		pet.Status = StatusReunited
		if err := s.store.Update(ctx, pet); err != nil {
			return Pet{}, err
		}

		if err := uow.MustFrom(ctx).EmitEvent(PetReunited{
			Meta:              events.NewMeta(actor.String()),
			PetID:             pet.ID,
			PetName:           pet.Name,
			ReporterAccountID: pet.ReporterAccountID,
		}); err != nil {
			return Pet{}, err
		}

		s.log.Info().Str("pet_id", pet.ID.String()).Msg("pet reunited")
		return pet, nil
	})
}

// MarkAdopted flips an adoptable pet to adopted. Called by the adoptions
// context inside its own unit of work.
func (s *Service) MarkAdopted(ctx context.Context, id domain.PetID) (Pet, error) {
	pet, err := s.Get(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if pet.Status != StatusAdoptable {
		return Pet{}, ErrPetNotAdoptable(id, pet.Status)
	}
	pet.Status = StatusAdopted
	if err := s.store.Update(ctx, pet); err != nil {
		return Pet{}, err
	}
	return pet, nil
}
