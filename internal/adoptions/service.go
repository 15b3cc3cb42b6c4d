package adoptions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"petconnect/internal/events"
	"petconnect/internal/pets"
	"petconnect/internal/uow"
	"petconnect/pkg/domain"
	"petconnect/pkg/sentinel"
)

// Service implements the adoption application flows.
type Service struct {
	store  Store
	pets   *pets.Service
	runner *uow.Runner
	log    zerolog.Logger
}

func NewService(store Store, petSvc *pets.Service, runner *uow.Runner, log zerolog.Logger) *Service {
	return &Service{
		store:  store,
		pets:   petSvc,
		runner: runner,
		log:    log.With().Str("component", "adoptions").Logger(),
	}
}

// Apply files a pending application for an adoptable pet.
func (s *Service) Apply(ctx context.Context, applicant domain.AccountID, petID domain.PetID, message string) (Application, error) {
	return uow.RunValue(ctx, s.runner, func(ctx context.Context) (Application, error) {
		pet, err := s.pets.Get(ctx, petID)
		if err != nil {
			return Application{}, err
		}
		if pet.Status != pets.StatusAdoptable {
			return Application{}, pets.ErrPetNotAdoptable(petID, pet.Status)
		}

		app := Application{
			ID:                 domain.NewApplicationID(),
			PetID:              petID,
			ApplicantAccountID: applicant,
			Status:             StatusPending,
			Message:            strings.TrimSpace(message),
			CreatedAt:          time.Now().UTC(),
		}
		if err := s.store.Create(ctx, app); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return Application{}, ErrDuplicateApplication(petID, applicant)
			}
			return Application{}, err
		}

		if err := uow.MustFrom(ctx).EmitEvent(ApplicationReceived{
			Meta:               events.NewMeta(applicant.String()),
			ApplicationID:      app.ID,
			PetID:              petID,
			ApplicantAccountID: applicant,
		}); err != nil {
			return Application{}, err
		}

		s.log.Info().
			Str("application_id", app.ID.String()).
			Str("pet_id", petID.String()).
			Msg("adoption application received")
		return app, nil
	})
}

// Approve accepts one pending application: the pet becomes adopted, every
// other pending application for it is rejected, and one approved plus N
// rejected events leave the transaction together.
func (s *Service) Approve(ctx context.Context, actor domain.AccountID, id domain.ApplicationID) (Application, error) {
	return uow.RunValue(ctx, s.runner, func(ctx context.Context) (Application, error) {
		app, err := s.pending(ctx, id)
		if err != nil {
			return Application{}, err
		}

		pet, err := s.pets.MarkAdopted(ctx, app.PetID)
		if err != nil {
			return Application{}, err
		}

		siblings, err := s.store.ListPendingByPet(ctx, app.PetID)
		if err != nil {
			return Application{}, err
		}

		app.Status = StatusApproved
		if err := s.store.Update(ctx, app); err != nil {
			return Application{}, err
		}
		if err := uow.MustFrom(ctx).EmitEvent(ApplicationApproved{
			Meta:               events.NewMeta(actor.String()),
			ApplicationID:      app.ID,
			PetID:              app.PetID,
			PetName:            pet.Name,
			ApplicantAccountID: app.ApplicantAccountID,
		}); err != nil {
			return Application{}, err
		}

		for _, sibling := range siblings {
			if sibling.ID == app.ID {
				continue
			}
			sibling.Status = StatusRejected
			if err := s.store.Update(ctx, sibling); err != nil {
				return Application{}, err
			}
			if err := uow.MustFrom(ctx).EmitEvent(ApplicationRejected{
				Meta:               events.NewMeta(actor.String()),
				ApplicationID:      sibling.ID,
				PetID:              sibling.PetID,
				ApplicantAccountID: sibling.ApplicantAccountID,
			}); err != nil {
				return Application{}, err
			}
		}

		s.log.Info().
			Str("application_id", app.ID.String()).
			Int("rejected_siblings", len(siblings)-1).
			Msg("adoption application approved")
		return app, nil
	})
}

// Reject declines a pending application.
func (s *Service) Reject(ctx context.Context, actor domain.AccountID, id domain.ApplicationID) (Application, error) {
	return uow.RunValue(ctx, s.runner, func(ctx context.Context) (Application, error) {
		app, err := s.pending(ctx, id)
		if err != nil {
			return Application{}, err
		}

		app.Status = StatusRejected
		if err := s.store.Update(ctx, app); err != nil {
			return Application{}, err
		}
		if err := uow.MustFrom(ctx).EmitEvent(ApplicationRejected{
			Meta:               events.NewMeta(actor.String()),
			ApplicationID:      app.ID,
			PetID:              app.PetID,
			ApplicantAccountID: app.ApplicantAccountID,
		}); err != nil {
			return Application{}, err
		}
		return app, nil
	})
}

func (s *Service) pending(ctx context.Context, id domain.ApplicationID) (Application, error) {
	app, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Application{}, ErrApplicationNotFound(id)
		}
		return Application{}, err
	}
	if app.Status != StatusPending {
		return Application{}, ErrApplicationNotPending(id, app.Status)
	}
	return app, nil
}
