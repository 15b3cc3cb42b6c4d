package profiles

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"petconnect/internal/accounts"
	"petconnect/internal/events"
	"petconnect/internal/uow"
	"petconnect/pkg/domain"
	"petconnect/pkg/sentinel"
)

// Service implements registration and profile reads.
type Service struct {
	store    Store
	accounts *accounts.Service
	runner   *uow.Runner
	log      zerolog.Logger
}

func NewService(store Store, accountSvc *accounts.Service, runner *uow.Runner, log zerolog.Logger) *Service {
	return &Service{
		store:    store,
		accounts: accountSvc,
		runner:   runner,
		log:      log.With().Str("component", "profiles").Logger(),
	}
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// Register creates the account and its profile atomically and emits
// ProfileCreated. The event reaches the mail handler only after the whole
// registration committed, so a verification mail always names a persisted
// account.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Profile, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Profile{}, ErrInvalidProfileData("name cannot be empty")
	}

	return uow.RunValue(ctx, s.runner, func(ctx context.Context) (Profile, error) {
		account, err := s.accounts.Create(ctx, in.Email, in.Password)
		if err != nil {
			return Profile{}, err
		}

		profile := Profile{
			ID:        domain.NewProfileID(),
			AccountID: account.ID,
			Name:      name,
			Phone:     strings.TrimSpace(in.Phone),
			CreatedAt: time.Now().UTC(),
		}
		if err := s.store.Create(ctx, profile); err != nil {
			return Profile{}, err
		}

		if err := uow.MustFrom(ctx).EmitEvent(ProfileCreated{
			Meta:      events.NewMeta(""),
			ProfileID: profile.ID,
			AccountID: account.ID,
			Email:     account.Email,
			Name:      profile.Name,
		}); err != nil {
			return Profile{}, err
		}

		s.log.Info().
			Str("profile_id", profile.ID.String()).
			Str("account_id", account.ID.String()).
			Msg("profile registered")
		return profile, nil
	})
}

// GetByAccount returns the profile owned by accountID.
func (s *Service) GetByAccount(ctx context.Context, accountID domain.AccountID) (Profile, error) {
	profile, err := s.store.FindByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Profile{}, ErrProfileNotFound(accountID)
		}
		return Profile{}, err
	}
	return profile, nil
}
