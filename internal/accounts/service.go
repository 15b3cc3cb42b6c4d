package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"petconnect/internal/events"
	"petconnect/internal/platform/hash"
	"petconnect/internal/platform/metrics"
	"petconnect/internal/token"
	"petconnect/internal/uow"
	"petconnect/pkg/domain"
	"petconnect/pkg/sentinel"
)

// Service implements the account operations. Every state-changing operation
// expects to run inside an ambient unit of work; events it emits are buffered
// there and reach the bus only on commit.
type Service struct {
	store   Store
	hasher  *hash.Service
	tokens  *token.Service
	log     zerolog.Logger
	metrics *metrics.Metrics
}

func NewService(store Store, hasher *hash.Service, tokens *token.Service, log zerolog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:   store,
		hasher:  hasher,
		tokens:  tokens,
		log:     log.With().Str("component", "accounts").Logger(),
		metrics: m,
	}
}

// Create registers a new, unverified account. The email is normalised before
// any lookup so case and whitespace permutations collide on the same row.
func (s *Service) Create(ctx context.Context, email, password string) (Account, error) {
	email = NormalizeEmail(email)

	hashed, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return Account{}, err
	}

	account := Account{
		ID:           domain.NewAccountID(),
		Email:        email,
		PasswordHash: hashed,
		Verified:     false,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Create(ctx, account); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return Account{}, ErrEmailAlreadyRegistered(email)
		}
		return Account{}, err
	}

	s.metrics.AccountsCreated.Inc()
	s.log.Info().Str("account_id", account.ID.String()).Msg("account created")
	return account, nil
}

// GetByID returns one account.
func (s *Service) GetByID(ctx context.Context, id domain.AccountID) (Account, error) {
	account, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Account{}, ErrAccountNotFoundByID(id)
		}
		return Account{}, err
	}
	return account, nil
}

// Login checks credentials and mints an access token. The verified gate comes
// after the password check so an unverified caller learns the password was
// right before being told to verify.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)

	account, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", ErrAccountNotFoundByEmail(email)
		}
		return "", err
	}

	ok, err := s.hasher.Verify(ctx, password, account.PasswordHash)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrIncorrectLoginData(email)
	}
	if !account.Verified {
		return "", ErrAccountNotVerified(account.ID)
	}

	return s.tokens.Encode(ctx, token.Data{AccountID: account.ID, Type: token.TypeAccess})
}

// Verify flips the account to verified and emits AccountVerified. Verification
// is monotonic: a second attempt on the same account fails instead of
// re-emitting.
func (s *Service) Verify(ctx context.Context, verifyToken string) (Account, error) {
	data, err := s.tokens.DecodeExpect(ctx, verifyToken, token.TypeVerifyAccount)
	if err != nil {
		return Account{}, err
	}

	account, err := s.store.FindByID(ctx, data.AccountID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Account{}, ErrAccountNotFoundByID(data.AccountID)
		}
		return Account{}, err
	}
	if account.Verified {
		return Account{}, ErrAccountAlreadyVerified(account.ID, account.Email)
	}

	account.Verified = true
	if err := s.store.Update(ctx, account); err != nil {
		return Account{}, err
	}

	if err := uow.MustFrom(ctx).EmitEvent(AccountVerified{
		Meta:      events.NewMeta(account.ID.String()),
		AccountID: account.ID,
		Email:     account.Email,
	}); err != nil {
		return Account{}, err
	}

	s.metrics.AccountsVerified.Inc()
	s.log.Info().Str("account_id", account.ID.String()).Msg("account verified")
	return account, nil
}

// RequestPasswordReset emits a PasswordResetRequest for the account behind
// email. The reset token itself is minted by the mail handler after commit, so
// a rolled back request leaks nothing.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	account, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return ErrAccountNotFoundByEmail(email)
		}
		return err
	}

	return uow.MustFrom(ctx).EmitEvent(PasswordResetRequest{
		Meta:      events.NewMeta(""),
		AccountID: account.ID,
		Email:     account.Email,
	})
}

// ResetPassword replaces the password of the account named by a reset token.
func (s *Service) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	data, err := s.tokens.DecodeExpect(ctx, resetToken, token.TypeResetPassword)
	if err != nil {
		return err
	}

	account, err := s.store.FindByID(ctx, data.AccountID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return ErrAccountNotFoundByID(data.AccountID)
		}
		return err
	}

	hashed, err := s.hasher.Hash(ctx, newPassword)
	if err != nil {
		return err
	}
	account.PasswordHash = hashed

	if err := s.store.Update(ctx, account); err != nil {
		return err
	}
	s.log.Info().Str("account_id", account.ID.String()).Msg("password reset")
	return nil
}

// ResendVerification emits a ResendVerificationMailRequest for an unverified
// account.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	account, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return ErrAccountNotFoundByEmail(email)
		}
		return err
	}
	if account.Verified {
		return ErrAccountAlreadyVerified(account.ID, account.Email)
	}

	return uow.MustFrom(ctx).EmitEvent(ResendVerificationMailRequest{
		Meta:      events.NewMeta(""),
		AccountID: account.ID,
		Email:     account.Email,
	})
}
