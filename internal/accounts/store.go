package accounts

import (
	"context"

	"petconnect/pkg/domain"
)

// Store persists accounts. Implementations return sentinel errors
// (sentinel.ErrNotFound, sentinel.ErrConflict); the service translates them
// into domain errors. Callers pass emails already normalised.
type Store interface {
	Create(ctx context.Context, account Account) error
	FindByEmail(ctx context.Context, email string) (Account, error)
	FindByID(ctx context.Context, id domain.AccountID) (Account, error)
	Update(ctx context.Context, account Account) error
}
