package profiles

import (
	"context"

	"petconnect/pkg/domain"
)

// Store persists profiles. Implementations return sentinel errors; the service
// translates them.
type Store interface {
	Create(ctx context.Context, profile Profile) error
	FindByAccount(ctx context.Context, accountID domain.AccountID) (Profile, error)
}
