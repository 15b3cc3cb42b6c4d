package adoptions

import (
	"context"

	"petconnect/pkg/domain"
)

// Store persists applications; implementations return sentinel errors.
type Store interface {
	Create(ctx context.Context, app Application) error
	FindByID(ctx context.Context, id domain.ApplicationID) (Application, error)
	// ListPendingByPet returns pending applications for a pet in creation
	// order.
	ListPendingByPet(ctx context.Context, petID domain.PetID) ([]Application, error)
	Update(ctx context.Context, app Application) error
}
