package organizations

import (
	"context"

	"petconnect/pkg/domain"
)

// Store persists organizations. Name uniqueness is checked against the
// normalised form; implementations return sentinel errors.
type Store interface {
	Create(ctx context.Context, org Organization) error
	FindByID(ctx context.Context, id domain.OrganizationID) (Organization, error)
	FindByName(ctx context.Context, normalizedName string) (Organization, error)
	Update(ctx context.Context, org Organization) error
}
