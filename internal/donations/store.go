package donations

import (
	"context"

	"petconnect/pkg/domain"
)

// Store persists campaigns and donations; implementations return sentinel
// errors.
type Store interface {
	CreateCampaign(ctx context.Context, c Campaign) error
	FindCampaign(ctx context.Context, id domain.CampaignID) (Campaign, error)
	// IncrementRaised adds amountCents to the campaign's raised total in a
	// single atomic statement so concurrent donations never lose increments.
	IncrementRaised(ctx context.Context, id domain.CampaignID, amountCents int64) error
	CreateDonation(ctx context.Context, d Donation) error
}
