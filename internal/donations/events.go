package donations

import (
	"petconnect/internal/events"
	"petconnect/pkg/domain"
)

// KindDonationCompleted names a successfully collected donation.
const KindDonationCompleted events.Kind = "DonationCompleted"

// DonationCompleted records a collected donation. DonorAccountID is nil for
// anonymous donations; the thank-you mail handler skips those.
type DonationCompleted struct {
	events.Meta
	DonationID     domain.DonationID
	CampaignID     domain.CampaignID
	CampaignTitle  string
	DonorAccountID *domain.AccountID
	AmountCents    int64
}

func (DonationCompleted) EventKind() events.Kind { return KindDonationCompleted }
