// Package donations manages fundraising campaigns and the donations made to
// them. Charging happens through the payment gateway port inside the donation
// unit of work, so a failed charge leaves no donation row behind.
package donations

import (
	"time"

	"petconnect/pkg/domain"
)

// Campaign is one fundraising campaign owned by an organization. Amounts are
// integer cents.
type Campaign struct {
	ID             domain.CampaignID
	OrganizationID domain.OrganizationID
	Title          string
	Description    string
	GoalCents      int64
	RaisedCents    int64
	Active         bool
	CreatedAt      time.Time
}

// DonationStatus is the donation outcome.
type DonationStatus string

const (
	StatusPending   DonationStatus = "pending"
	StatusCompleted DonationStatus = "completed"
	StatusFailed    DonationStatus = "failed"
)

// Donation is one contribution. DonorAccountID is nil for anonymous
// donations; PaymentRef is the gateway's charge reference.
type Donation struct {
	ID             domain.DonationID
	CampaignID     domain.CampaignID
	DonorAccountID *domain.AccountID
	AmountCents    int64
	PaymentRef     string
	Status         DonationStatus
	CreatedAt      time.Time
}
