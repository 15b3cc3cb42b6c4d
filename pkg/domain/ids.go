// Package domain holds the typed identifiers shared by every bounded context.
// IDs are distinct types over uuid.UUID so the compiler rejects cross-context
// assignment (a PetID can never be passed where an AccountID is expected).
package domain

import (
	"github.com/google/uuid"

	dErrors "petconnect/pkg/domain-errors"
)

type (
	// AccountID identifies a login account.
	AccountID uuid.UUID
	// ProfileID identifies a user profile.
	ProfileID uuid.UUID
	// OrganizationID identifies a shelter or NGO.
	OrganizationID uuid.UUID
	// PetID identifies a reported or adoptable pet.
	PetID uuid.UUID
	// ApplicationID identifies an adoption application.
	ApplicationID uuid.UUID
	// CampaignID identifies a donation campaign.
	CampaignID uuid.UUID
	// DonationID identifies a single donation.
	DonationID uuid.UUID
)

func (id AccountID) String() string      { return uuid.UUID(id).String() }
func (id ProfileID) String() string      { return uuid.UUID(id).String() }
func (id OrganizationID) String() string { return uuid.UUID(id).String() }
func (id PetID) String() string          { return uuid.UUID(id).String() }
func (id ApplicationID) String() string  { return uuid.UUID(id).String() }
func (id CampaignID) String() string     { return uuid.UUID(id).String() }
func (id DonationID) String() string     { return uuid.UUID(id).String() }

func (id AccountID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id OrganizationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id PetID) IsNil() bool          { return uuid.UUID(id) == uuid.Nil }

// NewAccountID returns a fresh random account identifier.
func NewAccountID() AccountID { return AccountID(uuid.New()) }

func NewProfileID() ProfileID           { return ProfileID(uuid.New()) }
func NewOrganizationID() OrganizationID { return OrganizationID(uuid.New()) }
func NewPetID() PetID                   { return PetID(uuid.New()) }
func NewApplicationID() ApplicationID   { return ApplicationID(uuid.New()) }
func NewCampaignID() CampaignID         { return CampaignID(uuid.New()) }
func NewDonationID() DonationID         { return DonationID(uuid.New()) }

// parseUUID enforces the parsing invariant at trust boundaries: IDs must be
// valid, non-empty, non-nil UUIDs.
func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+what)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" cannot be nil")
	}
	return u, nil
}

// ParseAccountID constructs an AccountID from external input.
func ParseAccountID(s string) (AccountID, error) {
	u, err := parseUUID(s, "account id")
	return AccountID(u), err
}

func ParseProfileID(s string) (ProfileID, error) {
	u, err := parseUUID(s, "profile id")
	return ProfileID(u), err
}

func ParseOrganizationID(s string) (OrganizationID, error) {
	u, err := parseUUID(s, "organization id")
	return OrganizationID(u), err
}

func ParsePetID(s string) (PetID, error) {
	u, err := parseUUID(s, "pet id")
	return PetID(u), err
}

func ParseApplicationID(s string) (ApplicationID, error) {
	u, err := parseUUID(s, "application id")
	return ApplicationID(u), err
}

func ParseCampaignID(s string) (CampaignID, error) {
	u, err := parseUUID(s, "campaign id")
	return CampaignID(u), err
}

func ParseDonationID(s string) (DonationID, error) {
	u, err := parseUUID(s, "donation id")
	return DonationID(u), err
}
