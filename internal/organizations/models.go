// Package organizations manages shelters and welfare NGOs: named entities
// owned by an account, with an activation status gate on everything that
// references them.
package organizations

import (
	"strings"
	"time"

	"petconnect/pkg/domain"
)

// Status is the organization lifecycle state.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Organization is a shelter or NGO profile. Name is unique after
// normalisation.
type Organization struct {
	ID             domain.OrganizationID
	OwnerAccountID domain.AccountID
	Name           string
	Description    string
	Status         Status
	CreatedAt      time.Time
}

// Active reports whether the organization may be referenced by new pets and
// campaigns.
func (o Organization) Active() bool { return o.Status == StatusActive }

// NormalizeName folds an organization name for uniqueness checks.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
