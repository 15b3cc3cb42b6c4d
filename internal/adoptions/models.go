// Package adoptions handles adoption applications for adoptable pets.
// Applications start pending; approval adopts the pet and rejects every other
// pending application for it in the same transaction.
package adoptions

import (
	"time"

	"petconnect/pkg/domain"
)

// Status is the application state. Transitions happen only out of pending.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Application is one request to adopt a pet.
type Application struct {
	ID                 domain.ApplicationID
	PetID              domain.PetID
	ApplicantAccountID domain.AccountID
	Status             Status
	Message            string
	CreatedAt          time.Time
}
