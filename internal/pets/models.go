// Package pets tracks lost, found and adoptable animals. A pet is reported by
// an account, optionally on behalf of an organization, and moves through a
// small status machine until it is reunited or adopted.
package pets

import (
	"time"

	"petconnect/pkg/domain"
)

// Status is the pet lifecycle state.
type Status string

const (
	StatusLost      Status = "lost"
	StatusFound     Status = "found"
	StatusReunited  Status = "reunited"
	StatusAdoptable Status = "adoptable"
	StatusAdopted   Status = "adopted"
)

// reportableStatuses are the states a pet may be created in. Reunited and
// adopted are terminal outcomes, never starting points.
var reportableStatuses = map[Status]bool{
	StatusLost:      true,
	StatusFound:     true,
	StatusAdoptable: true,
}

// Pet is one reported animal. OrganizationID is set when a shelter reported
// it; PhotoKey names the stored photo in the media store, empty when none was
// uploaded.
type Pet struct {
	ID                domain.PetID
	ReporterAccountID domain.AccountID
	OrganizationID    *domain.OrganizationID
	Name              string
	Species           string
	Status            Status
	Description       string
	PhotoKey          string
	CreatedAt         time.Time
}
