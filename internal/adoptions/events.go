package adoptions

import (
	"petconnect/internal/events"
	"petconnect/pkg/domain"
)

const (
	KindApplicationReceived events.Kind = "AdoptionApplicationReceived"
	KindApplicationApproved events.Kind = "AdoptionApplicationApproved"
	KindApplicationRejected events.Kind = "AdoptionApplicationRejected"
)

// ApplicationReceived records a new pending application.
type ApplicationReceived struct {
	events.Meta
	ApplicationID      domain.ApplicationID
	PetID              domain.PetID
	ApplicantAccountID domain.AccountID
}

func (ApplicationReceived) EventKind() events.Kind { return KindApplicationReceived }

// ApplicationApproved records a successful adoption.
type ApplicationApproved struct {
	events.Meta
	ApplicationID      domain.ApplicationID
	PetID              domain.PetID
	PetName            string
	ApplicantAccountID domain.AccountID
}

func (ApplicationApproved) EventKind() events.Kind { return KindApplicationApproved }

// ApplicationRejected records a rejection, explicit or as a side effect of a
// sibling application being approved.
type ApplicationRejected struct {
	events.Meta
	ApplicationID      domain.ApplicationID
	PetID              domain.PetID
	ApplicantAccountID domain.AccountID
}

func (ApplicationRejected) EventKind() events.Kind { return KindApplicationRejected }
