package pets

import (
	"petconnect/internal/events"
	"petconnect/pkg/domain"
)

// KindPetReunited names the happy-end fact for a lost or found pet.
const KindPetReunited events.Kind = "PetReunited"

// PetReunited records that a pet went back to its owner. The mail handler
// congratulates the reporter.
type PetReunited struct {
	events.Meta
	PetID             domain.PetID
	PetName           string
	ReporterAccountID domain.AccountID
}

func (PetReunited) EventKind() events.Kind { return KindPetReunited }
