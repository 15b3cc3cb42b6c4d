package pets

import (
	"petconnect/pkg/domain"
	dErrors "petconnect/pkg/domain-errors"
)

func ErrPetNotFound(id domain.PetID) error {
	return dErrors.New(dErrors.CodeNotFound, "pet not found").
		WithField("pet_id", id.String())
}

func ErrInvalidPetData(reason string) error {
	return dErrors.New(dErrors.CodeInvalidInput, "invalid pet data").
		WithField("reason", reason)
}

func ErrNotReporter(id domain.PetID, actor domain.AccountID) error {
	return dErrors.New(dErrors.CodeForbidden, "account did not report this pet").
		WithField("pet_id", id.String()).
		WithField("account_id", actor.String())
}

func ErrPetNotReunitable(id domain.PetID, status Status) error {
	return dErrors.New(dErrors.CodeBadRequest, "pet cannot be marked reunited in its current status").
		WithField("pet_id", id.String()).
		WithField("status", string(status))
}

func ErrPetNotAdoptable(id domain.PetID, status Status) error {
	return dErrors.New(dErrors.CodeBadRequest, "pet is not adoptable").
		WithField("pet_id", id.String()).
		WithField("status", string(status))
}
