package adoptions

import (
	"petconnect/pkg/domain"
	dErrors "petconnect/pkg/domain-errors"
)

func ErrApplicationNotFound(id domain.ApplicationID) error {
	return dErrors.New(dErrors.CodeNotFound, "adoption application not found").
		WithField("application_id", id.String())
}

func ErrApplicationNotPending(id domain.ApplicationID, status Status) error {
	return dErrors.New(dErrors.CodeBadRequest, "adoption application is not pending").
		WithField("application_id", id.String()).
		WithField("status", string(status))
}

func ErrDuplicateApplication(petID domain.PetID, applicant domain.AccountID) error {
	return dErrors.New(dErrors.CodeConflict, "account already has a pending application for this pet").
		WithField("pet_id", petID.String()).
		WithField("account_id", applicant.String())
}
