package organizations

import (
	"petconnect/pkg/domain"
	dErrors "petconnect/pkg/domain-errors"
)

func ErrNameTaken(name string) error {
	return dErrors.New(dErrors.CodeConflict, "organization name already taken").
		WithField("name", name)
}

func ErrOrganizationNotFound(id domain.OrganizationID) error {
	return dErrors.New(dErrors.CodeNotFound, "organization not found").
		WithField("organization_id", id.String())
}

func ErrNotOwner(id domain.OrganizationID, actor domain.AccountID) error {
	return dErrors.New(dErrors.CodeForbidden, "account does not own this organization").
		WithField("organization_id", id.String()).
		WithField("account_id", actor.String())
}

// ErrOrganizationInactive rejects references to an organization that is not
// currently active (new pets, new campaigns).
func ErrOrganizationInactive(id domain.OrganizationID) error {
	return dErrors.New(dErrors.CodeBadRequest, "organization is not active").
		WithField("organization_id", id.String())
}

func ErrAlreadyInStatus(id domain.OrganizationID, status Status) error {
	return dErrors.New(dErrors.CodeBadRequest, "organization is already in the requested status").
		WithField("organization_id", id.String()).
		WithField("status", string(status))
}

func ErrInvalidOrganizationData(reason string) error {
	return dErrors.New(dErrors.CodeInvalidInput, "invalid organization data").
		WithField("reason", reason)
}
