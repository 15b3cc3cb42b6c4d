package profiles

import (
	"petconnect/pkg/domain"
	dErrors "petconnect/pkg/domain-errors"
)

func ErrProfileNotFound(accountID domain.AccountID) error {
	return dErrors.New(dErrors.CodeNotFound, "profile not found").
		WithField("account_id", accountID.String())
}

func ErrInvalidProfileData(reason string) error {
	return dErrors.New(dErrors.CodeInvalidInput, "invalid profile data").
		WithField("reason", reason)
}
