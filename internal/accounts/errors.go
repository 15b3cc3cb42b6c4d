package accounts

import (
	"petconnect/pkg/domain"
	dErrors "petconnect/pkg/domain-errors"
)

// Domain error kinds for the accounts context. Constructors attach the
// structured context the edge and the tests need; translation to HTTP status
// happens once, by code, in transport.

func ErrEmailAlreadyRegistered(email string) error {
	return dErrors.New(dErrors.CodeConflict, "email already registered").
		WithField("email", email)
}

func ErrIncorrectLoginData(email string) error {
	return dErrors.New(dErrors.CodeUnauthorized, "incorrect login data").
		WithField("email", email)
}

func ErrAccountNotFoundByEmail(email string) error {
	return dErrors.New(dErrors.CodeNotFound, "account not found").
		WithField("email", email)
}

func ErrAccountNotFoundByID(id domain.AccountID) error {
	return dErrors.New(dErrors.CodeNotFound, "account not found").
		WithField("account_id", id.String())
}

func ErrAccountNotVerified(id domain.AccountID) error {
	return dErrors.New(dErrors.CodeBadRequest, "account is not verified").
		WithField("account_id", id.String())
}

func ErrAccountAlreadyVerified(id domain.AccountID, email string) error {
	return dErrors.New(dErrors.CodeBadRequest, "account is already verified").
		WithField("account_id", id.String()).
		WithField("email", email)
}
