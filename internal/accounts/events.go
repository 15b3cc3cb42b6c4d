package accounts

import (
	"petconnect/internal/events"
	"petconnect/pkg/domain"
)

// Event kinds owned by the accounts context.
const (
	KindAccountVerified               events.Kind = "AccountVerified"
	KindPasswordResetRequest          events.Kind = "PasswordResetRequest"
	KindResendVerificationMailRequest events.Kind = "ResendVerificationMailRequest"
)

// AccountVerified records a successful verification.
type AccountVerified struct {
	events.Meta
	AccountID domain.AccountID
	Email     string
}

func (AccountVerified) EventKind() events.Kind { return KindAccountVerified }

// PasswordResetRequest asks for a reset mail to be produced for Email.
type PasswordResetRequest struct {
	events.Meta
	AccountID domain.AccountID
	Email     string
}

func (PasswordResetRequest) EventKind() events.Kind { return KindPasswordResetRequest }

// ResendVerificationMailRequest asks for the verification mail to be sent
// again.
type ResendVerificationMailRequest struct {
	events.Meta
	AccountID domain.AccountID
	Email     string
}

func (ResendVerificationMailRequest) EventKind() events.Kind {
	return KindResendVerificationMailRequest
}
