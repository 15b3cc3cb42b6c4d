package profiles

import (
	"petconnect/internal/events"
	"petconnect/pkg/domain"
)

// KindProfileCreated names the registration fact. The auth-side mail handler
// turns it into the verification email.
const KindProfileCreated events.Kind = "ProfileCreated"

// ProfileCreated records that a new account with a profile finished
// registration.
type ProfileCreated struct {
	events.Meta
	ProfileID domain.ProfileID
	AccountID domain.AccountID
	Email     string
	Name      string
}

func (ProfileCreated) EventKind() events.Kind { return KindProfileCreated }
