// Package profiles owns user profiles and the registration use-case that
// creates an account together with its profile in one unit of work.
package profiles

import (
	"time"

	"petconnect/pkg/domain"
)

// Profile is the public identity attached to an account.
type Profile struct {
	ID        domain.ProfileID
	AccountID domain.AccountID
	Name      string
	Phone     string
	CreatedAt time.Time
}
