// Package accounts owns login accounts: creation, verification, password
// reset, and login. Every mutating operation runs under an ambient unit of
// work and publishes its facts as deferred events.
package accounts

import (
	"strings"
	"time"

	"petconnect/pkg/domain"
)

// Account is the persisted login identity. Email is unique after
// normalisation; PasswordHash never holds a plaintext; Verified only ever
// transitions false → true.
type Account struct {
	ID           domain.AccountID
	Email        string
	PasswordHash string
	Verified     bool
	CreatedAt    time.Time
}

// NormalizeEmail folds an email to its canonical form. Every comparison and
// every write goes through this, so case and whitespace variants of one
// address always collide.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
