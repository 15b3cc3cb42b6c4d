// Package hash wraps bcrypt password hashing. bcrypt is CPU-bound, so both
// directions run on the background executor instead of the request path.
package hash

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"petconnect/internal/platform/background"
	dErrors "petconnect/pkg/domain-errors"
)

// Service hashes and verifies passwords.
type Service struct {
	cost int
	exec *background.Executor
}

// New builds the hashing service. cost <= 0 selects bcrypt.DefaultCost.
func New(cost int, exec *background.Executor) *Service {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{cost: cost, exec: exec}
}

// Hash derives a bcrypt hash from the plaintext password.
func (s *Service) Hash(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "password cannot be empty")
	}
	return background.Call(ctx, s.exec, func() (string, error) {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
		if err != nil {
			if errors.Is(err, bcrypt.ErrPasswordTooLong) {
				return "", dErrors.New(dErrors.CodeInvalidInput, "password is too long")
			}
			return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not hash password")
		}
		return string(hashed), nil
	})
}

// Verify reports whether password matches hash. A mismatch is a boolean
// outcome, not an error; errors mean the comparison itself could not run.
func (s *Service) Verify(ctx context.Context, password, hash string) (bool, error) {
	return background.Call(ctx, s.exec, func() (bool, error) {
		err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
		if err == nil {
			return true, nil
		}
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "could not verify password")
	})
}
