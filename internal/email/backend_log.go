package email

import (
	"context"

	"github.com/rs/zerolog"
)

// LogBackend writes mails to the log instead of delivering them. Used by the
// test profile and local development.
type LogBackend struct {
	sender string
	log    zerolog.Logger
}

func NewLogBackend(sender string, log zerolog.Logger) *LogBackend {
	return &LogBackend{sender: sender, log: log.With().Str("component", "email-log").Logger()}
}

func (b *LogBackend) SenderAddress() string { return b.sender }

func (b *LogBackend) SendBlocking(_ context.Context, mail Data) error {
	b.log.Info().
		Str("recipient", mail.Recipient).
		Str("subject", mail.Subject).
		Msg("email (log backend)")
	return nil
}
