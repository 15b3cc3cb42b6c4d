// Package notify subscribes the outbound mail flows to the event bus. Every
// handler runs post-commit: it mints whatever token the mail needs, resolves
// the recipient and hands the message to the non-blocking scheduler.
package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"petconnect/internal/accounts"
	"petconnect/internal/donations"
	"petconnect/internal/email"
	"petconnect/internal/events"
	"petconnect/internal/pets"
	"petconnect/internal/profiles"
	"petconnect/internal/token"
	"petconnect/pkg/domain"
)

// Mailer reacts to domain events with outbound mail.
type Mailer struct {
	accounts     *accounts.Service
	tokens       *token.Service
	mails        *email.Scheduler
	frontendBase string
	log          zerolog.Logger
}

func NewMailer(accountSvc *accounts.Service, tokens *token.Service, mails *email.Scheduler, frontendBase string, log zerolog.Logger) *Mailer {
	return &Mailer{
		accounts:     accountSvc,
		tokens:       tokens,
		mails:        mails,
		frontendBase: frontendBase,
		log:          log.With().Str("component", "notify").Logger(),
	}
}

// Wire subscribes all handlers. Call before the bus is sealed.
func (m *Mailer) Wire(bus *events.Bus) {
	bus.Subscribe(profiles.KindProfileCreated, m.onProfileCreated)
	bus.Subscribe(accounts.KindResendVerificationMailRequest, m.onResendVerification)
	bus.Subscribe(accounts.KindPasswordResetRequest, m.onPasswordResetRequest)
	bus.Subscribe(accounts.KindAccountVerified, m.onAccountVerified)
	bus.Subscribe(pets.KindPetReunited, m.onPetReunited)
	bus.Subscribe(donations.KindDonationCompleted, m.onDonationCompleted)
}

func (m *Mailer) onProfileCreated(ctx context.Context, e events.Event) error {
	ev := e.(profiles.ProfileCreated)
	return m.sendVerificationMail(ctx, ev.AccountID, ev.Email)
}

func (m *Mailer) onResendVerification(ctx context.Context, e events.Event) error {
	ev := e.(accounts.ResendVerificationMailRequest)
	return m.sendVerificationMail(ctx, ev.AccountID, ev.Email)
}

func (m *Mailer) onPasswordResetRequest(ctx context.Context, e events.Event) error {
	ev := e.(accounts.PasswordResetRequest)
	resetToken, err := m.tokens.Encode(ctx, token.Data{AccountID: ev.AccountID, Type: token.TypeResetPassword})
	if err != nil {
		return fmt.Errorf("mint reset token: %w", err)
	}
	m.mails.Schedule(ev.Email,
		"Reset your Pet Connect password",
		fmt.Sprintf("Use the link below to choose a new password:\n\n%s/reset_password?token=%s\n\nIf you did not request this, ignore this mail.",
			m.frontendBase, resetToken))
	return nil
}

func (m *Mailer) onAccountVerified(_ context.Context, e events.Event) error {
	ev := e.(accounts.AccountVerified)
	m.mails.Schedule(ev.Email,
		"Welcome to Pet Connect",
		"Your account is verified. You can now report pets, apply for adoptions and support campaigns.")
	return nil
}

func (m *Mailer) onPetReunited(ctx context.Context, e events.Event) error {
	ev := e.(pets.PetReunited)
	account, err := m.accounts.GetByID(ctx, ev.ReporterAccountID)
	if err != nil {
		return fmt.Errorf("resolve reporter: %w", err)
	}
	m.mails.Schedule(account.Email,
		fmt.Sprintf("%s is back home!", ev.PetName),
		fmt.Sprintf("Great news: %s has been marked as reunited. Thank you for using Pet Connect.", ev.PetName))
	return nil
}

func (m *Mailer) onDonationCompleted(ctx context.Context, e events.Event) error {
	ev := e.(donations.DonationCompleted)
	if ev.DonorAccountID == nil {
		// Anonymous donation, nobody to thank.
		return nil
	}
	account, err := m.accounts.GetByID(ctx, *ev.DonorAccountID)
	if err != nil {
		return fmt.Errorf("resolve donor: %w", err)
	}
	m.mails.Schedule(account.Email,
		"Thank you for your donation",
		fmt.Sprintf("Your donation of %d.%02d to %q was received.",
			ev.AmountCents/100, ev.AmountCents%100, ev.CampaignTitle))
	return nil
}

func (m *Mailer) sendVerificationMail(ctx context.Context, accountID domain.AccountID, recipient string) error {
	verifyToken, err := m.tokens.Encode(ctx, token.Data{AccountID: accountID, Type: token.TypeVerifyAccount})
	if err != nil {
		return fmt.Errorf("mint verification token: %w", err)
	}
	m.mails.Schedule(recipient,
		"Verify your Pet Connect account",
		fmt.Sprintf("Confirm your email address to activate your account:\n\n%s/verify_account?token=%s",
			m.frontendBase, verifyToken))
	return nil
}
