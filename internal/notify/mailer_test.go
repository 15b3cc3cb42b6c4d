package notify

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petconnect/internal/accounts"
	"petconnect/internal/donations"
	"petconnect/internal/email"
	"petconnect/internal/events"
	"petconnect/internal/pets"
	"petconnect/internal/platform/background"
	"petconnect/internal/platform/hash"
	"petconnect/internal/platform/metrics"
	"petconnect/internal/profiles"
	"petconnect/internal/token"
	"petconnect/internal/uow"
	"petconnect/pkg/domain"
)

type mailerFixture struct {
	bus      *events.Bus
	mails    *email.Scheduler
	tokens   *token.Service
	accounts *accounts.Service
	runner   *uow.Runner
}

func newMailerFixture(t *testing.T) *mailerFixture {
	t.Helper()

	log := zerolog.Nop()
	m := metrics.New(prometheus.NewRegistry())
	exec := background.New(4, log)
	tokens, err := token.New("test-secret", "HS256", time.Minute, exec)
	require.NoError(t, err)

	accountsStore := accounts.NewMemoryStore()
	bus := events.NewBus(log, m)
	runner := uow.NewRunner(uow.NewMemorySessionFactory(accountsStore), bus, log, m)
	accountSvc := accounts.NewService(accountsStore, hash.New(4, exec), tokens, log, m)

	mails := email.NewScheduler(email.NewLogBackend("noreply@petconnect.test", log), exec, log, m)
	NewMailer(accountSvc, tokens, mails, "https://app.petconnect.test", log).Wire(bus)
	bus.Seal()

	return &mailerFixture{bus: bus, mails: mails, tokens: tokens, accounts: accountSvc, runner: runner}
}

func (f *mailerFixture) account(t *testing.T, emailAddr string) accounts.Account {
	t.Helper()
	account, err := uow.RunValue(context.Background(), f.runner, func(ctx context.Context) (accounts.Account, error) {
		return f.accounts.Create(ctx, emailAddr, "pw")
	})
	require.NoError(t, err)
	return account
}

// scheduledMails reads the scheduler cache, which Schedule fills synchronously.
func (f *mailerFixture) scheduledMails(t *testing.T, n int) []email.Data {
	t.Helper()
	recent := f.mails.Recent()
	require.Len(t, recent, n)
	return recent
}

func TestProfileCreatedSendsVerificationMail(t *testing.T) {
	f := newMailerFixture(t)
	accountID := domain.NewAccountID()

	err := f.bus.Publish(context.Background(), []events.Event{profiles.ProfileCreated{
		Meta:      events.NewMeta(""),
		ProfileID: domain.NewProfileID(),
		AccountID: accountID,
		Email:     "jane@x.com",
		Name:      "Jane",
	}})
	require.NoError(t, err)

	mails := f.scheduledMails(t, 1)
	assert.Equal(t, "jane@x.com", mails[0].Recipient)
	assert.Contains(t, mails[0].Subject, "Verify")

	// The embedded token must decode as a verification token for this account.
	raw := extractToken(t, mails[0].Body)
	data, err := f.tokens.DecodeExpect(context.Background(), raw, token.TypeVerifyAccount)
	require.NoError(t, err)
	assert.Equal(t, accountID, data.AccountID)
}

func TestPasswordResetRequestSendsResetMail(t *testing.T) {
	f := newMailerFixture(t)
	accountID := domain.NewAccountID()

	err := f.bus.Publish(context.Background(), []events.Event{accounts.PasswordResetRequest{
		Meta:      events.NewMeta(""),
		AccountID: accountID,
		Email:     "jane@x.com",
	}})
	require.NoError(t, err)

	mails := f.scheduledMails(t, 1)
	assert.Contains(t, mails[0].Subject, "Reset")

	raw := extractToken(t, mails[0].Body)
	data, err := f.tokens.DecodeExpect(context.Background(), raw, token.TypeResetPassword)
	require.NoError(t, err)
	assert.Equal(t, accountID, data.AccountID)
}

func TestResendVerificationSendsVerificationMail(t *testing.T) {
	f := newMailerFixture(t)

	err := f.bus.Publish(context.Background(), []events.Event{accounts.ResendVerificationMailRequest{
		Meta:      events.NewMeta(""),
		AccountID: domain.NewAccountID(),
		Email:     "jane@x.com",
	}})
	require.NoError(t, err)

	mails := f.scheduledMails(t, 1)
	assert.Contains(t, mails[0].Subject, "Verify")
}

func TestAccountVerifiedSendsWelcomeMail(t *testing.T) {
	f := newMailerFixture(t)

	err := f.bus.Publish(context.Background(), []events.Event{accounts.AccountVerified{
		Meta:      events.NewMeta(""),
		AccountID: domain.NewAccountID(),
		Email:     "jane@x.com",
	}})
	require.NoError(t, err)

	mails := f.scheduledMails(t, 1)
	assert.Contains(t, mails[0].Subject, "Welcome")
}

func TestPetReunitedMailsReporter(t *testing.T) {
	f := newMailerFixture(t)
	reporter := f.account(t, "reporter@x.com")

	err := f.bus.Publish(context.Background(), []events.Event{pets.PetReunited{
		Meta:              events.NewMeta(reporter.ID.String()),
		PetID:             domain.NewPetID(),
		PetName:           "Rex",
		ReporterAccountID: reporter.ID,
	}})
	require.NoError(t, err)

	mails := f.scheduledMails(t, 1)
	assert.Equal(t, "reporter@x.com", mails[0].Recipient)
	assert.Contains(t, mails[0].Subject, "Rex")
}

func TestPetReunitedUnknownReporterFailsHandler(t *testing.T) {
	f := newMailerFixture(t)

	err := f.bus.Publish(context.Background(), []events.Event{pets.PetReunited{
		Meta:              events.NewMeta(""),
		PetID:             domain.NewPetID(),
		PetName:           "Rex",
		ReporterAccountID: domain.NewAccountID(),
	}})
	assert.Error(t, err)
	assert.Empty(t, f.mails.Recent())
}

func TestDonationCompletedThanksKnownDonor(t *testing.T) {
	f := newMailerFixture(t)
	donor := f.account(t, "donor@x.com")

	err := f.bus.Publish(context.Background(), []events.Event{donations.DonationCompleted{
		Meta:           events.NewMeta(donor.ID.String()),
		DonationID:     domain.NewDonationID(),
		CampaignID:     domain.NewCampaignID(),
		CampaignTitle:  "Winter shelter fund",
		DonorAccountID: &donor.ID,
		AmountCents:    2_550,
	}})
	require.NoError(t, err)

	mails := f.scheduledMails(t, 1)
	assert.Equal(t, "donor@x.com", mails[0].Recipient)
	assert.Contains(t, mails[0].Body, "25.50")
	assert.Contains(t, mails[0].Body, "Winter shelter fund")
}

func TestDonationCompletedAnonymousSendsNothing(t *testing.T) {
	f := newMailerFixture(t)

	err := f.bus.Publish(context.Background(), []events.Event{donations.DonationCompleted{
		Meta:          events.NewMeta(""),
		DonationID:    domain.NewDonationID(),
		CampaignID:    domain.NewCampaignID(),
		CampaignTitle: "Winter shelter fund",
		AmountCents:   1_000,
	}})
	require.NoError(t, err)
	assert.Empty(t, f.mails.Recent())
}

func extractToken(t *testing.T, body string) string {
	t.Helper()
	i := strings.Index(body, "token=")
	require.NotEqual(t, -1, i, "mail body carries no token link: %q", body)
	raw := body[i+len("token="):]
	if j := strings.IndexAny(raw, " \n"); j != -1 {
		raw = raw[:j]
	}
	return raw
}
