package adoptions

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petconnect/internal/events"
	"petconnect/internal/organizations"
	"petconnect/internal/pets"
	"petconnect/internal/platform/background"
	"petconnect/internal/platform/metrics"
	"petconnect/internal/uow"
	"petconnect/pkg/domain"
	dErrors "petconnect/pkg/domain-errors"
)

type adoptionsFixture struct {
	svc  *Service
	pets *pets.Service
	bus  *events.Bus
}

func newAdoptionsFixture(t *testing.T) *adoptionsFixture {
	t.Helper()
	log := zerolog.Nop()
	m := metrics.New(prometheus.NewRegistry())
	exec := background.New(4, log)

	appStore := NewMemoryStore()
	petStore := pets.NewMemoryStore()
	orgStore := organizations.NewMemoryStore()
	bus := events.NewBus(log, m)
	runner := uow.NewRunner(uow.NewMemorySessionFactory(appStore, petStore, orgStore), bus, log, m)

	orgSvc := organizations.NewService(orgStore, runner, log)
	petSvc := pets.NewService(petStore, orgSvc, pets.NewMemoryMediaStore(), exec, runner, log)
	svc := NewService(appStore, petSvc, runner, log)

	return &adoptionsFixture{svc: svc, pets: petSvc, bus: bus}
}

func (f *adoptionsFixture) adoptablePet(t *testing.T) pets.Pet {
	t.Helper()
	pet, err := f.pets.Report(context.Background(), pets.ReportInput{
		Reporter: domain.NewAccountID(),
		Name:     "Rex",
		Species:  "dog",
		Status:   pets.StatusAdoptable,
	})
	require.NoError(t, err)
	return pet
}

func TestApplyForAdoptablePet(t *testing.T) {
	f := newAdoptionsFixture(t)
	ctx := context.Background()

	var received []ApplicationReceived
	f.bus.Subscribe(KindApplicationReceived, func(_ context.Context, e events.Event) error {
		received = append(received, e.(ApplicationReceived))
		return nil
	})

	pet := f.adoptablePet(t)
	applicant := domain.NewAccountID()

	app, err := f.svc.Apply(ctx, applicant, pet.ID, "we have a garden")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, app.Status)

	require.Len(t, received, 1)
	assert.Equal(t, app.ID, received[0].ApplicationID)
}

func TestApplyGuards(t *testing.T) {
	f := newAdoptionsFixture(t)
	ctx := context.Background()
	applicant := domain.NewAccountID()

	_, err := f.svc.Apply(ctx, applicant, domain.NewPetID(), "")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	lost, err := f.pets.Report(ctx, pets.ReportInput{
		Reporter: domain.NewAccountID(), Name: "Rex", Species: "dog", Status: pets.StatusLost,
	})
	require.NoError(t, err)
	_, err = f.svc.Apply(ctx, applicant, lost.ID, "")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest), "lost pets are not adoptable")

	pet := f.adoptablePet(t)
	_, err = f.svc.Apply(ctx, applicant, pet.ID, "")
	require.NoError(t, err)
	_, err = f.svc.Apply(ctx, applicant, pet.ID, "again")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestApproveAdoptsPetAndRejectsSiblings(t *testing.T) {
	f := newAdoptionsFixture(t)
	ctx := context.Background()

	var approved []ApplicationApproved
	var rejected []ApplicationRejected
	f.bus.Subscribe(KindApplicationApproved, func(_ context.Context, e events.Event) error {
		approved = append(approved, e.(ApplicationApproved))
		return nil
	})
	f.bus.Subscribe(KindApplicationRejected, func(_ context.Context, e events.Event) error {
		rejected = append(rejected, e.(ApplicationRejected))
		return nil
	})

	pet := f.adoptablePet(t)
	winner, err := f.svc.Apply(ctx, domain.NewAccountID(), pet.ID, "")
	require.NoError(t, err)
	loser, err := f.svc.Apply(ctx, domain.NewAccountID(), pet.ID, "")
	require.NoError(t, err)

	owner := domain.NewAccountID()
	app, err := f.svc.Approve(ctx, owner, winner.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, app.Status)

	adopted, err := f.pets.Get(ctx, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, pets.StatusAdopted, adopted.Status)

	require.Len(t, approved, 1)
	assert.Equal(t, winner.ID, approved[0].ApplicationID)
	assert.Equal(t, "Rex", approved[0].PetName)
	require.Len(t, rejected, 1)
	assert.Equal(t, loser.ID, rejected[0].ApplicationID)

	// Another approval on the rejected sibling must fail: it is not pending.
	_, err = f.svc.Approve(ctx, owner, loser.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestRejectPendingApplication(t *testing.T) {
	f := newAdoptionsFixture(t)
	ctx := context.Background()

	pet := f.adoptablePet(t)
	app, err := f.svc.Apply(ctx, domain.NewAccountID(), pet.ID, "")
	require.NoError(t, err)

	app, err = f.svc.Reject(ctx, domain.NewAccountID(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, app.Status)

	// Pet stays adoptable after a plain rejection.
	current, err := f.pets.Get(ctx, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, pets.StatusAdoptable, current.Status)

	_, err = f.svc.Reject(ctx, domain.NewAccountID(), app.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestApproveUnknownApplication(t *testing.T) {
	f := newAdoptionsFixture(t)

	_, err := f.svc.Approve(context.Background(), domain.NewAccountID(), domain.NewApplicationID())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
