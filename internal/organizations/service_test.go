package organizations

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petconnect/internal/events"
	"petconnect/internal/platform/metrics"
	"petconnect/internal/uow"
	"petconnect/pkg/domain"
	dErrors "petconnect/pkg/domain-errors"
)

func newOrganizationsService(t *testing.T) (*Service, *MemoryStore) {
	t.Helper()
	log := zerolog.Nop()
	m := metrics.New(prometheus.NewRegistry())
	store := NewMemoryStore()
	runner := uow.NewRunner(uow.NewMemorySessionFactory(store), events.NewBus(log, m), log, m)
	return NewService(store, runner, log), store
}

func TestCreateOrganization(t *testing.T) {
	svc, _ := newOrganizationsService(t)
	owner := domain.NewAccountID()

	org, err := svc.Create(context.Background(), owner, "Happy Paws ", "Shelter in Lisbon")
	require.NoError(t, err)
	assert.Equal(t, "Happy Paws", org.Name)
	assert.Equal(t, StatusActive, org.Status)
	assert.Equal(t, owner, org.OwnerAccountID)
}

func TestCreateOrganizationNameUniqueAfterNormalisation(t *testing.T) {
	svc, _ := newOrganizationsService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.NewAccountID(), "Happy Paws", "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.NewAccountID(), "  happy   PAWS ", "")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestCreateOrganizationRejectsEmptyName(t *testing.T) {
	svc, _ := newOrganizationsService(t)

	_, err := svc.Create(context.Background(), domain.NewAccountID(), "  ", "")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestStatusTransitions(t *testing.T) {
	svc, _ := newOrganizationsService(t)
	ctx := context.Background()
	owner := domain.NewAccountID()

	org, err := svc.Create(ctx, owner, "Happy Paws", "")
	require.NoError(t, err)

	// deactivate requires active
	org, err = svc.Deactivate(ctx, owner, org.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, org.Status)

	_, err = svc.Deactivate(ctx, owner, org.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	// reactivate requires inactive
	org, err = svc.Reactivate(ctx, owner, org.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, org.Status)

	_, err = svc.Reactivate(ctx, owner, org.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestStatusTransitionRequiresOwner(t *testing.T) {
	svc, _ := newOrganizationsService(t)
	ctx := context.Background()

	org, err := svc.Create(ctx, domain.NewAccountID(), "Happy Paws", "")
	require.NoError(t, err)

	_, err = svc.Deactivate(ctx, domain.NewAccountID(), org.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestTransitionUnknownOrganization(t *testing.T) {
	svc, _ := newOrganizationsService(t)

	_, err := svc.Deactivate(context.Background(), domain.NewAccountID(), domain.NewOrganizationID())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
