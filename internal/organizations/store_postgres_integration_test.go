//go:build integration

package organizations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petconnect/pkg/domain"
	"petconnect/pkg/sentinel"
	"petconnect/pkg/testutil/containers"
)

func insertOwner(t *testing.T, pg *containers.PostgresContainer) domain.AccountID {
	t.Helper()
	owner := domain.NewAccountID()
	_, err := pg.DB.ExecContext(context.Background(),
		`INSERT INTO accounts (entity_id, email, password, verified, created_at) VALUES ($1, $2, $3, $4, $5)`,
		uuid.UUID(owner), uuid.NewString()+"@x.com", "hash", true, time.Now().UTC())
	require.NoError(t, err)
	return owner
}

func TestPostgresStoreNormalizedNameUniqueness(t *testing.T) {
	pg := containers.NewPostgresContainer(t, "../../migrations")
	store := NewPostgresStore(pg.DB)
	ctx := context.Background()

	owner := insertOwner(t, pg)
	org := Organization{
		ID:             domain.NewOrganizationID(),
		OwnerAccountID: owner,
		Name:           "Happy  Paws   Shelter",
		Status:         StatusActive,
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, store.Create(ctx, org))

	// The index folds case and collapses whitespace the same way NormalizeName
	// does, so a differently spaced spelling is a conflict.
	dup := Organization{
		ID:             domain.NewOrganizationID(),
		OwnerAccountID: owner,
		Name:           "HAPPY PAWS shelter",
		Status:         StatusActive,
		CreatedAt:      time.Now().UTC(),
	}
	assert.ErrorIs(t, store.Create(ctx, dup), sentinel.ErrConflict)

	found, err := store.FindByName(ctx, NormalizeName(" happy paws  SHELTER "))
	require.NoError(t, err)
	assert.Equal(t, org.ID, found.ID)
	assert.Equal(t, "Happy  Paws   Shelter", found.Name, "the stored spelling is preserved")

	_, err = store.FindByName(ctx, NormalizeName("no such org"))
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestPostgresStoreStatusTransitionPersists(t *testing.T) {
	pg := containers.NewPostgresContainer(t, "../../migrations")
	store := NewPostgresStore(pg.DB)
	ctx := context.Background()

	org := Organization{
		ID:             domain.NewOrganizationID(),
		OwnerAccountID: insertOwner(t, pg),
		Name:           "City Shelter",
		Status:         StatusActive,
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, store.Create(ctx, org))

	org.Status = StatusInactive
	require.NoError(t, store.Update(ctx, org))

	found, err := store.FindByID(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, found.Status)
	assert.False(t, found.Active())
}
