package donations

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petconnect/internal/events"
	"petconnect/internal/organizations"
	"petconnect/internal/platform/background"
	"petconnect/internal/platform/metrics"
	"petconnect/internal/uow"
	"petconnect/pkg/domain"
	dErrors "petconnect/pkg/domain-errors"
)

type fakeGateway struct {
	mu      sync.Mutex
	charges []ChargeRequest
	fail    error
}

func (g *fakeGateway) Charge(_ context.Context, req ChargeRequest) (ChargeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail != nil {
		return ChargeResult{}, g.fail
	}
	g.charges = append(g.charges, req)
	return ChargeResult{PaymentRef: fmt.Sprintf("ch_%03d", len(g.charges))}, nil
}

type fakeQR struct{}

func (fakeQR) Render(link string) ([]byte, error) {
	return []byte("QR:" + link), nil
}

// mapTotalsCache is the in-process TotalsCache used by tests.
type mapTotalsCache struct {
	mu     sync.Mutex
	totals map[domain.CampaignID]int64
}

func newMapTotalsCache() *mapTotalsCache {
	return &mapTotalsCache{totals: make(map[domain.CampaignID]int64)}
}

func (c *mapTotalsCache) Get(_ context.Context, id domain.CampaignID) (int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raised, ok := c.totals[id]
	return raised, ok, nil
}

func (c *mapTotalsCache) Set(_ context.Context, id domain.CampaignID, raisedCents int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totals[id] = raisedCents
	return nil
}

type donationsFixture struct {
	svc     *Service
	orgs    *organizations.Service
	store   *MemoryStore
	gateway *fakeGateway
	cache   *mapTotalsCache
	bus     *events.Bus
}

func newDonationsFixture(t *testing.T) *donationsFixture {
	t.Helper()
	log := zerolog.Nop()
	m := metrics.New(prometheus.NewRegistry())
	exec := background.New(4, log)

	store := NewMemoryStore()
	orgStore := organizations.NewMemoryStore()
	bus := events.NewBus(log, m)
	runner := uow.NewRunner(uow.NewMemorySessionFactory(store, orgStore), bus, log, m)

	orgs := organizations.NewService(orgStore, runner, log)
	gateway := &fakeGateway{}
	cache := newMapTotalsCache()
	svc := NewService(store, orgs, gateway, fakeQR{}, cache, exec, runner, "https://app.petconnect.test", log, m)

	return &donationsFixture{svc: svc, orgs: orgs, store: store, gateway: gateway, cache: cache, bus: bus}
}

func (f *donationsFixture) campaign(t *testing.T) Campaign {
	t.Helper()
	ctx := context.Background()
	owner := domain.NewAccountID()
	org, err := f.orgs.Create(ctx, owner, "Happy Paws", "")
	require.NoError(t, err)
	c, err := f.svc.CreateCampaign(ctx, owner, org.ID, "Winter shelter fund", "heating bills", 100_000)
	require.NoError(t, err)
	return c
}

func TestCreateCampaignGuards(t *testing.T) {
	f := newDonationsFixture(t)
	ctx := context.Background()
	owner := domain.NewAccountID()

	org, err := f.orgs.Create(ctx, owner, "Happy Paws", "")
	require.NoError(t, err)

	_, err = f.svc.CreateCampaign(ctx, owner, org.ID, " ", "", 100)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = f.svc.CreateCampaign(ctx, owner, org.ID, "Fund", "", 0)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = f.svc.CreateCampaign(ctx, domain.NewAccountID(), org.ID, "Fund", "", 100)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))

	_, err = f.orgs.Deactivate(ctx, owner, org.ID)
	require.NoError(t, err)
	_, err = f.svc.CreateCampaign(ctx, owner, org.ID, "Fund", "", 100)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestDonateRecordsAndEmits(t *testing.T) {
	f := newDonationsFixture(t)
	ctx := context.Background()

	var completed []DonationCompleted
	f.bus.Subscribe(KindDonationCompleted, func(_ context.Context, e events.Event) error {
		completed = append(completed, e.(DonationCompleted))
		return nil
	})

	c := f.campaign(t)
	donor := domain.NewAccountID()

	donation, err := f.svc.Donate(ctx, &donor, c.ID, 2_500)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, donation.Status)
	assert.NotEmpty(t, donation.PaymentRef)

	updated, err := f.svc.GetCampaign(ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2_500, updated.RaisedCents)

	require.Len(t, completed, 1)
	assert.Equal(t, donation.ID, completed[0].DonationID)
	require.NotNil(t, completed[0].DonorAccountID)
	assert.Equal(t, donor, *completed[0].DonorAccountID)
	assert.Equal(t, donor.String(), completed[0].Actor())

	// Write-through: the cache already carries the committed total.
	raised, hit, err := f.cache.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.EqualValues(t, 2_500, raised)

	require.Len(t, f.gateway.charges, 1)
	assert.Equal(t, donation.ID.String(), f.gateway.charges[0].Reference)
}

func TestConcurrentDonationsAccumulate(t *testing.T) {
	f := newDonationsFixture(t)
	ctx := context.Background()
	c := f.campaign(t)

	const donors = 8
	var wg sync.WaitGroup
	errs := make([]error, donors)
	for i := 0; i < donors; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			donor := domain.NewAccountID()
			_, errs[i] = f.svc.Donate(ctx, &donor, c.ID, 1_000)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	updated, err := f.svc.GetCampaign(ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, donors*1_000, updated.RaisedCents, "no donation may lose its increment")
}

func TestAnonymousDonation(t *testing.T) {
	f := newDonationsFixture(t)
	ctx := context.Background()

	var completed []DonationCompleted
	f.bus.Subscribe(KindDonationCompleted, func(_ context.Context, e events.Event) error {
		completed = append(completed, e.(DonationCompleted))
		return nil
	})

	c := f.campaign(t)
	donation, err := f.svc.Donate(ctx, nil, c.ID, 1_000)
	require.NoError(t, err)
	assert.Nil(t, donation.DonorAccountID)

	require.Len(t, completed, 1)
	assert.Equal(t, events.ActorExternal, completed[0].Actor())
}

func TestFailedChargeLeavesNothingBehind(t *testing.T) {
	f := newDonationsFixture(t)
	ctx := context.Background()

	handled := 0
	f.bus.Subscribe(KindDonationCompleted, func(context.Context, events.Event) error {
		handled++
		return nil
	})

	c := f.campaign(t)
	f.gateway.fail = errors.New("card declined")

	donor := domain.NewAccountID()
	_, err := f.svc.Donate(ctx, &donor, c.ID, 2_500)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	assert.Zero(t, handled)
	current, err := f.svc.GetCampaign(ctx, c.ID)
	require.NoError(t, err)
	assert.Zero(t, current.RaisedCents, "failed charge must not bump the total")
}

func TestDonateValidation(t *testing.T) {
	f := newDonationsFixture(t)
	ctx := context.Background()

	_, err := f.svc.Donate(ctx, nil, domain.NewCampaignID(), 0)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = f.svc.Donate(ctx, nil, domain.NewCampaignID(), 500)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestRaisedTotalFallsBackToStore(t *testing.T) {
	f := newDonationsFixture(t)
	ctx := context.Background()

	c := f.campaign(t)
	_, err := f.svc.Donate(ctx, nil, c.ID, 700)
	require.NoError(t, err)

	// Drop the cache entry; the read must recover from the store and backfill.
	f.cache.mu.Lock()
	delete(f.cache.totals, c.ID)
	f.cache.mu.Unlock()

	raised, err := f.svc.RaisedTotal(ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 700, raised)

	_, hit, err := f.cache.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestCampaignQR(t *testing.T) {
	f := newDonationsFixture(t)
	ctx := context.Background()

	c := f.campaign(t)
	img, err := f.svc.CampaignQR(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte(fmt.Sprintf("QR:https://app.petconnect.test/campaigns/%s/donate", c.ID)), img)

	_, err = f.svc.CampaignQR(ctx, domain.NewCampaignID())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
