package donations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"petconnect/internal/events"
	"petconnect/internal/organizations"
	"petconnect/internal/platform/background"
	"petconnect/internal/platform/metrics"
	"petconnect/internal/uow"
	"petconnect/pkg/domain"
	"petconnect/pkg/sentinel"
)

// Service implements campaigns and donations.
type Service struct {
	store        Store
	orgs         *organizations.Service
	gateway      PaymentGateway
	qr           QRGenerator
	cache        TotalsCache
	exec         *background.Executor
	runner       *uow.Runner
	frontendBase string
	log          zerolog.Logger
	metrics      *metrics.Metrics
}

// NewService builds the donations service. cache may be nil when redis is not
// configured; totals then always come from the store.
func NewService(store Store, orgs *organizations.Service, gateway PaymentGateway, qr QRGenerator, cache TotalsCache, exec *background.Executor, runner *uow.Runner, frontendBase string, log zerolog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:        store,
		orgs:         orgs,
		gateway:      gateway,
		qr:           qr,
		cache:        cache,
		exec:         exec,
		runner:       runner,
		frontendBase: frontendBase,
		log:          log.With().Str("component", "donations").Logger(),
		metrics:      m,
	}
}

// CreateCampaign opens a fundraising campaign for an active organization
// owned by actor.
func (s *Service) CreateCampaign(ctx context.Context, actor domain.AccountID, orgID domain.OrganizationID, title, description string, goalCents int64) (Campaign, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Campaign{}, ErrInvalidCampaignData("title cannot be empty")
	}
	if goalCents <= 0 {
		return Campaign{}, ErrInvalidCampaignData("goal must be positive")
	}

	return uow.RunValue(ctx, s.runner, func(ctx context.Context) (Campaign, error) {
		org, err := s.orgs.Get(ctx, orgID)
		if err != nil {
			return Campaign{}, err
		}
		if org.OwnerAccountID != actor {
			return Campaign{}, organizations.ErrNotOwner(orgID, actor)
		}
		if !org.Active() {
			return Campaign{}, organizations.ErrOrganizationInactive(orgID)
		}

		c := Campaign{
			ID:             domain.NewCampaignID(),
			OrganizationID: orgID,
			Title:          title,
			Description:    strings.TrimSpace(description),
			GoalCents:      goalCents,
			Active:         true,
			CreatedAt:      time.Now().UTC(),
		}
		if err := s.store.CreateCampaign(ctx, c); err != nil {
			return Campaign{}, err
		}
		s.log.Info().Str("campaign_id", c.ID.String()).Msg("campaign created")
		return c, nil
	})
}

// GetCampaign returns one campaign.
func (s *Service) GetCampaign(ctx context.Context, id domain.CampaignID) (Campaign, error) {
	c, err := s.store.FindCampaign(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Campaign{}, ErrCampaignNotFound(id)
		}
		return Campaign{}, err
	}
	return c, nil
}

// Donate collects amountCents for a campaign. The gateway charge runs on the
// executor inside the unit of work: a failed charge rolls everything back, a
// successful one records the donation, bumps the raised total and emits
// DonationCompleted. donor is nil for anonymous donations.
func (s *Service) Donate(ctx context.Context, donor *domain.AccountID, campaignID domain.CampaignID, amountCents int64) (Donation, error) {
	if amountCents <= 0 {
		return Donation{}, ErrInvalidDonation("amount must be positive")
	}

	donation, err := uow.RunValue(ctx, s.runner, func(ctx context.Context) (Donation, error) {
		campaign, err := s.GetCampaign(ctx, campaignID)
		if err != nil {
			return Donation{}, err
		}
		if !campaign.Active {
			return Donation{}, ErrCampaignInactive(campaignID)
		}

		donation := Donation{
			ID:          domain.NewDonationID(),
			CampaignID:  campaignID,
			AmountCents: amountCents,
			Status:      StatusCompleted,
			CreatedAt:   time.Now().UTC(),
		}
		if donor != nil {
			d := *donor
			donation.DonorAccountID = &d
		}

		result, err := background.Call(ctx, s.exec, func() (ChargeResult, error) {
			return s.gateway.Charge(ctx, ChargeRequest{
				AmountCents: amountCents,
				Description: fmt.Sprintf("Donation to %q", campaign.Title),
				Reference:   donation.ID.String(),
			})
		})
		if err != nil {
			return Donation{}, ErrPaymentFailed(err)
		}
		donation.PaymentRef = result.PaymentRef

		if err := s.store.CreateDonation(ctx, donation); err != nil {
			return Donation{}, err
		}
		if err := s.store.IncrementRaised(ctx, campaignID, amountCents); err != nil {
			return Donation{}, err
		}

		if err := uow.MustFrom(ctx).EmitEvent(DonationCompleted{
			Meta:           events.NewMeta(actorOf(donor)),
			DonationID:     donation.ID,
			CampaignID:     campaignID,
			CampaignTitle:  campaign.Title,
			DonorAccountID: donation.DonorAccountID,
			AmountCents:    amountCents,
		}); err != nil {
			return Donation{}, err
		}
		return donation, nil
	})
	if err != nil {
		return Donation{}, err
	}

	s.metrics.DonationsDone.Inc()
	s.refreshCachedTotal(ctx, campaignID)
	return donation, nil
}

// RaisedTotal returns the campaign's raised cents, preferring the cache.
func (s *Service) RaisedTotal(ctx context.Context, id domain.CampaignID) (int64, error) {
	if s.cache != nil {
		raised, hit, err := s.cache.Get(ctx, id)
		if err != nil {
			s.log.Warn().Err(err).Msg("totals cache read failed, falling back to store")
		} else if hit {
			return raised, nil
		}
	}

	campaign, err := s.GetCampaign(ctx, id)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, id, campaign.RaisedCents); err != nil {
			s.log.Warn().Err(err).Msg("totals cache backfill failed")
		}
	}
	return campaign.RaisedCents, nil
}

// CampaignQR renders the campaign's donation link as a QR image.
func (s *Service) CampaignQR(ctx context.Context, id domain.CampaignID) ([]byte, error) {
	campaign, err := s.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/campaigns/%s/donate", s.frontendBase, campaign.ID)
	return background.Call(ctx, s.exec, func() ([]byte, error) {
		return s.qr.Render(link)
	})
}

// refreshCachedTotal writes the committed total through to the cache. Cache
// failures are logged only; the store remains authoritative.
func (s *Service) refreshCachedTotal(ctx context.Context, id domain.CampaignID) {
	if s.cache == nil {
		return
	}
	campaign, err := s.GetCampaign(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Msg("totals cache refresh read failed")
		return
	}
	if err := s.cache.Set(ctx, id, campaign.RaisedCents); err != nil {
		s.log.Warn().Err(err).Msg("totals cache write failed")
	}
}

func actorOf(donor *domain.AccountID) string {
	if donor == nil {
		return ""
	}
	return donor.String()
}
