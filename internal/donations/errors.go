package donations

import (
	"petconnect/pkg/domain"
	dErrors "petconnect/pkg/domain-errors"
)

func ErrCampaignNotFound(id domain.CampaignID) error {
	return dErrors.New(dErrors.CodeNotFound, "campaign not found").
		WithField("campaign_id", id.String())
}

func ErrCampaignInactive(id domain.CampaignID) error {
	return dErrors.New(dErrors.CodeBadRequest, "campaign is not active").
		WithField("campaign_id", id.String())
}

func ErrInvalidCampaignData(reason string) error {
	return dErrors.New(dErrors.CodeInvalidInput, "invalid campaign data").
		WithField("reason", reason)
}

func ErrInvalidDonation(reason string) error {
	return dErrors.New(dErrors.CodeInvalidInput, "invalid donation").
		WithField("reason", reason)
}

func ErrPaymentFailed(err error) error {
	return dErrors.Wrap(err, dErrors.CodeBadRequest, "payment was not collected")
}
