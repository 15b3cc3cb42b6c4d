package donations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"petconnect/internal/platform/tx"
	"petconnect/pkg/domain"
	"petconnect/pkg/sentinel"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateCampaign(ctx context.Context, c Campaign) error {
	query := `
		INSERT INTO campaigns (entity_id, organization_id, title, description, goal_cents, raised_cents, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := tx.Handle(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(c.ID), uuid.UUID(c.OrganizationID), c.Title, c.Description,
		c.GoalCents, c.RaisedCents, c.Active, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create campaign: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindCampaign(ctx context.Context, id domain.CampaignID) (Campaign, error) {
	query := `
		SELECT entity_id, organization_id, title, description, goal_cents, raised_cents, active, created_at
		FROM campaigns
		WHERE entity_id = $1
	`
	row := tx.Handle(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(id))

	var c Campaign
	var rawID, rawOrg uuid.UUID
	err := row.Scan(&rawID, &rawOrg, &c.Title, &c.Description, &c.GoalCents, &c.RaisedCents, &c.Active, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Campaign{}, sentinel.ErrNotFound
		}
		return Campaign{}, fmt.Errorf("find campaign: %w", err)
	}
	c.ID = domain.CampaignID(rawID)
	c.OrganizationID = domain.OrganizationID(rawOrg)
	return c, nil
}

func (s *PostgresStore) IncrementRaised(ctx context.Context, id domain.CampaignID, amountCents int64) error {
	query := `
		UPDATE campaigns
		SET raised_cents = raised_cents + $2
		WHERE entity_id = $1
	`
	res, err := tx.Handle(ctx, s.db).ExecContext(ctx, query, uuid.UUID(id), amountCents)
	if err != nil {
		return fmt.Errorf("increment raised: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment raised: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CreateDonation(ctx context.Context, d Donation) error {
	query := `
		INSERT INTO donations (entity_id, campaign_id, donor_account_id, amount_cents, payment_ref, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	var donor uuid.NullUUID
	if d.DonorAccountID != nil {
		donor = uuid.NullUUID{UUID: uuid.UUID(*d.DonorAccountID), Valid: true}
	}
	_, err := tx.Handle(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(d.ID), uuid.UUID(d.CampaignID), donor, d.AmountCents, d.PaymentRef, string(d.Status), d.CreatedAt)
	if err != nil {
		return fmt.Errorf("create donation: %w", err)
	}
	return nil
}
