package organizations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"petconnect/internal/platform/tx"
	"petconnect/pkg/domain"
	"petconnect/pkg/sentinel"
)

const pgUniqueViolation = "23505"

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, org Organization) error {
	query := `
		INSERT INTO organizations (entity_id, owner_account_id, name, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.Handle(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(org.ID), uuid.UUID(org.OwnerAccountID), org.Name, org.Description, string(org.Status), org.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create organization: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.OrganizationID) (Organization, error) {
	query := `
		SELECT entity_id, owner_account_id, name, description, status, created_at
		FROM organizations
		WHERE entity_id = $1
	`
	return scanOrganization(tx.Handle(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(id)), "find organization by id")
}

func (s *PostgresStore) FindByName(ctx context.Context, normalizedName string) (Organization, error) {
	query := `
		SELECT entity_id, owner_account_id, name, description, status, created_at
		FROM organizations
		WHERE lower(regexp_replace(name, '\s+', ' ', 'g')) = $1
	`
	return scanOrganization(tx.Handle(ctx, s.db).QueryRowContext(ctx, query, normalizedName), "find organization by name")
}

func (s *PostgresStore) Update(ctx context.Context, org Organization) error {
	query := `
		UPDATE organizations
		SET name = $2, description = $3, status = $4
		WHERE entity_id = $1
	`
	res, err := tx.Handle(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(org.ID), org.Name, org.Description, string(org.Status))
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func scanOrganization(row *sql.Row, op string) (Organization, error) {
	var org Organization
	var rawID, rawOwner uuid.UUID
	var status string
	err := row.Scan(&rawID, &rawOwner, &org.Name, &org.Description, &status, &org.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Organization{}, sentinel.ErrNotFound
		}
		return Organization{}, fmt.Errorf("%s: %w", op, err)
	}
	org.ID = domain.OrganizationID(rawID)
	org.OwnerAccountID = domain.AccountID(rawOwner)
	org.Status = Status(status)
	return org, nil
}
