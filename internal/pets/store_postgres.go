package pets

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

func (s *PostgresStore) Create(ctx context.Context, pet Pet) error {
	query := `
		INSERT INTO pets (entity_id, reporter_account_id, organization_id, name, species, status, description, photo_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := tx.Handle(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(pet.ID), uuid.UUID(pet.ReporterAccountID), orgID(pet.OrganizationID),
		pet.Name, pet.Species, string(pet.Status), pet.Description, pet.PhotoKey, pet.CreatedAt)
	if err != nil {
		return fmt.Errorf("create pet: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.PetID) (Pet, error) {
	query := `
		SELECT entity_id, reporter_account_id, organization_id, name, species, status, description, photo_key, created_at
		FROM pets
		WHERE entity_id = $1
	`
	row := tx.Handle(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(id))

	var pet Pet
	var rawID, rawReporter uuid.UUID
	var rawOrg uuid.NullUUID
	var status string
	err := row.Scan(&rawID, &rawReporter, &rawOrg, &pet.Name, &pet.Species, &status, &pet.Description, &pet.PhotoKey, &pet.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Pet{}, sentinel.ErrNotFound
		}
		return Pet{}, fmt.Errorf("find pet by id: %w", err)
	}
	pet.ID = domain.PetID(rawID)
	pet.ReporterAccountID = domain.AccountID(rawReporter)
	if rawOrg.Valid {
		id := domain.OrganizationID(rawOrg.UUID)
		pet.OrganizationID = &id
	}
	pet.Status = Status(status)
	return pet, nil
}

func (s *PostgresStore) Update(ctx context.Context, pet Pet) error {
	query := `
		UPDATE pets
		SET name = $2, species = $3, status = $4, description = $5, photo_key = $6
		WHERE entity_id = $1
	`
	res, err := tx.Handle(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(pet.ID), pet.Name, pet.Species, string(pet.Status), pet.Description, pet.PhotoKey)
	if err != nil {
		return fmt.Errorf("update pet: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update pet: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func orgID(id *domain.OrganizationID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*id), Valid: true}
}
