package profiles

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

func (s *PostgresStore) Create(ctx context.Context, profile Profile) error {
	query := `
		INSERT INTO profiles (entity_id, account_id, name, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := tx.Handle(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(profile.ID), uuid.UUID(profile.AccountID), profile.Name, profile.Phone, profile.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByAccount(ctx context.Context, accountID domain.AccountID) (Profile, error) {
	query := `
		SELECT entity_id, account_id, name, phone, created_at
		FROM profiles
		WHERE account_id = $1
	`
	row := tx.Handle(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(accountID))

	var profile Profile
	var rawID, rawAccount uuid.UUID
	err := row.Scan(&rawID, &rawAccount, &profile.Name, &profile.Phone, &profile.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, sentinel.ErrNotFound
		}
		return Profile{}, fmt.Errorf("find profile by account: %w", err)
	}
	profile.ID = domain.ProfileID(rawID)
	profile.AccountID = domain.AccountID(rawAccount)
	return profile, nil
}
