package accounts

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

// PostgresStore persists accounts in the accounts table. All methods join the
// ambient unit of work transaction when one is bound in ctx.
//
// Uniqueness is enforced at the storage layer too:
//
//	CREATE UNIQUE INDEX accounts_email_lower_idx ON accounts (lower(email));
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, account Account) error {
	query := `
		INSERT INTO accounts (entity_id, email, password, verified, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := tx.Handle(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(account.ID), account.Email, account.PasswordHash, account.Verified, account.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (Account, error) {
	query := `
		SELECT entity_id, email, password, verified, created_at
		FROM accounts
		WHERE lower(email) = lower($1)
	`
	return s.scanOne(tx.Handle(ctx, s.db).QueryRowContext(ctx, query, email), "find account by email")
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.AccountID) (Account, error) {
	query := `
		SELECT entity_id, email, password, verified, created_at
		FROM accounts
		WHERE entity_id = $1
	`
	return s.scanOne(tx.Handle(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(id)), "find account by id")
}

func (s *PostgresStore) Update(ctx context.Context, account Account) error {
	query := `
		UPDATE accounts
		SET email = $2, password = $3, verified = $4
		WHERE entity_id = $1
	`
	res, err := tx.Handle(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(account.ID), account.Email, account.PasswordHash, account.Verified)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) scanOne(row *sql.Row, op string) (Account, error) {
	var account Account
	var rawID uuid.UUID
	err := row.Scan(&rawID, &account.Email, &account.PasswordHash, &account.Verified, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, sentinel.ErrNotFound
		}
		return Account{}, fmt.Errorf("%s: %w", op, err)
	}
	account.ID = domain.AccountID(rawID)
	return account, nil
}
