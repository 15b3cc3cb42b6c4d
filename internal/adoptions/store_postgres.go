package adoptions

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

// PostgresStore persists applications. The one-pending-application-per-
// applicant-and-pet rule is backed by a partial unique index:
//
//	CREATE UNIQUE INDEX adoption_applications_pending_idx
//	  ON adoption_applications (pet_id, applicant_account_id)
//	  WHERE status = 'pending';
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, app Application) error {
	query := `
		INSERT INTO adoption_applications (entity_id, pet_id, applicant_account_id, status, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.Handle(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(app.ID), uuid.UUID(app.PetID), uuid.UUID(app.ApplicantAccountID),
		string(app.Status), app.Message, app.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create adoption application: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.ApplicationID) (Application, error) {
	query := `
		SELECT entity_id, pet_id, applicant_account_id, status, message, created_at
		FROM adoption_applications
		WHERE entity_id = $1
	`
	row := tx.Handle(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(id))
	app, err := scanApplication(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, sentinel.ErrNotFound
		}
		return Application{}, fmt.Errorf("find adoption application: %w", err)
	}
	return app, nil
}

func (s *PostgresStore) ListPendingByPet(ctx context.Context, petID domain.PetID) ([]Application, error) {
	query := `
		SELECT entity_id, pet_id, applicant_account_id, status, message, created_at
		FROM adoption_applications
		WHERE pet_id = $1 AND status = 'pending'
		ORDER BY created_at
	`
	rows, err := tx.Handle(ctx, s.db).QueryContext(ctx, query, uuid.UUID(petID))
	if err != nil {
		return nil, fmt.Errorf("list pending applications: %w", err)
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		app, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list pending applications: %w", err)
		}
		out = append(out, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pending applications: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Update(ctx context.Context, app Application) error {
	query := `
		UPDATE adoption_applications
		SET status = $2, message = $3
		WHERE entity_id = $1
	`
	res, err := tx.Handle(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(app.ID), string(app.Status), app.Message)
	if err != nil {
		return fmt.Errorf("update adoption application: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update adoption application: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func scanApplication(scan func(...any) error) (Application, error) {
	var app Application
	var rawID, rawPet, rawApplicant uuid.UUID
	var status string
	if err := scan(&rawID, &rawPet, &rawApplicant, &status, &app.Message, &app.CreatedAt); err != nil {
		return Application{}, err
	}
	app.ID = domain.ApplicationID(rawID)
	app.PetID = domain.PetID(rawPet)
	app.ApplicantAccountID = domain.AccountID(rawApplicant)
	app.Status = Status(status)
	return app, nil
}
