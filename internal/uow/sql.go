package uow

import (
	"context"
	"database/sql"

	"petconnect/internal/platform/tx"
)

// SQLSessionFactory opens one database transaction per unit of work. Stores
// reach the transaction through the context binding in internal/platform/tx,
// so the same store code serves transactional and plain reads.
type SQLSessionFactory struct {
	db *sql.DB
}

func NewSQLSessionFactory(db *sql.DB) *SQLSessionFactory {
	return &SQLSessionFactory{db: db}
}

func (f *SQLSessionFactory) Open(ctx context.Context) (Session, error) {
	t, err := f.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqlSession{tx: t}, nil
}

type sqlSession struct {
	tx *sql.Tx
}

func (s *sqlSession) Bind(ctx context.Context) context.Context {
	return tx.With(ctx, s.tx)
}

func (s *sqlSession) Commit(context.Context) error { return s.tx.Commit() }

func (s *sqlSession) Rollback(context.Context) error {
	err := s.tx.Rollback()
	if err == sql.ErrTxDone {
		return nil
	}
	return err
}
