// Package postgres implements storage.Storage on top of a pgx pool.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type Storage struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func New(logger zerolog.Logger, pgPool *pgxpool.Pool) *Storage {
	return &Storage{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.pgPool.Ping(ctx)
}

func (s *Storage) Close(context.Context) error {
	s.pgPool.Close()
	return nil
}

// uniqueViolation reports whether err is a unique constraint
// violation and returns the name of the violated constraint.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}
