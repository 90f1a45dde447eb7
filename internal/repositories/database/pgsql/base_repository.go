// Package pgsql implements the persistence ports on PostgreSQL via pgx.
// Compound writes (link approval, withdrawal creation and processing) own
// their transaction here so the row locking and the commit boundary live next
// to the SQL they protect.
package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wezaprosoft/press_rewards_app/internal/apperrors"
)

// BaseRepository provides common functionality for all repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Commit commits a transaction, translating driver failures.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return translatePgError(err, "failed to commit transaction")
	}
	return nil
}

// Rollback rolls back a transaction. Safe to defer after a successful commit.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// SQLSTATE codes this layer translates into application errors.
const (
	pgCodeSerializationFailure = "40001"
	pgCodeDeadlockDetected     = "40P01"
	pgCodeUniqueViolation      = "23505"
	pgCodeForeignKeyViolation  = "23503"
)

// translatePgError maps driver errors onto the apperrors sentinels so the
// service layer can branch with errors.Is. Serialization failures and
// deadlocks become ErrTxConflict, which the services retry once.
func translatePgError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeSerializationFailure, pgCodeDeadlockDetected:
			return fmt.Errorf("%s: %w", msg, apperrors.ErrTxConflict)
		case pgCodeUniqueViolation:
			return fmt.Errorf("%s: %w", msg, apperrors.ErrDuplicate)
		case pgCodeForeignKeyViolation:
			return fmt.Errorf("%s: %w", msg, apperrors.ErrValidation)
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
