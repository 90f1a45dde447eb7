package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wezaprosoft/press_rewards_app/internal/apperrors"
	"github.com/wezaprosoft/press_rewards_app/internal/core/domain"
	portsrepo "github.com/wezaprosoft/press_rewards_app/internal/core/ports/repositories"
	"github.com/wezaprosoft/press_rewards_app/internal/utils/pagination"
	"github.com/wezaprosoft/press_rewards_app/internal/utils/rewards"
)

type PgxWithdrawalRepository struct {
	BaseRepository
	journalistRepo portsrepo.JournalistRepository
}

func newPgxWithdrawalRepository(pool *pgxpool.Pool, journalistRepo portsrepo.JournalistRepository) portsrepo.WithdrawalRepository {
	return &PgxWithdrawalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		journalistRepo: journalistRepo,
	}
}

var _ portsrepo.WithdrawalRepository = (*PgxWithdrawalRepository)(nil)

const withdrawalColumns = `withdrawal_id, journalist_id, points, amount, status, payment_method,
	payment_details, processed_by, processed_at, transaction_reference, notes,
	created_at, created_by, last_updated_at, last_updated_by`

func scanWithdrawal(row pgx.Row) (*domain.WithdrawalRequest, error) {
	var w domain.WithdrawalRequest
	err := row.Scan(
		&w.WithdrawalID,
		&w.JournalistID,
		&w.Points,
		&w.Amount,
		&w.Status,
		&w.PaymentMethod,
		&w.PaymentDetails,
		&w.ProcessedBy,
		&w.ProcessedAt,
		&w.TransactionReference,
		&w.Notes,
		&w.CreatedAt,
		&w.CreatedBy,
		&w.LastUpdatedAt,
		&w.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// CreateWithdrawal inserts a withdrawal request after re-checking the balance
// inside the transaction. The journalist row is locked first, so two requests
// racing for the same points serialize and the second one fails the check.
func (r *PgxWithdrawalRepository) CreateWithdrawal(ctx context.Context, withdrawal domain.WithdrawalRequest) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.journalistRepo.FindJournalistByIDForUpdate(ctx, tx, withdrawal.JournalistID); err != nil {
		return err
	}

	earnedType := domain.TransactionEarned
	withdrawalType := domain.TransactionWithdrawal
	earned, err := sumPoints(ctx, tx, withdrawal.JournalistID, &earnedType)
	if err != nil {
		return err
	}
	withdrawn, err := sumPoints(ctx, tx, withdrawal.JournalistID, &withdrawalType)
	if err != nil {
		return err
	}

	current := rewards.CurrentPoints(earned, withdrawn)
	if withdrawal.Points > current {
		return fmt.Errorf("requested %d points with %d available: %w", withdrawal.Points, current, apperrors.ErrInsufficientPoints)
	}

	insertQuery := `
		INSERT INTO withdrawal_requests (withdrawal_id, journalist_id, points, amount, status, payment_method,
			payment_details, transaction_reference, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, insertQuery,
		withdrawal.WithdrawalID,
		withdrawal.JournalistID,
		withdrawal.Points,
		withdrawal.Amount,
		withdrawal.Status,
		withdrawal.PaymentMethod,
		withdrawal.PaymentDetails,
		withdrawal.TransactionReference,
		withdrawal.Notes,
		withdrawal.CreatedAt,
		withdrawal.CreatedBy,
		withdrawal.LastUpdatedAt,
		withdrawal.LastUpdatedBy,
	)
	if err != nil {
		return translatePgError(err, "failed to insert withdrawal request")
	}

	return r.Commit(ctx, tx)
}

func (r *PgxWithdrawalRepository) FindWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE withdrawal_id = $1;`
	withdrawal, err := scanWithdrawal(r.Pool.QueryRow(ctx, query, withdrawalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find withdrawal by ID %s: %w", withdrawalID, err)
	}
	return withdrawal, nil
}

// ProcessWithdrawal applies one reviewer action under a row lock. The pending
// requirement for the approved target is re-checked here after locking; the
// other targets intentionally carry no precondition. The ledger debit, when
// present, commits atomically with the status change.
func (r *PgxWithdrawalRepository) ProcessWithdrawal(ctx context.Context, params portsrepo.ProcessWithdrawalParams) (*domain.WithdrawalRequest, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var status domain.WithdrawalStatus
	lockQuery := `SELECT status FROM withdrawal_requests WHERE withdrawal_id = $1 FOR UPDATE;`
	err = tx.QueryRow(ctx, lockQuery, params.WithdrawalID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, translatePgError(err, "failed to lock withdrawal "+params.WithdrawalID)
	}
	if params.NewStatus == domain.WithdrawalApproved && status != domain.WithdrawalPending {
		return nil, fmt.Errorf("withdrawal is already %s: %w", status, apperrors.ErrInvalidTransition)
	}

	updateQuery := `
		UPDATE withdrawal_requests
		SET status = $1, processed_by = $2, processed_at = $3,
			notes = COALESCE($4, notes),
			transaction_reference = COALESCE($5, transaction_reference),
			last_updated_at = $3, last_updated_by = $2
		WHERE withdrawal_id = $6;
	`
	_, err = tx.Exec(ctx, updateQuery,
		params.NewStatus,
		params.ProcessorID,
		params.ProcessedAt,
		params.Notes,
		params.TransactionReference,
		params.WithdrawalID,
	)
	if err != nil {
		return nil, translatePgError(err, "failed to update withdrawal "+params.WithdrawalID)
	}

	if params.Debit != nil {
		if err := insertPointTransactionTx(ctx, tx, *params.Debit); err != nil {
			return nil, err
		}
	}

	selectQuery := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE withdrawal_id = $1;`
	withdrawal, err := scanWithdrawal(tx.QueryRow(ctx, selectQuery, params.WithdrawalID))
	if err != nil {
		return nil, translatePgError(err, "failed to reload withdrawal "+params.WithdrawalID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return withdrawal, nil
}

func (r *PgxWithdrawalRepository) ListWithdrawals(ctx context.Context, filter portsrepo.ListWithdrawalsFilter, limit int, nextToken *string) ([]domain.WithdrawalRequest, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE 1=1`
	args := []any{}
	argPos := 1

	if filter.JournalistID != nil {
		query += fmt.Sprintf(` AND journalist_id = $%d`, argPos)
		args = append(args, *filter.JournalistID)
		argPos++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(` AND status = $%d`, argPos)
		args = append(args, *filter.Status)
		argPos++
	}

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += fmt.Sprintf(` AND created_at < $%d`, argPos)
		args = append(args, cursor)
		argPos++
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d;`, argPos)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query withdrawals: %w", err)
	}
	defer rows.Close()

	withdrawals := []domain.WithdrawalRequest{}
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan withdrawal row: %w", err)
		}
		withdrawals = append(withdrawals, *w)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating withdrawal rows: %w", rows.Err())
	}

	var token *string
	if len(withdrawals) > limit {
		withdrawals = withdrawals[:limit]
		t := pagination.EncodeDateBasedToken(withdrawals[len(withdrawals)-1].CreatedAt)
		token = &t
	}

	return withdrawals, token, nil
}
