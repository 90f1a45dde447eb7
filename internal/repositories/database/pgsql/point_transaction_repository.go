package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wezaprosoft/press_rewards_app/internal/apperrors"
	"github.com/wezaprosoft/press_rewards_app/internal/core/domain"
	portsrepo "github.com/wezaprosoft/press_rewards_app/internal/core/ports/repositories"
	"github.com/wezaprosoft/press_rewards_app/internal/utils/pagination"
)

// PgxPointTransactionRepository is the append-only ledger store. There are no
// UPDATE or DELETE statements in this file on purpose.
type PgxPointTransactionRepository struct {
	BaseRepository
}

func newPgxPointTransactionRepository(pool *pgxpool.Pool) portsrepo.PointTransactionRepository {
	return &PgxPointTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PointTransactionRepository = (*PgxPointTransactionRepository)(nil)

// insertPointTransactionTx appends one ledger entry plus its link relations
// inside the caller's transaction. Shared with the compound writes in the
// link and withdrawal repositories.
func insertPointTransactionTx(ctx context.Context, tx pgx.Tx, txn domain.PointTransaction) error {
	query := `
		INSERT INTO point_transactions (transaction_id, journalist_id, points, transaction_type,
			description, related_press_release_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, query,
		txn.TransactionID,
		txn.JournalistID,
		txn.Points,
		txn.Type,
		txn.Description,
		txn.RelatedPressReleaseID,
		txn.CreatedAt,
		txn.CreatedBy,
	)
	if err != nil {
		return translatePgError(err, "failed to insert point transaction")
	}

	if len(txn.RelatedLinkIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	linkQuery := `INSERT INTO point_transaction_links (transaction_id, link_id) VALUES ($1, $2);`
	for _, linkID := range txn.RelatedLinkIDs {
		batch.Queue(linkQuery, txn.TransactionID, linkID)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return translatePgError(err, "failed to insert point transaction links")
	}
	return nil
}

func (r *PgxPointTransactionRepository) AppendTransaction(ctx context.Context, txn domain.PointTransaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertPointTransactionTx(ctx, tx, txn); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxPointTransactionRepository) AppendTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.PointTransaction) error {
	return insertPointTransactionTx(ctx, tx, txn)
}

func sumPoints(ctx context.Context, q querier, journalistID string, txnType *domain.TransactionType) (int64, error) {
	query := `SELECT COALESCE(SUM(points), 0) FROM point_transactions WHERE journalist_id = $1`
	args := []any{journalistID}
	if txnType != nil {
		query += ` AND transaction_type = $2`
		args = append(args, *txnType)
	}
	query += `;`

	var sum int64
	if err := q.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum points for journalist %s: %w", journalistID, err)
	}
	return sum, nil
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *PgxPointTransactionRepository) SumPoints(ctx context.Context, journalistID string, txnType *domain.TransactionType) (int64, error) {
	return sumPoints(ctx, r.Pool, journalistID, txnType)
}

func (r *PgxPointTransactionRepository) SumPointsInTx(ctx context.Context, tx pgx.Tx, journalistID string, txnType *domain.TransactionType) (int64, error) {
	return sumPoints(ctx, tx, journalistID, txnType)
}

func (r *PgxPointTransactionRepository) ListTransactionsByJournalist(ctx context.Context, journalistID string, limit int, nextToken *string) ([]domain.PointTransaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT t.transaction_id, t.journalist_id, t.points, t.transaction_type, t.description,
			t.related_press_release_id, t.created_at, t.created_by,
			COALESCE(array_agg(l.link_id) FILTER (WHERE l.link_id IS NOT NULL), '{}') AS link_ids
		FROM point_transactions t
		LEFT JOIN point_transaction_links l ON l.transaction_id = t.transaction_id
		WHERE t.journalist_id = $1`
	args := []any{journalistID}
	argPos := 2

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += fmt.Sprintf(` AND t.created_at < $%d`, argPos)
		args = append(args, cursor)
		argPos++
	}

	query += fmt.Sprintf(`
		GROUP BY t.transaction_id, t.journalist_id, t.points, t.transaction_type, t.description,
			t.related_press_release_id, t.created_at, t.created_by
		ORDER BY t.created_at DESC LIMIT $%d;`, argPos)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query point transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.PointTransaction{}
	for rows.Next() {
		var txn domain.PointTransaction
		err := rows.Scan(
			&txn.TransactionID,
			&txn.JournalistID,
			&txn.Points,
			&txn.Type,
			&txn.Description,
			&txn.RelatedPressReleaseID,
			&txn.CreatedAt,
			&txn.CreatedBy,
			&txn.RelatedLinkIDs,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan point transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating point transaction rows: %w", rows.Err())
	}

	var token *string
	if len(txns) > limit {
		txns = txns[:limit]
		t := pagination.EncodeDateBasedToken(txns[len(txns)-1].CreatedAt)
		token = &t
	}

	return txns, token, nil
}
