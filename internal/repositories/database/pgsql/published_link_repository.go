package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wezaprosoft/press_rewards_app/internal/apperrors"
	"github.com/wezaprosoft/press_rewards_app/internal/core/domain"
	portsrepo "github.com/wezaprosoft/press_rewards_app/internal/core/ports/repositories"
	"github.com/wezaprosoft/press_rewards_app/internal/utils/pagination"
)

type PgxPublishedLinkRepository struct {
	BaseRepository
}

func newPgxPublishedLinkRepository(pool *pgxpool.Pool) portsrepo.PublishedLinkRepository {
	return &PgxPublishedLinkRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PublishedLinkRepository = (*PgxPublishedLinkRepository)(nil)

const publishedLinkColumns = `link_id, journalist_id, press_release_id, url, title, publication_date,
	status, reviewed_by, reviewed_at, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanPublishedLink(row pgx.Row) (*domain.PublishedLink, error) {
	var link domain.PublishedLink
	err := row.Scan(
		&link.LinkID,
		&link.JournalistID,
		&link.PressReleaseID,
		&link.URL,
		&link.Title,
		&link.PublicationDate,
		&link.Status,
		&link.ReviewedBy,
		&link.ReviewedAt,
		&link.Notes,
		&link.CreatedAt,
		&link.CreatedBy,
		&link.LastUpdatedAt,
		&link.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *PgxPublishedLinkRepository) SaveLink(ctx context.Context, link domain.PublishedLink) error {
	query := `
		INSERT INTO published_links (link_id, journalist_id, press_release_id, url, title, publication_date,
			status, reviewed_by, reviewed_at, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		link.LinkID,
		link.JournalistID,
		link.PressReleaseID,
		link.URL,
		link.Title,
		link.PublicationDate,
		link.Status,
		link.ReviewedBy,
		link.ReviewedAt,
		link.Notes,
		link.CreatedAt,
		link.CreatedBy,
		link.LastUpdatedAt,
		link.LastUpdatedBy,
	)
	if err != nil {
		return translatePgError(err, "failed to insert published link")
	}
	return nil
}

func (r *PgxPublishedLinkRepository) FindLinkByID(ctx context.Context, linkID string) (*domain.PublishedLink, error) {
	query := `SELECT ` + publishedLinkColumns + ` FROM published_links WHERE link_id = $1;`
	link, err := scanPublishedLink(r.Pool.QueryRow(ctx, query, linkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find link by ID %s: %w", linkID, err)
	}
	return link, nil
}

// ApproveLinkAndAward flips a pending link to approved and appends the award
// when this is the first approved link for its (journalist, press release)
// pair. The whole unit runs in one transaction: the link row and its sibling
// rows for the same pair are locked first, so two concurrent approvals cannot
// both observe an award-worthy state.
func (r *PgxPublishedLinkRepository) ApproveLinkAndAward(ctx context.Context, linkID string, reviewerID string, reviewedAt time.Time, award domain.PointTransaction) (bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer r.Rollback(ctx, tx)

	var journalistID, pressReleaseID string
	var status domain.LinkStatus
	lockQuery := `
		SELECT journalist_id, press_release_id, status
		FROM published_links
		WHERE link_id = $1
		FOR UPDATE;
	`
	err = tx.QueryRow(ctx, lockQuery, linkID).Scan(&journalistID, &pressReleaseID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperrors.ErrNotFound
		}
		return false, translatePgError(err, "failed to lock link "+linkID)
	}
	if status != domain.LinkPending {
		return false, fmt.Errorf("link is already %s: %w", status, apperrors.ErrInvalidTransition)
	}

	// Lock every sibling link for the pair in a stable order so two approvals
	// touching the same pair serialize instead of deadlocking.
	siblingLock := `
		SELECT link_id FROM published_links
		WHERE journalist_id = $1 AND press_release_id = $2
		ORDER BY link_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, siblingLock, journalistID, pressReleaseID)
	if err != nil {
		return false, translatePgError(err, "failed to lock sibling links")
	}
	if _, err := pgx.CollectRows(rows, pgx.RowTo[string]); err != nil {
		return false, translatePgError(err, "failed to lock sibling links")
	}

	updateQuery := `
		UPDATE published_links
		SET status = $1, reviewed_by = $2, reviewed_at = $3, last_updated_at = $3, last_updated_by = $2
		WHERE link_id = $4;
	`
	if _, err := tx.Exec(ctx, updateQuery, domain.LinkApproved, reviewerID, reviewedAt, linkID); err != nil {
		return false, translatePgError(err, "failed to approve link "+linkID)
	}

	var approvedCount int64
	countQuery := `
		SELECT COUNT(*) FROM published_links
		WHERE journalist_id = $1 AND press_release_id = $2 AND status = $3;
	`
	if err := tx.QueryRow(ctx, countQuery, journalistID, pressReleaseID, domain.LinkApproved).Scan(&approvedCount); err != nil {
		return false, translatePgError(err, "failed to count approved links")
	}

	awarded := approvedCount == 1
	if awarded {
		if err := insertPointTransactionTx(ctx, tx, award); err != nil {
			return false, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return false, err
	}
	return awarded, nil
}

// RejectLink flips a pending link to rejected. No ledger entry is written;
// rejection never affects points.
func (r *PgxPublishedLinkRepository) RejectLink(ctx context.Context, linkID string, reviewerID string, reviewedAt time.Time, notes string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status domain.LinkStatus
	lockQuery := `SELECT status FROM published_links WHERE link_id = $1 FOR UPDATE;`
	err = tx.QueryRow(ctx, lockQuery, linkID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return translatePgError(err, "failed to lock link "+linkID)
	}
	if status != domain.LinkPending {
		return fmt.Errorf("link is already %s: %w", status, apperrors.ErrInvalidTransition)
	}

	updateQuery := `
		UPDATE published_links
		SET status = $1, reviewed_by = $2, reviewed_at = $3, notes = $4, last_updated_at = $3, last_updated_by = $2
		WHERE link_id = $5;
	`
	if _, err := tx.Exec(ctx, updateQuery, domain.LinkRejected, reviewerID, reviewedAt, notes, linkID); err != nil {
		return translatePgError(err, "failed to reject link "+linkID)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxPublishedLinkRepository) ListLinks(ctx context.Context, filter portsrepo.ListLinksFilter, limit int, nextToken *string) ([]domain.PublishedLink, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + publishedLinkColumns + ` FROM published_links WHERE 1=1`
	args := []any{}
	argPos := 1

	if filter.Status != nil {
		query += fmt.Sprintf(` AND status = $%d`, argPos)
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.JournalistID != nil {
		query += fmt.Sprintf(` AND journalist_id = $%d`, argPos)
		args = append(args, *filter.JournalistID)
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
		return nil, nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer rows.Close()

	links := []domain.PublishedLink{}
	for rows.Next() {
		link, err := scanPublishedLink(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan link row: %w", err)
		}
		links = append(links, *link)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating link rows: %w", rows.Err())
	}

	var token *string
	if len(links) > limit {
		links = links[:limit]
		t := pagination.EncodeDateBasedToken(links[len(links)-1].CreatedAt)
		token = &t
	}

	return links, token, nil
}
