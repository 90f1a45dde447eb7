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

type PgxPressReleaseRepository struct {
	BaseRepository
}

func newPgxPressReleaseRepository(pool *pgxpool.Pool) portsrepo.PressReleaseRepository {
	return &PgxPressReleaseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PressReleaseRepository = (*PgxPressReleaseRepository)(nil)

const pressReleaseColumns = `press_release_id, title, description, content, client, partner, country,
	is_published, created_at, created_by, last_updated_at, last_updated_by`

func scanPressRelease(row pgx.Row) (*domain.PressRelease, error) {
	var pr domain.PressRelease
	err := row.Scan(
		&pr.PressReleaseID,
		&pr.Title,
		&pr.Description,
		&pr.Content,
		&pr.Client,
		&pr.Partner,
		&pr.Country,
		&pr.IsPublished,
		&pr.CreatedAt,
		&pr.CreatedBy,
		&pr.LastUpdatedAt,
		&pr.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &pr, nil
}

func (r *PgxPressReleaseRepository) SavePressRelease(ctx context.Context, pressRelease domain.PressRelease) error {
	query := `
		INSERT INTO press_releases (press_release_id, title, description, content, client, partner, country,
			is_published, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		pressRelease.PressReleaseID,
		pressRelease.Title,
		pressRelease.Description,
		pressRelease.Content,
		pressRelease.Client,
		pressRelease.Partner,
		pressRelease.Country,
		pressRelease.IsPublished,
		pressRelease.CreatedAt,
		pressRelease.CreatedBy,
		pressRelease.LastUpdatedAt,
		pressRelease.LastUpdatedBy,
	)
	if err != nil {
		return translatePgError(err, "failed to insert press release")
	}
	return nil
}

func (r *PgxPressReleaseRepository) FindPressReleaseByID(ctx context.Context, pressReleaseID string) (*domain.PressRelease, error) {
	query := `SELECT ` + pressReleaseColumns + ` FROM press_releases WHERE press_release_id = $1;`
	pressRelease, err := scanPressRelease(r.Pool.QueryRow(ctx, query, pressReleaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find press release by ID %s: %w", pressReleaseID, err)
	}
	return pressRelease, nil
}

func (r *PgxPressReleaseRepository) ListPressReleases(ctx context.Context, limit int, nextToken *string) ([]domain.PressRelease, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + pressReleaseColumns + ` FROM press_releases`
	args := []any{}
	argPos := 1

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += fmt.Sprintf(` WHERE created_at < $%d`, argPos)
		args = append(args, cursor)
		argPos++
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d;`, argPos)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query press releases: %w", err)
	}
	defer rows.Close()

	releases := []domain.PressRelease{}
	for rows.Next() {
		pr, err := scanPressRelease(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan press release row: %w", err)
		}
		releases = append(releases, *pr)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating press release rows: %w", rows.Err())
	}

	var token *string
	if len(releases) > limit {
		releases = releases[:limit]
		t := pagination.EncodeDateBasedToken(releases[len(releases)-1].CreatedAt)
		token = &t
	}

	return releases, token, nil
}

func (r *PgxPressReleaseRepository) UpdatePressRelease(ctx context.Context, pressRelease domain.PressRelease) error {
	query := `
		UPDATE press_releases
		SET title = $1, description = $2, content = $3, client = $4, partner = $5, country = $6,
			is_published = $7, last_updated_at = $8, last_updated_by = $9
		WHERE press_release_id = $10;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		pressRelease.Title,
		pressRelease.Description,
		pressRelease.Content,
		pressRelease.Client,
		pressRelease.Partner,
		pressRelease.Country,
		pressRelease.IsPublished,
		pressRelease.LastUpdatedAt,
		pressRelease.LastUpdatedBy,
		pressRelease.PressReleaseID,
	)
	if err != nil {
		return translatePgError(err, "failed to update press release")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("press release not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// ShareWithJournalists records the distribution in one batch. Re-sharing with
// a journalist who already has the release is a no-op via ON CONFLICT.
func (r *PgxPressReleaseRepository) ShareWithJournalists(ctx context.Context, pressReleaseID string, journalistIDs []string, sharedBy string, now time.Time) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO press_release_shares (press_release_id, journalist_id, shared_at, shared_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (press_release_id, journalist_id) DO NOTHING;
	`
	for _, journalistID := range journalistIDs {
		batch.Queue(query, pressReleaseID, journalistID, now, sharedBy)
	}

	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return translatePgError(err, "failed to insert press release shares")
	}
	return nil
}

func (r *PgxPressReleaseRepository) ListSharedPressReleases(ctx context.Context, journalistID string) ([]domain.PressRelease, error) {
	query := `
		SELECT pr.press_release_id, pr.title, pr.description, pr.content, pr.client, pr.partner, pr.country,
			pr.is_published, pr.created_at, pr.created_by, pr.last_updated_at, pr.last_updated_by
		FROM press_releases pr
		JOIN press_release_shares s ON s.press_release_id = pr.press_release_id
		WHERE s.journalist_id = $1
		ORDER BY s.shared_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, journalistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shared press releases: %w", err)
	}
	defer rows.Close()

	releases := []domain.PressRelease{}
	for rows.Next() {
		pr, err := scanPressRelease(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shared press release row: %w", err)
		}
		releases = append(releases, *pr)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating shared press release rows: %w", rows.Err())
	}

	return releases, nil
}
