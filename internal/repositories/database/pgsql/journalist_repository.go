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
)

type PgxJournalistRepository struct {
	BaseRepository
}

func newPgxJournalistRepository(pool *pgxpool.Pool) portsrepo.JournalistRepository {
	return &PgxJournalistRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalistRepository = (*PgxJournalistRepository)(nil)

const journalistColumns = `journalist_id, email, name, phone, country, title, media_house,
	created_at, created_by, last_updated_at, last_updated_by`

func scanJournalist(row pgx.Row) (*domain.Journalist, error) {
	var j domain.Journalist
	err := row.Scan(
		&j.JournalistID,
		&j.Email,
		&j.Name,
		&j.Phone,
		&j.Country,
		&j.Title,
		&j.MediaHouse,
		&j.CreatedAt,
		&j.CreatedBy,
		&j.LastUpdatedAt,
		&j.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *PgxJournalistRepository) SaveJournalist(ctx context.Context, journalist domain.Journalist) error {
	query := `
		INSERT INTO journalists (journalist_id, email, name, phone, country, title, media_house,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		journalist.JournalistID,
		journalist.Email,
		journalist.Name,
		journalist.Phone,
		journalist.Country,
		journalist.Title,
		journalist.MediaHouse,
		journalist.CreatedAt,
		journalist.CreatedBy,
		journalist.LastUpdatedAt,
		journalist.LastUpdatedBy,
	)
	if err != nil {
		return translatePgError(err, "failed to insert journalist")
	}
	return nil
}

func (r *PgxJournalistRepository) FindJournalistByID(ctx context.Context, journalistID string) (*domain.Journalist, error) {
	query := `SELECT ` + journalistColumns + ` FROM journalists WHERE journalist_id = $1;`
	journalist, err := scanJournalist(r.Pool.QueryRow(ctx, query, journalistID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journalist by ID %s: %w", journalistID, err)
	}
	return journalist, nil
}

func (r *PgxJournalistRepository) FindJournalistByEmail(ctx context.Context, email string) (*domain.Journalist, error) {
	query := `SELECT ` + journalistColumns + ` FROM journalists WHERE email = $1;`
	journalist, err := scanJournalist(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journalist by email: %w", err)
	}
	return journalist, nil
}

// FindJournalistByIDForUpdate locks the journalist row within the caller's
// transaction. Compound writes lock here before reading ledger sums so
// concurrent withdrawals against the same journalist serialize.
func (r *PgxJournalistRepository) FindJournalistByIDForUpdate(ctx context.Context, tx pgx.Tx, journalistID string) (*domain.Journalist, error) {
	query := `SELECT ` + journalistColumns + ` FROM journalists WHERE journalist_id = $1 FOR UPDATE;`
	journalist, err := scanJournalist(tx.QueryRow(ctx, query, journalistID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, translatePgError(err, "failed to lock journalist "+journalistID)
	}
	return journalist, nil
}

func (r *PgxJournalistRepository) ListJournalists(ctx context.Context, search string, limit int, nextToken *string) ([]domain.Journalist, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + journalistColumns + ` FROM journalists WHERE 1=1`
	args := []any{}
	argPos := 1

	if search != "" {
		query += fmt.Sprintf(` AND (email ILIKE $%d OR name ILIKE $%d OR country ILIKE $%d OR title ILIKE $%d OR media_house ILIKE $%d)`,
			argPos, argPos, argPos, argPos, argPos)
		args = append(args, "%"+search+"%")
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

	// Fetch one extra row to decide whether a next page exists.
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d;`, argPos)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journalists: %w", err)
	}
	defer rows.Close()

	journalists := []domain.Journalist{}
	for rows.Next() {
		j, err := scanJournalist(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journalist row: %w", err)
		}
		journalists = append(journalists, *j)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating journalist rows: %w", rows.Err())
	}

	var token *string
	if len(journalists) > limit {
		journalists = journalists[:limit]
		t := pagination.EncodeDateBasedToken(journalists[len(journalists)-1].CreatedAt)
		token = &t
	}

	return journalists, token, nil
}

func (r *PgxJournalistRepository) UpdateJournalist(ctx context.Context, journalist domain.Journalist) error {
	query := `
		UPDATE journalists
		SET name = $1, phone = $2, country = $3, title = $4, media_house = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE journalist_id = $8;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		journalist.Name,
		journalist.Phone,
		journalist.Country,
		journalist.Title,
		journalist.MediaHouse,
		journalist.LastUpdatedAt,
		journalist.LastUpdatedBy,
		journalist.JournalistID,
	)
	if err != nil {
		return translatePgError(err, "failed to update journalist")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("journalist not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
