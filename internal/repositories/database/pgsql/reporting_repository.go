package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/wezaprosoft/press_rewards_app/internal/core/domain"
	portsrepo "github.com/wezaprosoft/press_rewards_app/internal/core/ports/repositories"
)

// PgxReportingRepository serves the dashboard aggregations. Every query reads
// committed state only; nothing here writes.
type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) GetAdminDashboard(ctx context.Context, topN int) (*domain.AdminDashboard, error) {
	dashboard := &domain.AdminDashboard{
		TotalCashProcessed: decimal.Zero,
		TopJournalists:     []domain.JournalistPoints{},
	}

	totalsQuery := `
		SELECT
			(SELECT COUNT(*) FROM published_links WHERE status = $1),
			(SELECT COUNT(*) FROM withdrawal_requests WHERE status = $2),
			(SELECT COALESCE(SUM(points), 0) FROM point_transactions WHERE transaction_type = $3),
			(SELECT ABS(COALESCE(SUM(points), 0)) FROM point_transactions WHERE transaction_type = $4),
			(SELECT COALESCE(SUM(amount), 0) FROM withdrawal_requests WHERE status IN ($5, $6));
	`
	err := r.Pool.QueryRow(ctx, totalsQuery,
		domain.LinkPending,
		domain.WithdrawalPending,
		domain.TransactionEarned,
		domain.TransactionWithdrawal,
		domain.WithdrawalApproved,
		domain.WithdrawalCompleted,
	).Scan(
		&dashboard.PendingLinks,
		&dashboard.PendingWithdrawals,
		&dashboard.TotalPointsAwarded,
		&dashboard.TotalPointsWithdrawn,
		&dashboard.TotalCashProcessed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query dashboard totals: %w", err)
	}

	// Ranking uses the same SUM(points) the balance computation uses, so the
	// leaderboard and individual balances always agree.
	topQuery := `
		SELECT j.journalist_id, j.name, j.email, COALESCE(SUM(t.points), 0) AS total_points
		FROM journalists j
		LEFT JOIN point_transactions t ON t.journalist_id = j.journalist_id
		GROUP BY j.journalist_id, j.name, j.email
		ORDER BY total_points DESC
		LIMIT $1;
	`
	rows, err := r.Pool.Query(ctx, topQuery, topN)
	if err != nil {
		return nil, fmt.Errorf("failed to query top journalists: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var jp domain.JournalistPoints
		if err := rows.Scan(&jp.JournalistID, &jp.Name, &jp.Email, &jp.Points); err != nil {
			return nil, fmt.Errorf("failed to scan top journalist row: %w", err)
		}
		dashboard.TopJournalists = append(dashboard.TopJournalists, jp)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating top journalist rows: %w", rows.Err())
	}

	return dashboard, nil
}

func (r *PgxReportingRepository) GetPressReleaseStats(ctx context.Context, pressReleaseID string) (*domain.PressReleaseStats, error) {
	stats := &domain.PressReleaseStats{
		PressReleaseID: pressReleaseID,
		LinkCounts:     []domain.LinkStatusCount{},
		EngagementRate: decimal.Zero,
	}

	countsQuery := `
		SELECT status, COUNT(*)
		FROM published_links
		WHERE press_release_id = $1
		GROUP BY status
		ORDER BY status;
	`
	rows, err := r.Pool.Query(ctx, countsQuery, pressReleaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query link status counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sc domain.LinkStatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan link status count row: %w", err)
		}
		stats.LinkCounts = append(stats.LinkCounts, sc)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating link status count rows: %w", rows.Err())
	}

	engagementQuery := `
		SELECT
			(SELECT COUNT(*) FROM press_release_shares WHERE press_release_id = $1),
			(SELECT COUNT(DISTINCT journalist_id) FROM published_links WHERE press_release_id = $1 AND status = $2);
	`
	err = r.Pool.QueryRow(ctx, engagementQuery, pressReleaseID, domain.LinkApproved).Scan(
		&stats.JournalistsShared,
		&stats.JournalistsPublished,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query engagement counts: %w", err)
	}

	if stats.JournalistsShared > 0 {
		stats.EngagementRate = decimal.NewFromInt(stats.JournalistsPublished).
			Div(decimal.NewFromInt(stats.JournalistsShared)).
			Mul(decimal.NewFromInt(100))
	}

	return stats, nil
}
