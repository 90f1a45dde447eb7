package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/wezaprosoft/press_rewards_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	journalistRepo := newPgxJournalistRepository(dbPool)
	pressReleaseRepo := newPgxPressReleaseRepository(dbPool)
	linkRepo := newPgxPublishedLinkRepository(dbPool)
	pointTxnRepo := newPgxPointTransactionRepository(dbPool)
	withdrawalRepo := newPgxWithdrawalRepository(dbPool, journalistRepo)
	userRepo := newPgxUserRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		JournalistRepo:   journalistRepo,
		PressReleaseRepo: pressReleaseRepo,
		LinkRepo:         linkRepo,
		PointTxnRepo:     pointTxnRepo,
		WithdrawalRepo:   withdrawalRepo,
		UserRepo:         userRepo,
		ReportingRepo:    reportingRepo,
	}
}
