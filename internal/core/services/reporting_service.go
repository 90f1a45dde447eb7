package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wezaprosoft/press_rewards_app/internal/core/domain"
	portsrepo "github.com/wezaprosoft/press_rewards_app/internal/core/ports/repositories"
	portssvc "github.com/wezaprosoft/press_rewards_app/internal/core/ports/services"
	"github.com/wezaprosoft/press_rewards_app/internal/dto"
	"github.com/wezaprosoft/press_rewards_app/internal/middleware"
)

const topJournalistsLimit = 10

// reportingService serves read-only dashboard aggregations. Everything is
// recomputed from the ledger and workflow tables on each request.
type reportingService struct {
	reportingRepo    portsrepo.ReportingRepository
	journalistRepo   portsrepo.JournalistRepository
	pressReleaseRepo portsrepo.PressReleaseRepository
	linkRepo         portsrepo.PublishedLinkRepository
	withdrawalRepo   portsrepo.WithdrawalRepository
	rewardSvc        portssvc.RewardSvcFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	reportingRepo portsrepo.ReportingRepository,
	journalistRepo portsrepo.JournalistRepository,
	pressReleaseRepo portsrepo.PressReleaseRepository,
	linkRepo portsrepo.PublishedLinkRepository,
	withdrawalRepo portsrepo.WithdrawalRepository,
	rewardSvc portssvc.RewardSvcFacade,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo:    reportingRepo,
		journalistRepo:   journalistRepo,
		pressReleaseRepo: pressReleaseRepo,
		linkRepo:         linkRepo,
		withdrawalRepo:   withdrawalRepo,
		rewardSvc:        rewardSvc,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// AdminDashboard returns the staff review-queue and ledger totals.
func (s *reportingService) AdminDashboard(ctx context.Context) (*domain.AdminDashboard, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	dashboard, err := s.reportingRepo.GetAdminDashboard(ctx, topJournalistsLimit)
	if err != nil {
		logger.Error("Failed to build admin dashboard", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to build admin dashboard: %w", err)
	}

	return dashboard, nil
}

// JournalistDashboard composes the journalist-facing view: shared press
// releases, submitted links, derived balance, and withdrawal history.
func (s *reportingService) JournalistDashboard(ctx context.Context, journalistID string) (*dto.JournalistDashboardResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journalist, err := s.journalistRepo.FindJournalistByID(ctx, journalistID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journalist %s: %w", journalistID, err)
	}

	shared, err := s.pressReleaseRepo.ListSharedPressReleases(ctx, journalistID)
	if err != nil {
		logger.Error("Failed to list shared press releases", slog.String("error", err.Error()), slog.String("journalist_id", journalistID))
		return nil, fmt.Errorf("failed to list shared press releases: %w", err)
	}

	links, _, err := s.linkRepo.ListLinks(ctx, portsrepo.ListLinksFilter{JournalistID: &journalistID}, 100, nil)
	if err != nil {
		logger.Error("Failed to list links for dashboard", slog.String("error", err.Error()), slog.String("journalist_id", journalistID))
		return nil, fmt.Errorf("failed to list links: %w", err)
	}

	points, cash, err := s.rewardSvc.Balance(ctx, journalistID)
	if err != nil {
		return nil, err
	}

	withdrawals, _, err := s.withdrawalRepo.ListWithdrawals(ctx, portsrepo.ListWithdrawalsFilter{JournalistID: &journalistID}, 100, nil)
	if err != nil {
		logger.Error("Failed to list withdrawals for dashboard", slog.String("error", err.Error()), slog.String("journalist_id", journalistID))
		return nil, fmt.Errorf("failed to list withdrawals: %w", err)
	}

	resp := &dto.JournalistDashboardResponse{
		Journalist:         dto.ToJournalistResponse(journalist),
		PressReleases:      dto.ToPressReleaseResponses(shared),
		PublishedLinks:     dto.ToPublishedLinkResponses(links),
		TotalPoints:        points,
		PointsInKSH:        cash,
		WithdrawalRequests: dto.ToWithdrawalResponses(withdrawals),
	}
	return resp, nil
}

// PressReleaseStats summarizes journalist engagement with one press release.
func (s *reportingService) PressReleaseStats(ctx context.Context, pressReleaseID string) (*domain.PressReleaseStats, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.pressReleaseRepo.FindPressReleaseByID(ctx, pressReleaseID); err != nil {
		return nil, fmt.Errorf("failed to find press release %s: %w", pressReleaseID, err)
	}

	stats, err := s.reportingRepo.GetPressReleaseStats(ctx, pressReleaseID)
	if err != nil {
		logger.Error("Failed to build press release stats", slog.String("error", err.Error()), slog.String("press_release_id", pressReleaseID))
		return nil, fmt.Errorf("failed to build press release stats: %w", err)
	}

	return stats, nil
}
