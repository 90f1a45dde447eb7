package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/wezaprosoft/press_rewards_app/internal/core/domain"
	portsrepo "github.com/wezaprosoft/press_rewards_app/internal/core/ports/repositories"
	portssvc "github.com/wezaprosoft/press_rewards_app/internal/core/ports/services"
	"github.com/wezaprosoft/press_rewards_app/internal/dto"
	"github.com/wezaprosoft/press_rewards_app/internal/middleware"
	"github.com/wezaprosoft/press_rewards_app/internal/utils/rewards"
)

// rewardService derives point balances and cash values from the ledger.
// It never mutates state; the journalist record carries no stored total.
type rewardService struct {
	pointTxnRepo portsrepo.PointTransactionRepository
}

// NewRewardService creates a new reward balance service.
func NewRewardService(pointTxnRepo portsrepo.PointTransactionRepository) portssvc.RewardSvcFacade {
	return &rewardService{pointTxnRepo: pointTxnRepo}
}

var _ portssvc.RewardSvcFacade = (*rewardService)(nil)

// CurrentPoints computes the journalist's balance from the two per-type
// ledger sums. Withdrawal entries are stored negative, so the result equals
// the plain sum of all entries.
func (s *rewardService) CurrentPoints(ctx context.Context, journalistID string) (int64, error) {
	earnedType := domain.TransactionEarned
	earned, err := s.pointTxnRepo.SumPoints(ctx, journalistID, &earnedType)
	if err != nil {
		return 0, fmt.Errorf("failed to sum earned points: %w", err)
	}

	withdrawalType := domain.TransactionWithdrawal
	withdrawn, err := s.pointTxnRepo.SumPoints(ctx, journalistID, &withdrawalType)
	if err != nil {
		return 0, fmt.Errorf("failed to sum withdrawn points: %w", err)
	}

	return rewards.CurrentPoints(earned, withdrawn), nil
}

// Balance returns the current points and their KSH equivalent.
func (s *rewardService) Balance(ctx context.Context, journalistID string) (int64, decimal.Decimal, error) {
	points, err := s.CurrentPoints(ctx, journalistID)
	if err != nil {
		return 0, decimal.Zero, err
	}
	return points, rewards.CashAmount(points), nil
}

// ListTransactions returns a page of the journalist's ledger entries.
func (s *rewardService) ListTransactions(ctx context.Context, journalistID string, params dto.ListParams) ([]domain.PointTransaction, *string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	txns, nextToken, err := s.pointTxnRepo.ListTransactionsByJournalist(ctx, journalistID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list point transactions", slog.String("error", err.Error()), slog.String("journalist_id", journalistID))
		return nil, nil, fmt.Errorf("failed to retrieve point transactions: %w", err)
	}

	return txns, nextToken, nil
}
