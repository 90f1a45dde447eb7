package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wezaprosoft/press_rewards_app/internal/apperrors"
	"github.com/wezaprosoft/press_rewards_app/internal/core/domain"
	portsrepo "github.com/wezaprosoft/press_rewards_app/internal/core/ports/repositories"
	portssvc "github.com/wezaprosoft/press_rewards_app/internal/core/ports/services"
	"github.com/wezaprosoft/press_rewards_app/internal/dto"
	"github.com/wezaprosoft/press_rewards_app/internal/middleware"
	"github.com/wezaprosoft/press_rewards_app/internal/utils/rewards"
)

// withdrawalService governs the withdrawal request state machine:
// pending -> approved | rejected | completed, all terminal. Completion
// appends the negative ledger entry in the same storage transaction as the
// status update. The request-time balance check runs under a journalist row
// lock inside the repository so two concurrent requests cannot both pass.
type withdrawalService struct {
	withdrawalRepo portsrepo.WithdrawalRepository
	journalistRepo portsrepo.JournalistRepository
}

// NewWithdrawalService creates a new withdrawal service.
func NewWithdrawalService(
	withdrawalRepo portsrepo.WithdrawalRepository,
	journalistRepo portsrepo.JournalistRepository,
) portssvc.WithdrawalSvcFacade {
	return &withdrawalService{
		withdrawalRepo: withdrawalRepo,
		journalistRepo: journalistRepo,
	}
}

var _ portssvc.WithdrawalSvcFacade = (*withdrawalService)(nil)

// RequestWithdrawal creates a pending withdrawal for the journalist. The cash
// amount is fixed here from the conversion rate and never recomputed. Fails
// with apperrors.ErrInsufficientPoints when the requested points exceed the
// balance at call time; no row is created in that case.
func (s *withdrawalService) RequestWithdrawal(ctx context.Context, journalistID string, req dto.CreateWithdrawalRequest) (*domain.WithdrawalRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Points <= 0 {
		return nil, fmt.Errorf("%w: points must be positive", apperrors.ErrValidation)
	}
	if _, err := s.journalistRepo.FindJournalistByID(ctx, journalistID); err != nil {
		return nil, fmt.Errorf("failed to find journalist %s: %w", journalistID, err)
	}

	now := time.Now().UTC()
	withdrawal := domain.WithdrawalRequest{
		WithdrawalID:   uuid.NewString(),
		JournalistID:   journalistID,
		Points:         req.Points,
		Amount:         rewards.CashAmount(req.Points),
		Status:         domain.WithdrawalPending,
		PaymentMethod:  req.PaymentMethod,
		PaymentDetails: req.PaymentDetails,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     journalistID,
			LastUpdatedAt: now,
			LastUpdatedBy: journalistID,
		},
	}

	err := retryOnTxConflict(ctx, "request withdrawal", func() error {
		return s.withdrawalRepo.CreateWithdrawal(ctx, withdrawal)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientPoints) {
			logger.Warn("Withdrawal rejected for insufficient points",
				slog.String("journalist_id", journalistID),
				slog.Int64("requested_points", req.Points),
			)
			return nil, err
		}
		logger.Error("Failed to create withdrawal request", slog.String("error", err.Error()), slog.String("journalist_id", journalistID))
		return nil, fmt.Errorf("failed to create withdrawal request: %w", err)
	}

	logger.Info("Withdrawal requested",
		slog.String("withdrawal_id", withdrawal.WithdrawalID),
		slog.Int64("points", withdrawal.Points),
		slog.String("amount", withdrawal.Amount.String()),
	)
	return &withdrawal, nil
}

// ProcessWithdrawal applies one reviewer action to a withdrawal request.
// Completion sets the transaction reference and appends the negative ledger
// entry atomically with the status update.
//
// The transition guard is deliberately asymmetric, matching the established
// operator flow: only the approved target requires the request to still be
// pending. Processing straight from pending to completed, or re-processing a
// rejected request to completed, is allowed.
func (s *withdrawalService) ProcessWithdrawal(ctx context.Context, withdrawalID string, processorID string, req dto.ProcessWithdrawalRequest) (*domain.WithdrawalRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	newStatus := domain.WithdrawalStatus(req.Status)
	if !newStatus.ValidProcessTarget() {
		return nil, fmt.Errorf("%w: use 'approved', 'rejected' or 'completed'", apperrors.ErrInvalidStatus)
	}

	withdrawal, err := s.withdrawalRepo.FindWithdrawalByID(ctx, withdrawalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find withdrawal %s: %w", withdrawalID, err)
	}
	if newStatus == domain.WithdrawalApproved && withdrawal.Status != domain.WithdrawalPending {
		return nil, fmt.Errorf("%w: withdrawal request is already %s", apperrors.ErrInvalidTransition, withdrawal.Status)
	}

	now := time.Now().UTC()
	params := portsrepo.ProcessWithdrawalParams{
		WithdrawalID: withdrawalID,
		NewStatus:    newStatus,
		ProcessorID:  processorID,
		ProcessedAt:  now,
		Notes:        req.Notes,
	}

	if newStatus == domain.WithdrawalCompleted {
		params.TransactionReference = req.TransactionReference
		params.Debit = &domain.PointTransaction{
			TransactionID: uuid.NewString(),
			JournalistID:  withdrawal.JournalistID,
			Points:        -withdrawal.Points,
			Type:          domain.TransactionWithdrawal,
			Description:   fmt.Sprintf("Points withdrawn - %s KSH", withdrawal.Amount.String()),
			CreatedAt:     now,
			CreatedBy:     processorID,
		}
	}

	var processed *domain.WithdrawalRequest
	err = retryOnTxConflict(ctx, "process withdrawal", func() error {
		var txErr error
		processed, txErr = s.withdrawalRepo.ProcessWithdrawal(ctx, params)
		return txErr
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidTransition) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		logger.Error("Failed to process withdrawal", slog.String("error", err.Error()), slog.String("withdrawal_id", withdrawalID))
		return nil, fmt.Errorf("failed to process withdrawal: %w", err)
	}

	logger.Info("Withdrawal processed",
		slog.String("withdrawal_id", withdrawalID),
		slog.String("new_status", string(newStatus)),
		slog.String("processor_id", processorID),
	)
	return processed, nil
}

// GetWithdrawal retrieves a single withdrawal request.
func (s *withdrawalService) GetWithdrawal(ctx context.Context, withdrawalID string) (*domain.WithdrawalRequest, error) {
	withdrawal, err := s.withdrawalRepo.FindWithdrawalByID(ctx, withdrawalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find withdrawal %s: %w", withdrawalID, err)
	}
	return withdrawal, nil
}

// ListWithdrawals returns a page of withdrawal requests, optionally filtered
// by journalist and status.
func (s *withdrawalService) ListWithdrawals(ctx context.Context, params dto.ListWithdrawalsParams) ([]domain.WithdrawalRequest, *string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.ListWithdrawalsFilter{JournalistID: params.JournalistID}
	if params.Status != nil {
		status := domain.WithdrawalStatus(*params.Status)
		switch status {
		case domain.WithdrawalPending, domain.WithdrawalApproved, domain.WithdrawalRejected, domain.WithdrawalCompleted:
			filter.Status = &status
		default:
			return nil, nil, fmt.Errorf("%w: unknown withdrawal status %q", apperrors.ErrValidation, *params.Status)
		}
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	withdrawals, nextToken, err := s.withdrawalRepo.ListWithdrawals(ctx, filter, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list withdrawals", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to retrieve withdrawals: %w", err)
	}

	return withdrawals, nextToken, nil
}
