package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/wezaprosoft/press_rewards_app/internal/core/domain"
	"github.com/wezaprosoft/press_rewards_app/internal/dto"
)

// RewardSvcFacade is the balance calculator: pure derived values over the
// point ledger, no mutation.
type RewardSvcFacade interface {
	CurrentPoints(ctx context.Context, journalistID string) (int64, error)
	// Balance returns the current points together with their cash equivalent.
	Balance(ctx context.Context, journalistID string) (int64, decimal.Decimal, error)
	ListTransactions(ctx context.Context, journalistID string, params dto.ListParams) ([]domain.PointTransaction, *string, error)
}

// LinkReviewSvcFacade governs a published link's lifecycle from pending to
// approved or rejected, and triggers point awards on first approval.
type LinkReviewSvcFacade interface {
	SubmitLink(ctx context.Context, journalistID string, req dto.SubmitLinkRequest) (*domain.PublishedLink, error)
	ApproveLink(ctx context.Context, linkID string, reviewerID string) (*domain.PublishedLink, error)
	RejectLink(ctx context.Context, linkID string, reviewerID string, notes string) (*domain.PublishedLink, error)
	GetLink(ctx context.Context, linkID string) (*domain.PublishedLink, error)
	ListLinks(ctx context.Context, filter dto.ListLinksParams) ([]domain.PublishedLink, *string, error)
}

// WithdrawalSvcFacade governs a withdrawal request's lifecycle from pending
// to approved, rejected or completed, and triggers the ledger debit on
// completion.
type WithdrawalSvcFacade interface {
	RequestWithdrawal(ctx context.Context, journalistID string, req dto.CreateWithdrawalRequest) (*domain.WithdrawalRequest, error)
	ProcessWithdrawal(ctx context.Context, withdrawalID string, processorID string, req dto.ProcessWithdrawalRequest) (*domain.WithdrawalRequest, error)
	GetWithdrawal(ctx context.Context, withdrawalID string) (*domain.WithdrawalRequest, error)
	ListWithdrawals(ctx context.Context, filter dto.ListWithdrawalsParams) ([]domain.WithdrawalRequest, *string, error)
}

// ReportingSvcFacade aggregates ledger and workflow data for dashboards.
type ReportingSvcFacade interface {
	AdminDashboard(ctx context.Context) (*domain.AdminDashboard, error)
	JournalistDashboard(ctx context.Context, journalistID string) (*dto.JournalistDashboardResponse, error)
	PressReleaseStats(ctx context.Context, pressReleaseID string) (*domain.PressReleaseStats, error)
}
