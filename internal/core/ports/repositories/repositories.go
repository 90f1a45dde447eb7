// Package repositories defines the persistence ports consumed by the core
// services. Methods carrying a pgx.Tx participate in a caller-visible database
// transaction; methods without one manage their own transaction when they
// perform a compound write. Context is included on every call for
// cancellation and timeouts.
package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/wezaprosoft/press_rewards_app/internal/core/domain"
)

// JournalistRepository defines persistence operations for journalist records.
// Journalist rows never carry a stored balance; FindJournalistByIDForUpdate
// exists so compound operations can serialize on the journalist row while
// they read ledger sums.
type JournalistRepository interface {
	SaveJournalist(ctx context.Context, journalist domain.Journalist) error
	FindJournalistByID(ctx context.Context, journalistID string) (*domain.Journalist, error)
	FindJournalistByEmail(ctx context.Context, email string) (*domain.Journalist, error)
	FindJournalistByIDForUpdate(ctx context.Context, tx pgx.Tx, journalistID string) (*domain.Journalist, error)
	ListJournalists(ctx context.Context, search string, limit int, nextToken *string) ([]domain.Journalist, *string, error)
	UpdateJournalist(ctx context.Context, journalist domain.Journalist) error
}

// PressReleaseRepository defines persistence operations for press release
// metadata and the shared-with relation.
type PressReleaseRepository interface {
	SavePressRelease(ctx context.Context, pressRelease domain.PressRelease) error
	FindPressReleaseByID(ctx context.Context, pressReleaseID string) (*domain.PressRelease, error)
	ListPressReleases(ctx context.Context, limit int, nextToken *string) ([]domain.PressRelease, *string, error)
	UpdatePressRelease(ctx context.Context, pressRelease domain.PressRelease) error
	ShareWithJournalists(ctx context.Context, pressReleaseID string, journalistIDs []string, sharedBy string, now time.Time) error
	ListSharedPressReleases(ctx context.Context, journalistID string) ([]domain.PressRelease, error)
}

// ListLinksFilter narrows a published link listing.
type ListLinksFilter struct {
	Status       *domain.LinkStatus
	JournalistID *string
}

// PublishedLinkRepository defines persistence operations for published links
// and the review state machine's compound writes. ApproveLinkAndAward and
// RejectLink own their database transaction: they re-check the pending status
// under a row lock so concurrent reviews of the same link serialize, and a
// terminal link always fails the transition without side effects.
type PublishedLinkRepository interface {
	SaveLink(ctx context.Context, link domain.PublishedLink) error
	FindLinkByID(ctx context.Context, linkID string) (*domain.PublishedLink, error)
	// ApproveLinkAndAward flips the link to approved and, when it is the first
	// approved link for its (journalist, press release) pair, appends the
	// given award to the ledger in the same transaction. It reports whether
	// the award was appended.
	ApproveLinkAndAward(ctx context.Context, linkID string, reviewerID string, reviewedAt time.Time, award domain.PointTransaction) (bool, error)
	RejectLink(ctx context.Context, linkID string, reviewerID string, reviewedAt time.Time, notes string) error
	ListLinks(ctx context.Context, filter ListLinksFilter, limit int, nextToken *string) ([]domain.PublishedLink, *string, error)
}

// PointTransactionRepository is the append-only ledger store. It has no
// update or delete operations. Sum queries do not validate
// sign-vs-type consistency; the state machines own that invariant.
type PointTransactionRepository interface {
	AppendTransaction(ctx context.Context, txn domain.PointTransaction) error
	AppendTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.PointTransaction) error
	// SumPoints returns the signed sum of points for the journalist,
	// optionally filtered by type. A journalist with no entries sums to zero.
	SumPoints(ctx context.Context, journalistID string, txnType *domain.TransactionType) (int64, error)
	SumPointsInTx(ctx context.Context, tx pgx.Tx, journalistID string, txnType *domain.TransactionType) (int64, error)
	ListTransactionsByJournalist(ctx context.Context, journalistID string, limit int, nextToken *string) ([]domain.PointTransaction, *string, error)
}

// ProcessWithdrawalParams carries one reviewer action on a withdrawal
// request. Debit is non-nil only for the completed target; it is appended to
// the ledger in the same transaction as the status update.
type ProcessWithdrawalParams struct {
	WithdrawalID         string
	NewStatus            domain.WithdrawalStatus
	ProcessorID          string
	ProcessedAt          time.Time
	Notes                *string
	TransactionReference *string
	Debit                *domain.PointTransaction
}

// ListWithdrawalsFilter narrows a withdrawal listing.
type ListWithdrawalsFilter struct {
	JournalistID *string
	Status       *domain.WithdrawalStatus
}

// WithdrawalRepository defines persistence operations for withdrawal requests.
// CreateWithdrawal owns its transaction: it locks the journalist row, derives
// the balance from in-transaction ledger sums and fails with
// apperrors.ErrInsufficientPoints before inserting, so two concurrent
// requests cannot both pass the balance check. ProcessWithdrawal likewise
// locks the withdrawal row and applies the status update and the optional
// ledger debit atomically.
type WithdrawalRepository interface {
	CreateWithdrawal(ctx context.Context, withdrawal domain.WithdrawalRequest) error
	FindWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.WithdrawalRequest, error)
	ProcessWithdrawal(ctx context.Context, params ProcessWithdrawalParams) (*domain.WithdrawalRequest, error)
	ListWithdrawals(ctx context.Context, filter ListWithdrawalsFilter, limit int, nextToken *string) ([]domain.WithdrawalRequest, *string, error)
}

// UserRepository defines persistence operations for authenticating users.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// RepositoryProvider bundles the concrete repositories for injection into the
// service layer.
type RepositoryProvider struct {
	JournalistRepo   JournalistRepository
	PressReleaseRepo PressReleaseRepository
	LinkRepo         PublishedLinkRepository
	PointTxnRepo     PointTransactionRepository
	WithdrawalRepo   WithdrawalRepository
	UserRepo         UserRepository
	ReportingRepo    ReportingRepository
}

// ReportingRepository serves read-only aggregations for dashboards. Nothing
// here mutates state; every call recomputes from the ledger and workflow
// tables.
type ReportingRepository interface {
	GetAdminDashboard(ctx context.Context, topN int) (*domain.AdminDashboard, error)
	GetPressReleaseStats(ctx context.Context, pressReleaseID string) (*domain.PressReleaseStats, error)
}
