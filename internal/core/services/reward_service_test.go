package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/wezaprosoft/press_rewards_app/internal/core/domain"
	portssvc "github.com/wezaprosoft/press_rewards_app/internal/core/ports/services"
	"github.com/wezaprosoft/press_rewards_app/internal/core/services"
	"github.com/wezaprosoft/press_rewards_app/internal/dto"
	"github.com/wezaprosoft/press_rewards_app/internal/utils/rewards"
)

// --- Mock PointTransactionRepository ---
type MockPointTransactionRepository struct {
	mock.Mock
}

func (m *MockPointTransactionRepository) AppendTransaction(ctx context.Context, txn domain.PointTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockPointTransactionRepository) AppendTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.PointTransaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockPointTransactionRepository) SumPoints(ctx context.Context, journalistID string, txnType *domain.TransactionType) (int64, error) {
	args := m.Called(ctx, journalistID, txnType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPointTransactionRepository) SumPointsInTx(ctx context.Context, tx pgx.Tx, journalistID string, txnType *domain.TransactionType) (int64, error) {
	args := m.Called(ctx, tx, journalistID, txnType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPointTransactionRepository) ListTransactionsByJournalist(ctx context.Context, journalistID string, limit int, nextToken *string) ([]domain.PointTransaction, *string, error) {
	args := m.Called(ctx, journalistID, limit, nextToken)
	var txns []domain.PointTransaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.PointTransaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func matchTxnType(want domain.TransactionType) interface{} {
	return mock.MatchedBy(func(txnType *domain.TransactionType) bool {
		return txnType != nil && *txnType == want
	})
}

// --- Test Suite ---
type RewardServiceTestSuite struct {
	suite.Suite
	mockPointTxnRepo *MockPointTransactionRepository
	service          portssvc.RewardSvcFacade
}

func (suite *RewardServiceTestSuite) SetupTest() {
	suite.mockPointTxnRepo = new(MockPointTransactionRepository)
	suite.service = services.NewRewardService(suite.mockPointTxnRepo)
}

// --- CurrentPoints Tests ---
func (suite *RewardServiceTestSuite) TestCurrentPoints_SubtractsWithdrawals() {
	ctx := context.Background()
	journalistID := uuid.NewString()

	suite.mockPointTxnRepo.On("SumPoints", ctx, journalistID, matchTxnType(domain.TransactionEarned)).Return(int64(25), nil).Once()
	// Withdrawal entries are stored negative; the balance formula takes the
	// absolute value so the sign convention cannot double-subtract.
	suite.mockPointTxnRepo.On("SumPoints", ctx, journalistID, matchTxnType(domain.TransactionWithdrawal)).Return(int64(-10), nil).Once()

	points, err := suite.service.CurrentPoints(ctx, journalistID)

	suite.Require().NoError(err)
	suite.Equal(int64(15), points)
	suite.mockPointTxnRepo.AssertExpectations(suite.T())
}

func (suite *RewardServiceTestSuite) TestCurrentPoints_EmptyLedgerIsZero() {
	ctx := context.Background()
	journalistID := uuid.NewString()

	suite.mockPointTxnRepo.On("SumPoints", ctx, journalistID, matchTxnType(domain.TransactionEarned)).Return(int64(0), nil).Once()
	suite.mockPointTxnRepo.On("SumPoints", ctx, journalistID, matchTxnType(domain.TransactionWithdrawal)).Return(int64(0), nil).Once()

	points, err := suite.service.CurrentPoints(ctx, journalistID)

	suite.Require().NoError(err)
	suite.Equal(int64(0), points)
}

func (suite *RewardServiceTestSuite) TestCurrentPoints_SumError() {
	ctx := context.Background()
	journalistID := uuid.NewString()

	suite.mockPointTxnRepo.On("SumPoints", ctx, journalistID, matchTxnType(domain.TransactionEarned)).Return(int64(0), assert.AnError).Once()

	points, err := suite.service.CurrentPoints(ctx, journalistID)

	suite.Require().Error(err)
	suite.Equal(int64(0), points)
	suite.Contains(err.Error(), assert.AnError.Error())
}

// --- Balance Tests ---
func (suite *RewardServiceTestSuite) TestBalance_ConvertsPointsToCash() {
	ctx := context.Background()
	journalistID := uuid.NewString()

	suite.mockPointTxnRepo.On("SumPoints", ctx, journalistID, matchTxnType(domain.TransactionEarned)).Return(int64(20), nil).Once()
	suite.mockPointTxnRepo.On("SumPoints", ctx, journalistID, matchTxnType(domain.TransactionWithdrawal)).Return(int64(-5), nil).Once()

	points, cash, err := suite.service.Balance(ctx, journalistID)

	suite.Require().NoError(err)
	suite.Equal(int64(15), points)
	suite.True(cash.Equal(rewards.CashAmount(15)), "expected %s, got %s", rewards.CashAmount(15), cash)
}

func (suite *RewardServiceTestSuite) TestBalance_PropagatesError() {
	ctx := context.Background()
	journalistID := uuid.NewString()

	suite.mockPointTxnRepo.On("SumPoints", ctx, journalistID, matchTxnType(domain.TransactionEarned)).Return(int64(0), assert.AnError).Once()

	points, cash, err := suite.service.Balance(ctx, journalistID)

	suite.Require().Error(err)
	suite.Equal(int64(0), points)
	suite.True(cash.IsZero())
}

// --- ListTransactions Tests ---
func (suite *RewardServiceTestSuite) TestListTransactions_DefaultsLimit() {
	ctx := context.Background()
	journalistID := uuid.NewString()
	expected := []domain.PointTransaction{
		{TransactionID: uuid.NewString(), JournalistID: journalistID, Points: 5, Type: domain.TransactionEarned},
	}

	suite.mockPointTxnRepo.On("ListTransactionsByJournalist", ctx, journalistID, 20, (*string)(nil)).Return(expected, nil, nil).Once()

	txns, nextToken, err := suite.service.ListTransactions(ctx, journalistID, dto.ListParams{})

	suite.Require().NoError(err)
	suite.Len(txns, 1)
	suite.Nil(nextToken)
	suite.mockPointTxnRepo.AssertExpectations(suite.T())
}

func (suite *RewardServiceTestSuite) TestListTransactions_RepoError() {
	ctx := context.Background()
	journalistID := uuid.NewString()

	suite.mockPointTxnRepo.On("ListTransactionsByJournalist", ctx, journalistID, 20, (*string)(nil)).Return(nil, nil, assert.AnError).Once()

	txns, nextToken, err := suite.service.ListTransactions(ctx, journalistID, dto.ListParams{})

	suite.Require().Error(err)
	suite.Nil(txns)
	suite.Nil(nextToken)
	suite.Contains(err.Error(), assert.AnError.Error())
}

// --- Run Suite ---
func TestRewardService(t *testing.T) {
	suite.Run(t, new(RewardServiceTestSuite))
}
