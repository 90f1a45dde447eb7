package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/wezaprosoft/press_rewards_app/internal/apperrors"
	"github.com/wezaprosoft/press_rewards_app/internal/core/domain"
	portssvc "github.com/wezaprosoft/press_rewards_app/internal/core/ports/services"
	"github.com/wezaprosoft/press_rewards_app/internal/core/services"
	"github.com/wezaprosoft/press_rewards_app/internal/dto"
	"github.com/wezaprosoft/press_rewards_app/internal/utils"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo       *MockUserRepository
	mockJournalistRepo *MockJournalistRepository
	service            portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockJournalistRepo = new(MockJournalistRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockJournalistRepo)
}

// --- CreateUser Tests ---
func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	password := "password123"
	req := dto.CreateUserRequest{
		Email:     "staff@example.com",
		Password:  password,
		FirstName: "Asha",
		LastName:  "Mwangi",
		IsStaff:   true,
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == req.Email &&
			user.IsStaff &&
			user.PasswordHash != "" && user.PasswordHash != password &&
			user.CreatedBy == creatorUserID
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.Equal(req.Email, user.Email)
	suite.NotEqual(password, user.PasswordHash)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockJournalistRepo.AssertNotCalled(suite.T(), "FindJournalistByID", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_LinkedJournalistMustExist() {
	ctx := context.Background()
	journalistID := uuid.NewString()
	req := dto.CreateUserRequest{
		Email:        "reporter@example.com",
		Password:     "password123",
		FirstName:    "Juma",
		LastName:     "Otieno",
		JournalistID: &journalistID,
	}

	suite.mockJournalistRepo.On("FindJournalistByID", ctx, journalistID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.CreateUser(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Email:     "staff@example.com",
		Password:  "password123",
		FirstName: "Asha",
		LastName:  "Mwangi",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.CreateUser(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Contains(err.Error(), "email already registered")
}

// --- GetUser Tests ---
func (suite *UserServiceTestSuite) TestGetUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	expected := &domain.User{UserID: userID, Email: "staff@example.com"}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(expected, nil).Once()

	user, err := suite.service.GetUser(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(expected, user)
}

func (suite *UserServiceTestSuite) TestGetUser_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUser(ctx, userID)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- AuthenticateUser Tests ---
func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	password := "password123"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	expected := &domain.User{UserID: uuid.NewString(), Email: "staff@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, expected.Email).Return(expected, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, expected.Email, password)

	suite.Require().NoError(err)
	suite.Equal(expected, user)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "staff@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	authed, err := suite.service.AuthenticateUser(ctx, user.Email, "not-the-password")

	suite.Require().Error(err)
	suite.Nil(authed)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmailSameError() {
	ctx := context.Background()
	email := "nobody@example.com"

	suite.mockUserRepo.On("FindUserByEmail", ctx, email).Return(nil, apperrors.ErrNotFound).Once()

	authed, err := suite.service.AuthenticateUser(ctx, email, "password123")

	suite.Require().Error(err)
	suite.Nil(authed)
	// Same error as a wrong password, so login responses cannot be used to
	// probe which emails have accounts.
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_LookupError() {
	ctx := context.Background()
	email := "staff@example.com"

	suite.mockUserRepo.On("FindUserByEmail", ctx, email).Return(nil, assert.AnError).Once()

	authed, err := suite.service.AuthenticateUser(ctx, email, "password123")

	suite.Require().Error(err)
	suite.Nil(authed)
	suite.Contains(err.Error(), assert.AnError.Error())
}

// --- Run Suite ---
func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
