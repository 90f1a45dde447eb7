package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/wezaprosoft/press_rewards_app/internal/apperrors"
	"github.com/wezaprosoft/press_rewards_app/internal/core/domain"
	portsrepo "github.com/wezaprosoft/press_rewards_app/internal/core/ports/repositories"
	portssvc "github.com/wezaprosoft/press_rewards_app/internal/core/ports/services"
	"github.com/wezaprosoft/press_rewards_app/internal/core/services"
	"github.com/wezaprosoft/press_rewards_app/internal/dto"
	"github.com/wezaprosoft/press_rewards_app/internal/utils/rewards"
)

// --- Mock PublishedLinkRepository ---
type MockPublishedLinkRepository struct {
	mock.Mock
	ApproveLinkAndAwardFn func(ctx context.Context, linkID string, reviewerID string, reviewedAt time.Time, award domain.PointTransaction) (bool, error)
}

func (m *MockPublishedLinkRepository) SaveLink(ctx context.Context, link domain.PublishedLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockPublishedLinkRepository) FindLinkByID(ctx context.Context, linkID string) (*domain.PublishedLink, error) {
	args := m.Called(ctx, linkID)
	var link *domain.PublishedLink
	if args.Get(0) != nil {
		link = args.Get(0).(*domain.PublishedLink)
	}
	return link, args.Error(1)
}

func (m *MockPublishedLinkRepository) ApproveLinkAndAward(ctx context.Context, linkID string, reviewerID string, reviewedAt time.Time, award domain.PointTransaction) (bool, error) {
	if m.ApproveLinkAndAwardFn != nil {
		return m.ApproveLinkAndAwardFn(ctx, linkID, reviewerID, reviewedAt, award)
	}
	args := m.Called(ctx, linkID, reviewerID, reviewedAt, award)
	return args.Bool(0), args.Error(1)
}

func (m *MockPublishedLinkRepository) RejectLink(ctx context.Context, linkID string, reviewerID string, reviewedAt time.Time, notes string) error {
	args := m.Called(ctx, linkID, reviewerID, reviewedAt, notes)
	return args.Error(0)
}

func (m *MockPublishedLinkRepository) ListLinks(ctx context.Context, filter portsrepo.ListLinksFilter, limit int, nextToken *string) ([]domain.PublishedLink, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var links []domain.PublishedLink
	if args.Get(0) != nil {
		links = args.Get(0).([]domain.PublishedLink)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return links, token, args.Error(2)
}

// --- Mock PressReleaseRepository ---
type MockPressReleaseRepository struct {
	mock.Mock
}

func (m *MockPressReleaseRepository) SavePressRelease(ctx context.Context, pressRelease domain.PressRelease) error {
	args := m.Called(ctx, pressRelease)
	return args.Error(0)
}

func (m *MockPressReleaseRepository) FindPressReleaseByID(ctx context.Context, pressReleaseID string) (*domain.PressRelease, error) {
	args := m.Called(ctx, pressReleaseID)
	var pr *domain.PressRelease
	if args.Get(0) != nil {
		pr = args.Get(0).(*domain.PressRelease)
	}
	return pr, args.Error(1)
}

func (m *MockPressReleaseRepository) ListPressReleases(ctx context.Context, limit int, nextToken *string) ([]domain.PressRelease, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var prs []domain.PressRelease
	if args.Get(0) != nil {
		prs = args.Get(0).([]domain.PressRelease)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return prs, token, args.Error(2)
}

func (m *MockPressReleaseRepository) UpdatePressRelease(ctx context.Context, pressRelease domain.PressRelease) error {
	args := m.Called(ctx, pressRelease)
	return args.Error(0)
}

func (m *MockPressReleaseRepository) ShareWithJournalists(ctx context.Context, pressReleaseID string, journalistIDs []string, sharedBy string, now time.Time) error {
	args := m.Called(ctx, pressReleaseID, journalistIDs, sharedBy, now)
	return args.Error(0)
}

func (m *MockPressReleaseRepository) ListSharedPressReleases(ctx context.Context, journalistID string) ([]domain.PressRelease, error) {
	args := m.Called(ctx, journalistID)
	var prs []domain.PressRelease
	if args.Get(0) != nil {
		prs = args.Get(0).([]domain.PressRelease)
	}
	return prs, args.Error(1)
}

// --- Mock JournalistRepository ---
type MockJournalistRepository struct {
	mock.Mock
}

func (m *MockJournalistRepository) SaveJournalist(ctx context.Context, journalist domain.Journalist) error {
	args := m.Called(ctx, journalist)
	return args.Error(0)
}

func (m *MockJournalistRepository) FindJournalistByID(ctx context.Context, journalistID string) (*domain.Journalist, error) {
	args := m.Called(ctx, journalistID)
	var journalist *domain.Journalist
	if args.Get(0) != nil {
		journalist = args.Get(0).(*domain.Journalist)
	}
	return journalist, args.Error(1)
}

func (m *MockJournalistRepository) FindJournalistByEmail(ctx context.Context, email string) (*domain.Journalist, error) {
	args := m.Called(ctx, email)
	var journalist *domain.Journalist
	if args.Get(0) != nil {
		journalist = args.Get(0).(*domain.Journalist)
	}
	return journalist, args.Error(1)
}

func (m *MockJournalistRepository) FindJournalistByIDForUpdate(ctx context.Context, tx pgx.Tx, journalistID string) (*domain.Journalist, error) {
	args := m.Called(ctx, tx, journalistID)
	var journalist *domain.Journalist
	if args.Get(0) != nil {
		journalist = args.Get(0).(*domain.Journalist)
	}
	return journalist, args.Error(1)
}

func (m *MockJournalistRepository) ListJournalists(ctx context.Context, search string, limit int, nextToken *string) ([]domain.Journalist, *string, error) {
	args := m.Called(ctx, search, limit, nextToken)
	var journalists []domain.Journalist
	if args.Get(0) != nil {
		journalists = args.Get(0).([]domain.Journalist)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return journalists, token, args.Error(2)
}

func (m *MockJournalistRepository) UpdateJournalist(ctx context.Context, journalist domain.Journalist) error {
	args := m.Called(ctx, journalist)
	return args.Error(0)
}

// --- Test Suite ---
type LinkReviewServiceTestSuite struct {
	suite.Suite
	mockLinkRepo         *MockPublishedLinkRepository
	mockPressReleaseRepo *MockPressReleaseRepository
	mockJournalistRepo   *MockJournalistRepository
	service              portssvc.LinkReviewSvcFacade
}

func (suite *LinkReviewServiceTestSuite) SetupTest() {
	suite.mockLinkRepo = new(MockPublishedLinkRepository)
	suite.mockPressReleaseRepo = new(MockPressReleaseRepository)
	suite.mockJournalistRepo = new(MockJournalistRepository)
	suite.service = services.NewLinkReviewService(suite.mockLinkRepo, suite.mockPressReleaseRepo, suite.mockJournalistRepo)
}

func (suite *LinkReviewServiceTestSuite) pendingLink() *domain.PublishedLink {
	return &domain.PublishedLink{
		LinkID:         uuid.NewString(),
		JournalistID:   uuid.NewString(),
		PressReleaseID: uuid.NewString(),
		URL:            "https://news.example.com/story",
		Status:         domain.LinkPending,
	}
}

// --- SubmitLink Tests ---
func (suite *LinkReviewServiceTestSuite) TestSubmitLink_Success() {
	ctx := context.Background()
	journalistID := uuid.NewString()
	pressReleaseID := uuid.NewString()
	req := dto.SubmitLinkRequest{
		PressReleaseID: pressReleaseID,
		URL:            "https://news.example.com/story",
		Title:          "Launch covered",
	}

	suite.mockJournalistRepo.On("FindJournalistByID", ctx, journalistID).Return(&domain.Journalist{JournalistID: journalistID}, nil).Once()
	suite.mockPressReleaseRepo.On("FindPressReleaseByID", ctx, pressReleaseID).Return(&domain.PressRelease{PressReleaseID: pressReleaseID}, nil).Once()
	suite.mockLinkRepo.On("SaveLink", ctx, mock.MatchedBy(func(link domain.PublishedLink) bool {
		return link.JournalistID == journalistID &&
			link.PressReleaseID == pressReleaseID &&
			link.URL == req.URL &&
			link.Status == domain.LinkPending &&
			link.CreatedBy == journalistID
	})).Return(nil).Once()

	link, err := suite.service.SubmitLink(ctx, journalistID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(link)
	suite.NotEmpty(link.LinkID)
	suite.Equal(domain.LinkPending, link.Status)
	suite.Nil(link.ReviewedBy)
	suite.mockLinkRepo.AssertExpectations(suite.T())
	suite.mockJournalistRepo.AssertExpectations(suite.T())
	suite.mockPressReleaseRepo.AssertExpectations(suite.T())
}

func (suite *LinkReviewServiceTestSuite) TestSubmitLink_JournalistNotFound() {
	ctx := context.Background()
	journalistID := uuid.NewString()
	req := dto.SubmitLinkRequest{PressReleaseID: uuid.NewString(), URL: "https://news.example.com/story"}

	suite.mockJournalistRepo.On("FindJournalistByID", ctx, journalistID).Return(nil, apperrors.ErrNotFound).Once()

	link, err := suite.service.SubmitLink(ctx, journalistID, req)

	suite.Require().Error(err)
	suite.Nil(link)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLinkRepo.AssertNotCalled(suite.T(), "SaveLink", mock.Anything, mock.Anything)
}

// --- ApproveLink Tests ---
func (suite *LinkReviewServiceTestSuite) TestApproveLink_FirstApprovalAwardsPoints() {
	ctx := context.Background()
	reviewerID := uuid.NewString()
	link := suite.pendingLink()
	pressRelease := &domain.PressRelease{PressReleaseID: link.PressReleaseID, Title: "Acme Series B"}

	suite.mockLinkRepo.On("FindLinkByID", ctx, link.LinkID).Return(link, nil).Once()
	suite.mockPressReleaseRepo.On("FindPressReleaseByID", ctx, link.PressReleaseID).Return(pressRelease, nil).Once()
	suite.mockLinkRepo.On("ApproveLinkAndAward", ctx, link.LinkID, reviewerID, mock.AnythingOfType("time.Time"), mock.MatchedBy(func(award domain.PointTransaction) bool {
		return award.JournalistID == link.JournalistID &&
			award.Points == rewards.PointsPerApprovedLink &&
			award.Type == domain.TransactionEarned &&
			award.Description == "Points earned for publishing Acme Series B" &&
			award.RelatedPressReleaseID != nil && *award.RelatedPressReleaseID == link.PressReleaseID &&
			len(award.RelatedLinkIDs) == 1 && award.RelatedLinkIDs[0] == link.LinkID &&
			award.CreatedBy == reviewerID
	})).Return(true, nil).Once()

	approved, err := suite.service.ApproveLink(ctx, link.LinkID, reviewerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(approved)
	suite.Equal(domain.LinkApproved, approved.Status)
	suite.Require().NotNil(approved.ReviewedBy)
	suite.Equal(reviewerID, *approved.ReviewedBy)
	suite.NotNil(approved.ReviewedAt)
	suite.mockLinkRepo.AssertExpectations(suite.T())
	suite.mockPressReleaseRepo.AssertExpectations(suite.T())
}

func (suite *LinkReviewServiceTestSuite) TestApproveLink_SecondLinkForPairSkipsAward() {
	ctx := context.Background()
	reviewerID := uuid.NewString()
	link := suite.pendingLink()
	pressRelease := &domain.PressRelease{PressReleaseID: link.PressReleaseID, Title: "Acme Series B"}

	suite.mockLinkRepo.On("FindLinkByID", ctx, link.LinkID).Return(link, nil).Once()
	suite.mockPressReleaseRepo.On("FindPressReleaseByID", ctx, link.PressReleaseID).Return(pressRelease, nil).Once()
	// The pair already has an approved link, so the repo flips the status but
	// reports that no award was appended.
	suite.mockLinkRepo.On("ApproveLinkAndAward", ctx, link.LinkID, reviewerID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("domain.PointTransaction")).Return(false, nil).Once()

	approved, err := suite.service.ApproveLink(ctx, link.LinkID, reviewerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(approved)
	suite.Equal(domain.LinkApproved, approved.Status)
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func (suite *LinkReviewServiceTestSuite) TestApproveLink_AlreadyTerminal() {
	ctx := context.Background()
	reviewerID := uuid.NewString()
	link := suite.pendingLink()
	link.Status = domain.LinkRejected

	suite.mockLinkRepo.On("FindLinkByID", ctx, link.LinkID).Return(link, nil).Once()

	approved, err := suite.service.ApproveLink(ctx, link.LinkID, reviewerID)

	suite.Require().Error(err)
	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockPressReleaseRepo.AssertNotCalled(suite.T(), "FindPressReleaseByID", mock.Anything, mock.Anything)
	suite.mockLinkRepo.AssertNotCalled(suite.T(), "ApproveLinkAndAward", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LinkReviewServiceTestSuite) TestApproveLink_RaceLostToOtherReviewer() {
	ctx := context.Background()
	reviewerID := uuid.NewString()
	link := suite.pendingLink()
	pressRelease := &domain.PressRelease{PressReleaseID: link.PressReleaseID, Title: "Acme Series B"}

	suite.mockLinkRepo.On("FindLinkByID", ctx, link.LinkID).Return(link, nil).Once()
	suite.mockPressReleaseRepo.On("FindPressReleaseByID", ctx, link.PressReleaseID).Return(pressRelease, nil).Once()
	// Another reviewer won the row lock and the link is terminal by the time
	// the transaction re-checks it.
	suite.mockLinkRepo.On("ApproveLinkAndAward", ctx, link.LinkID, reviewerID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("domain.PointTransaction")).Return(false, apperrors.ErrInvalidTransition).Once()

	approved, err := suite.service.ApproveLink(ctx, link.LinkID, reviewerID)

	suite.Require().Error(err)
	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *LinkReviewServiceTestSuite) TestApproveLink_RetriesOnceOnTxConflict() {
	ctx := context.Background()
	reviewerID := uuid.NewString()
	link := suite.pendingLink()
	pressRelease := &domain.PressRelease{PressReleaseID: link.PressReleaseID, Title: "Acme Series B"}

	suite.mockLinkRepo.On("FindLinkByID", ctx, link.LinkID).Return(link, nil).Once()
	suite.mockPressReleaseRepo.On("FindPressReleaseByID", ctx, link.PressReleaseID).Return(pressRelease, nil).Once()

	calls := 0
	suite.mockLinkRepo.ApproveLinkAndAwardFn = func(ctx context.Context, linkID string, reviewerID string, reviewedAt time.Time, award domain.PointTransaction) (bool, error) {
		calls++
		if calls == 1 {
			return false, apperrors.ErrTxConflict
		}
		return true, nil
	}

	approved, err := suite.service.ApproveLink(ctx, link.LinkID, reviewerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(approved)
	suite.Equal(2, calls)
	suite.Equal(domain.LinkApproved, approved.Status)
}

// --- RejectLink Tests ---
func (suite *LinkReviewServiceTestSuite) TestRejectLink_Success() {
	ctx := context.Background()
	reviewerID := uuid.NewString()
	link := suite.pendingLink()
	notes := "URL does not resolve"

	suite.mockLinkRepo.On("FindLinkByID", ctx, link.LinkID).Return(link, nil).Once()
	suite.mockLinkRepo.On("RejectLink", ctx, link.LinkID, reviewerID, mock.AnythingOfType("time.Time"), notes).Return(nil).Once()

	rejected, err := suite.service.RejectLink(ctx, link.LinkID, reviewerID, notes)

	suite.Require().NoError(err)
	suite.Require().NotNil(rejected)
	suite.Equal(domain.LinkRejected, rejected.Status)
	suite.Equal(notes, rejected.Notes)
	suite.Require().NotNil(rejected.ReviewedBy)
	suite.Equal(reviewerID, *rejected.ReviewedBy)
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func (suite *LinkReviewServiceTestSuite) TestRejectLink_AlreadyTerminal() {
	ctx := context.Background()
	link := suite.pendingLink()
	link.Status = domain.LinkApproved

	suite.mockLinkRepo.On("FindLinkByID", ctx, link.LinkID).Return(link, nil).Once()

	rejected, err := suite.service.RejectLink(ctx, link.LinkID, uuid.NewString(), "")

	suite.Require().Error(err)
	suite.Nil(rejected)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockLinkRepo.AssertNotCalled(suite.T(), "RejectLink", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- ListLinks Tests ---
func (suite *LinkReviewServiceTestSuite) TestListLinks_InvalidStatus() {
	ctx := context.Background()
	badStatus := "published"

	links, nextToken, err := suite.service.ListLinks(ctx, dto.ListLinksParams{Status: &badStatus})

	suite.Require().Error(err)
	suite.Nil(links)
	suite.Nil(nextToken)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLinkRepo.AssertNotCalled(suite.T(), "ListLinks", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LinkReviewServiceTestSuite) TestListLinks_DefaultsLimitAndFilters() {
	ctx := context.Background()
	status := string(domain.LinkPending)
	journalistID := uuid.NewString()
	expected := []domain.PublishedLink{*suite.pendingLink()}

	suite.mockLinkRepo.On("ListLinks", ctx, mock.MatchedBy(func(filter portsrepo.ListLinksFilter) bool {
		return filter.Status != nil && *filter.Status == domain.LinkPending &&
			filter.JournalistID != nil && *filter.JournalistID == journalistID
	}), 20, (*string)(nil)).Return(expected, nil, nil).Once()

	links, nextToken, err := suite.service.ListLinks(ctx, dto.ListLinksParams{Status: &status, JournalistID: &journalistID})

	suite.Require().NoError(err)
	suite.Len(links, 1)
	suite.Nil(nextToken)
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func (suite *LinkReviewServiceTestSuite) TestListLinks_RepoError() {
	ctx := context.Background()

	suite.mockLinkRepo.On("ListLinks", ctx, mock.AnythingOfType("repositories.ListLinksFilter"), 20, (*string)(nil)).Return(nil, nil, assert.AnError).Once()

	links, nextToken, err := suite.service.ListLinks(ctx, dto.ListLinksParams{})

	suite.Require().Error(err)
	suite.Nil(links)
	suite.Nil(nextToken)
	suite.Contains(err.Error(), assert.AnError.Error())
}

// --- Run Suite ---
func TestLinkReviewService(t *testing.T) {
	suite.Run(t, new(LinkReviewServiceTestSuite))
}
