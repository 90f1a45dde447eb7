package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/wezaprosoft/press_rewards_app/internal/apperrors"
	"github.com/wezaprosoft/press_rewards_app/internal/core/domain"
	portssvc "github.com/wezaprosoft/press_rewards_app/internal/core/ports/services"
	"github.com/wezaprosoft/press_rewards_app/internal/dto"
	"github.com/wezaprosoft/press_rewards_app/internal/handlers"
	"github.com/wezaprosoft/press_rewards_app/internal/middleware"
	"github.com/wezaprosoft/press_rewards_app/internal/utils"
)

// --- Mock LinkReviewService ---
type MockLinkReviewService struct {
	mock.Mock
}

func (m *MockLinkReviewService) SubmitLink(ctx context.Context, journalistID string, req dto.SubmitLinkRequest) (*domain.PublishedLink, error) {
	args := m.Called(ctx, journalistID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublishedLink), args.Error(1)
}

func (m *MockLinkReviewService) ApproveLink(ctx context.Context, linkID string, reviewerID string) (*domain.PublishedLink, error) {
	args := m.Called(ctx, linkID, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublishedLink), args.Error(1)
}

func (m *MockLinkReviewService) RejectLink(ctx context.Context, linkID string, reviewerID string, notes string) (*domain.PublishedLink, error) {
	args := m.Called(ctx, linkID, reviewerID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublishedLink), args.Error(1)
}

func (m *MockLinkReviewService) GetLink(ctx context.Context, linkID string) (*domain.PublishedLink, error) {
	args := m.Called(ctx, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublishedLink), args.Error(1)
}

func (m *MockLinkReviewService) ListLinks(ctx context.Context, params dto.ListLinksParams) ([]domain.PublishedLink, *string, error) {
	args := m.Called(ctx, params)
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

// Ensure mock implements the interface
var _ portssvc.LinkReviewSvcFacade = (*MockLinkReviewService)(nil)

// --- Test Suite ---
type LinkHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockLinkService *MockLinkReviewService
	jwtSecret       string
}

func (suite *LinkHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockLinkService = new(MockLinkReviewService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterLinkRoutes(v1, suite.mockLinkService)
}

// staffToken signs a token for a staff user with no journalist record.
func (suite *LinkHandlerTestSuite) staffToken(userID string) string {
	token, err := utils.GenerateJWT(userID, true, nil, suite.jwtSecret, time.Hour, "pra-test")
	suite.Require().NoError(err)
	return token
}

// journalistToken signs a token for a user acting as the given journalist.
func (suite *LinkHandlerTestSuite) journalistToken(userID, journalistID string) string {
	token, err := utils.GenerateJWT(userID, false, &journalistID, suite.jwtSecret, time.Hour, "pra-test")
	suite.Require().NoError(err)
	return token
}

// --- Test Cases ---

func (suite *LinkHandlerTestSuite) TestSubmitLink_Success() {
	userID := uuid.NewString()
	journalistID := uuid.NewString()
	req := dto.SubmitLinkRequest{
		PressReleaseID: uuid.NewString(),
		URL:            "https://news.example.com/story",
	}
	created := &domain.PublishedLink{
		LinkID:         uuid.NewString(),
		JournalistID:   journalistID,
		PressReleaseID: req.PressReleaseID,
		URL:            req.URL,
		Status:         domain.LinkPending,
	}

	suite.mockLinkService.On("SubmitLink", mock.Anything, journalistID, req).Return(created, nil).Once()

	body, _ := json.Marshal(req)
	httpReq, _ := http.NewRequest(http.MethodPost, "/api/v1/links", bytes.NewReader(body))
	httpReq.Header.Set("Authorization", "Bearer "+suite.journalistToken(userID, journalistID))
	httpReq.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.PublishedLinkResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.LinkID, resp.LinkID)
	suite.Equal(string(domain.LinkPending), resp.Status)
	suite.mockLinkService.AssertExpectations(suite.T())
}

func (suite *LinkHandlerTestSuite) TestSubmitLink_NoJournalistRecord() {
	req := dto.SubmitLinkRequest{
		PressReleaseID: uuid.NewString(),
		URL:            "https://news.example.com/story",
	}

	body, _ := json.Marshal(req)
	httpReq, _ := http.NewRequest(http.MethodPost, "/api/v1/links", bytes.NewReader(body))
	httpReq.Header.Set("Authorization", "Bearer "+suite.staffToken(uuid.NewString()))
	httpReq.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLinkService.AssertNotCalled(suite.T(), "SubmitLink", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LinkHandlerTestSuite) TestApproveLink_Success() {
	userID := uuid.NewString()
	linkID := uuid.NewString()
	approved := &domain.PublishedLink{
		LinkID:       linkID,
		JournalistID: uuid.NewString(),
		Status:       domain.LinkApproved,
		ReviewedBy:   &userID,
	}

	suite.mockLinkService.On("ApproveLink", mock.Anything, linkID, userID).Return(approved, nil).Once()

	url := fmt.Sprintf("/api/v1/links/%s/approve", linkID)
	httpReq, _ := http.NewRequest(http.MethodPost, url, nil)
	httpReq.Header.Set("Authorization", "Bearer "+suite.staffToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.PublishedLinkResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(string(domain.LinkApproved), resp.Status)
	suite.mockLinkService.AssertExpectations(suite.T())
}

func (suite *LinkHandlerTestSuite) TestApproveLink_NonStaffForbidden() {
	linkID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/links/%s/approve", linkID)
	httpReq, _ := http.NewRequest(http.MethodPost, url, nil)
	httpReq.Header.Set("Authorization", "Bearer "+suite.journalistToken(uuid.NewString(), uuid.NewString()))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLinkService.AssertNotCalled(suite.T(), "ApproveLink", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LinkHandlerTestSuite) TestApproveLink_AlreadyReviewedConflict() {
	userID := uuid.NewString()
	linkID := uuid.NewString()

	suite.mockLinkService.On("ApproveLink", mock.Anything, linkID, userID).
		Return(nil, fmt.Errorf("%w: link is already approved", apperrors.ErrInvalidTransition)).Once()

	url := fmt.Sprintf("/api/v1/links/%s/approve", linkID)
	httpReq, _ := http.NewRequest(http.MethodPost, url, nil)
	httpReq.Header.Set("Authorization", "Bearer "+suite.staffToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *LinkHandlerTestSuite) TestApproveLink_NotFound() {
	userID := uuid.NewString()
	linkID := uuid.NewString()

	suite.mockLinkService.On("ApproveLink", mock.Anything, linkID, userID).
		Return(nil, fmt.Errorf("failed to find link %s: %w", linkID, apperrors.ErrNotFound)).Once()

	url := fmt.Sprintf("/api/v1/links/%s/approve", linkID)
	httpReq, _ := http.NewRequest(http.MethodPost, url, nil)
	httpReq.Header.Set("Authorization", "Bearer "+suite.staffToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LinkHandlerTestSuite) TestListLinks_JournalistScopedToOwnLinks() {
	userID := uuid.NewString()
	journalistID := uuid.NewString()
	otherJournalistID := uuid.NewString()

	// The query asks for someone else's links; the handler must override the
	// filter with the caller's own journalist ID.
	suite.mockLinkService.On("ListLinks", mock.Anything, mock.MatchedBy(func(params dto.ListLinksParams) bool {
		return params.JournalistID != nil && *params.JournalistID == journalistID
	})).Return([]domain.PublishedLink{}, nil, nil).Once()

	url := fmt.Sprintf("/api/v1/links?journalistID=%s", otherJournalistID)
	httpReq, _ := http.NewRequest(http.MethodGet, url, nil)
	httpReq.Header.Set("Authorization", "Bearer "+suite.journalistToken(userID, journalistID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLinkService.AssertExpectations(suite.T())
}

func (suite *LinkHandlerTestSuite) TestListLinks_Unauthenticated() {
	httpReq, _ := http.NewRequest(http.MethodGet, "/api/v1/links", nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLinkService.AssertNotCalled(suite.T(), "ListLinks", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestLinkHandler(t *testing.T) {
	suite.Run(t, new(LinkHandlerTestSuite))
}
