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

// linkReviewService governs the published link review state machine:
// pending -> approved | rejected, both terminal. The first approval for a
// (journalist, press release) pair appends a +5 earned entry to the ledger in
// the same database transaction as the status flip.
type linkReviewService struct {
	linkRepo         portsrepo.PublishedLinkRepository
	pressReleaseRepo portsrepo.PressReleaseRepository
	journalistRepo   portsrepo.JournalistRepository
}

// NewLinkReviewService creates a new link review service.
func NewLinkReviewService(
	linkRepo portsrepo.PublishedLinkRepository,
	pressReleaseRepo portsrepo.PressReleaseRepository,
	journalistRepo portsrepo.JournalistRepository,
) portssvc.LinkReviewSvcFacade {
	return &linkReviewService{
		linkRepo:         linkRepo,
		pressReleaseRepo: pressReleaseRepo,
		journalistRepo:   journalistRepo,
	}
}

var _ portssvc.LinkReviewSvcFacade = (*linkReviewService)(nil)

// SubmitLink records a journalist's claim of having published a press release.
// The link starts pending with no ledger effect.
func (s *linkReviewService) SubmitLink(ctx context.Context, journalistID string, req dto.SubmitLinkRequest) (*domain.PublishedLink, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.journalistRepo.FindJournalistByID(ctx, journalistID); err != nil {
		return nil, fmt.Errorf("failed to find journalist %s: %w", journalistID, err)
	}
	if _, err := s.pressReleaseRepo.FindPressReleaseByID(ctx, req.PressReleaseID); err != nil {
		return nil, fmt.Errorf("failed to find press release %s: %w", req.PressReleaseID, err)
	}

	now := time.Now().UTC()
	link := domain.PublishedLink{
		LinkID:          uuid.NewString(),
		JournalistID:    journalistID,
		PressReleaseID:  req.PressReleaseID,
		URL:             req.URL,
		Title:           req.Title,
		PublicationDate: req.PublicationDate,
		Status:          domain.LinkPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     journalistID,
			LastUpdatedAt: now,
			LastUpdatedBy: journalistID,
		},
	}

	if err := s.linkRepo.SaveLink(ctx, link); err != nil {
		logger.Error("Failed to save published link", slog.String("error", err.Error()), slog.String("journalist_id", journalistID))
		return nil, fmt.Errorf("failed to save link: %w", err)
	}

	logger.Info("Published link submitted", slog.String("link_id", link.LinkID), slog.String("press_release_id", req.PressReleaseID))
	return &link, nil
}

// ApproveLink moves a pending link to approved and awards points when this is
// the first approved link for its (journalist, press release) pair. The
// status flip, the first-approval count check and the ledger append run in
// one storage transaction; concurrent approvals for the same pair serialize
// on the pair's rows so only one can be counted first.
func (s *linkReviewService) ApproveLink(ctx context.Context, linkID string, reviewerID string) (*domain.PublishedLink, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	link, err := s.linkRepo.FindLinkByID(ctx, linkID)
	if err != nil {
		return nil, fmt.Errorf("failed to find link %s: %w", linkID, err)
	}
	if link.Status != domain.LinkPending {
		return nil, fmt.Errorf("%w: link is already %s", apperrors.ErrInvalidTransition, link.Status)
	}

	pressRelease, err := s.pressReleaseRepo.FindPressReleaseByID(ctx, link.PressReleaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find press release %s: %w", link.PressReleaseID, err)
	}

	now := time.Now().UTC()
	award := domain.PointTransaction{
		TransactionID:         uuid.NewString(),
		JournalistID:          link.JournalistID,
		Points:                rewards.PointsPerApprovedLink,
		Type:                  domain.TransactionEarned,
		Description:           fmt.Sprintf("Points earned for publishing %s", pressRelease.Title),
		RelatedPressReleaseID: &pressRelease.PressReleaseID,
		RelatedLinkIDs:        []string{link.LinkID},
		CreatedAt:             now,
		CreatedBy:             reviewerID,
	}

	var awarded bool
	err = retryOnTxConflict(ctx, "approve link", func() error {
		var txErr error
		awarded, txErr = s.linkRepo.ApproveLinkAndAward(ctx, linkID, reviewerID, now, award)
		return txErr
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidTransition) {
			// Lost a race against another reviewer; the link is terminal now.
			return nil, err
		}
		logger.Error("Failed to approve link", slog.String("error", err.Error()), slog.String("link_id", linkID))
		return nil, fmt.Errorf("failed to approve link: %w", err)
	}

	link.Status = domain.LinkApproved
	link.ReviewedBy = &reviewerID
	link.ReviewedAt = &now
	link.LastUpdatedAt = now
	link.LastUpdatedBy = reviewerID

	logger.Info("Link approved",
		slog.String("link_id", linkID),
		slog.String("reviewer_id", reviewerID),
		slog.Bool("points_awarded", awarded),
	)
	return link, nil
}

// RejectLink moves a pending link to rejected with optional reviewer notes.
// Rejection never touches the ledger.
func (s *linkReviewService) RejectLink(ctx context.Context, linkID string, reviewerID string, notes string) (*domain.PublishedLink, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	link, err := s.linkRepo.FindLinkByID(ctx, linkID)
	if err != nil {
		return nil, fmt.Errorf("failed to find link %s: %w", linkID, err)
	}
	if link.Status != domain.LinkPending {
		return nil, fmt.Errorf("%w: link is already %s", apperrors.ErrInvalidTransition, link.Status)
	}

	now := time.Now().UTC()
	err = retryOnTxConflict(ctx, "reject link", func() error {
		return s.linkRepo.RejectLink(ctx, linkID, reviewerID, now, notes)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidTransition) {
			return nil, err
		}
		logger.Error("Failed to reject link", slog.String("error", err.Error()), slog.String("link_id", linkID))
		return nil, fmt.Errorf("failed to reject link: %w", err)
	}

	link.Status = domain.LinkRejected
	link.ReviewedBy = &reviewerID
	link.ReviewedAt = &now
	link.Notes = notes
	link.LastUpdatedAt = now
	link.LastUpdatedBy = reviewerID

	logger.Info("Link rejected", slog.String("link_id", linkID), slog.String("reviewer_id", reviewerID))
	return link, nil
}

// GetLink retrieves a single published link.
func (s *linkReviewService) GetLink(ctx context.Context, linkID string) (*domain.PublishedLink, error) {
	link, err := s.linkRepo.FindLinkByID(ctx, linkID)
	if err != nil {
		return nil, fmt.Errorf("failed to find link %s: %w", linkID, err)
	}
	return link, nil
}

// ListLinks returns a page of links, optionally filtered by status and
// journalist.
func (s *linkReviewService) ListLinks(ctx context.Context, params dto.ListLinksParams) ([]domain.PublishedLink, *string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.ListLinksFilter{JournalistID: params.JournalistID}
	if params.Status != nil {
		status := domain.LinkStatus(*params.Status)
		switch status {
		case domain.LinkPending, domain.LinkApproved, domain.LinkRejected:
			filter.Status = &status
		default:
			return nil, nil, fmt.Errorf("%w: unknown link status %q", apperrors.ErrValidation, *params.Status)
		}
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	links, nextToken, err := s.linkRepo.ListLinks(ctx, filter, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list links", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to retrieve links: %w", err)
	}

	return links, nextToken, nil
}
