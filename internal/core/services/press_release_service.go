package services

import (
	"context"
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
)

// pressReleaseService manages press release metadata and the shared-with
// relation. Content generation and delivery happen upstream.
type pressReleaseService struct {
	pressReleaseRepo portsrepo.PressReleaseRepository
	journalistRepo   portsrepo.JournalistRepository
}

// NewPressReleaseService creates a new press release service.
func NewPressReleaseService(pressReleaseRepo portsrepo.PressReleaseRepository, journalistRepo portsrepo.JournalistRepository) portssvc.PressReleaseSvcFacade {
	return &pressReleaseService{
		pressReleaseRepo: pressReleaseRepo,
		journalistRepo:   journalistRepo,
	}
}

var _ portssvc.PressReleaseSvcFacade = (*pressReleaseService)(nil)

// CreatePressRelease records new press release metadata.
func (s *pressReleaseService) CreatePressRelease(ctx context.Context, req dto.CreatePressReleaseRequest, creatorUserID string) (*domain.PressRelease, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	pressRelease := domain.PressRelease{
		PressReleaseID: uuid.NewString(),
		Title:          req.Title,
		Description:    req.Description,
		Content:        req.Content,
		Client:         req.Client,
		Partner:        req.Partner,
		Country:        req.Country,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.pressReleaseRepo.SavePressRelease(ctx, pressRelease); err != nil {
		logger.Error("Failed to save press release", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save press release: %w", err)
	}

	logger.Info("Press release created", slog.String("press_release_id", pressRelease.PressReleaseID))
	return &pressRelease, nil
}

// GetPressRelease retrieves press release metadata by ID.
func (s *pressReleaseService) GetPressRelease(ctx context.Context, pressReleaseID string) (*domain.PressRelease, error) {
	pressRelease, err := s.pressReleaseRepo.FindPressReleaseByID(ctx, pressReleaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find press release %s: %w", pressReleaseID, err)
	}
	return pressRelease, nil
}

// ListPressReleases returns a page of press releases, newest first.
func (s *pressReleaseService) ListPressReleases(ctx context.Context, params dto.ListParams) ([]domain.PressRelease, *string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	releases, nextToken, err := s.pressReleaseRepo.ListPressReleases(ctx, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list press releases", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to retrieve press releases: %w", err)
	}

	return releases, nextToken, nil
}

// UpdatePressRelease applies optional metadata updates.
func (s *pressReleaseService) UpdatePressRelease(ctx context.Context, pressReleaseID string, req dto.UpdatePressReleaseRequest, updaterUserID string) (*domain.PressRelease, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	pressRelease, err := s.pressReleaseRepo.FindPressReleaseByID(ctx, pressReleaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find press release %s: %w", pressReleaseID, err)
	}

	updated := false
	if req.Title != nil {
		pressRelease.Title = *req.Title
		updated = true
	}
	if req.Description != nil {
		pressRelease.Description = *req.Description
		updated = true
	}
	if req.Content != nil {
		pressRelease.Content = *req.Content
		updated = true
	}
	if req.Client != nil {
		pressRelease.Client = *req.Client
		updated = true
	}
	if req.Partner != nil {
		pressRelease.Partner = *req.Partner
		updated = true
	}
	if req.Country != nil {
		pressRelease.Country = *req.Country
		updated = true
	}
	if req.IsPublished != nil {
		pressRelease.IsPublished = *req.IsPublished
		updated = true
	}

	if !updated {
		return pressRelease, nil
	}

	pressRelease.LastUpdatedAt = time.Now().UTC()
	pressRelease.LastUpdatedBy = updaterUserID

	if err := s.pressReleaseRepo.UpdatePressRelease(ctx, *pressRelease); err != nil {
		logger.Error("Failed to update press release", slog.String("error", err.Error()), slog.String("press_release_id", pressReleaseID))
		return nil, fmt.Errorf("failed to update press release: %w", err)
	}

	logger.Info("Press release updated", slog.String("press_release_id", pressReleaseID))
	return pressRelease, nil
}

// SharePressRelease records distribution of a press release to a set of
// journalists. Every journalist ID must exist; sharing twice with the same
// journalist is a no-op rather than an error.
func (s *pressReleaseService) SharePressRelease(ctx context.Context, pressReleaseID string, journalistIDs []string, sharerUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(journalistIDs) == 0 {
		return fmt.Errorf("%w: at least one journalist is required", apperrors.ErrValidation)
	}

	if _, err := s.pressReleaseRepo.FindPressReleaseByID(ctx, pressReleaseID); err != nil {
		return fmt.Errorf("failed to find press release %s: %w", pressReleaseID, err)
	}
	for _, journalistID := range journalistIDs {
		if _, err := s.journalistRepo.FindJournalistByID(ctx, journalistID); err != nil {
			return fmt.Errorf("failed to find journalist %s: %w", journalistID, err)
		}
	}

	now := time.Now().UTC()
	if err := s.pressReleaseRepo.ShareWithJournalists(ctx, pressReleaseID, journalistIDs, sharerUserID, now); err != nil {
		logger.Error("Failed to share press release", slog.String("error", err.Error()), slog.String("press_release_id", pressReleaseID))
		return fmt.Errorf("failed to share press release: %w", err)
	}

	logger.Info("Press release shared",
		slog.String("press_release_id", pressReleaseID),
		slog.Int("journalist_count", len(journalistIDs)))
	return nil
}
