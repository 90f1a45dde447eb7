package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wezaprosoft/press_rewards_app/internal/core/domain"
	portsrepo "github.com/wezaprosoft/press_rewards_app/internal/core/ports/repositories"
	portssvc "github.com/wezaprosoft/press_rewards_app/internal/core/ports/services"
	"github.com/wezaprosoft/press_rewards_app/internal/dto"
	"github.com/wezaprosoft/press_rewards_app/internal/middleware"
)

// journalistService is the journalist directory. Profiles only; balances are
// derived elsewhere from the ledger.
type journalistService struct {
	journalistRepo portsrepo.JournalistRepository
}

// NewJournalistService creates a new journalist directory service.
func NewJournalistService(journalistRepo portsrepo.JournalistRepository) portssvc.JournalistSvcFacade {
	return &journalistService{journalistRepo: journalistRepo}
}

var _ portssvc.JournalistSvcFacade = (*journalistService)(nil)

// CreateJournalist registers a new journalist profile.
func (s *journalistService) CreateJournalist(ctx context.Context, req dto.CreateJournalistRequest, creatorUserID string) (*domain.Journalist, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	journalist := domain.Journalist{
		JournalistID: uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		Phone:        req.Phone,
		Country:      req.Country,
		Title:        req.Title,
		MediaHouse:   req.MediaHouse,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalistRepo.SaveJournalist(ctx, journalist); err != nil {
		logger.Error("Failed to save journalist", slog.String("error", err.Error()), slog.String("email", req.Email))
		return nil, fmt.Errorf("failed to save journalist: %w", err)
	}

	logger.Info("Journalist created", slog.String("journalist_id", journalist.JournalistID))
	return &journalist, nil
}

// GetJournalist retrieves a journalist profile by ID.
func (s *journalistService) GetJournalist(ctx context.Context, journalistID string) (*domain.Journalist, error) {
	journalist, err := s.journalistRepo.FindJournalistByID(ctx, journalistID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journalist %s: %w", journalistID, err)
	}
	return journalist, nil
}

// ListJournalists returns a directory page, filtered by the free-text search
// over email, name, country, title and media house.
func (s *journalistService) ListJournalists(ctx context.Context, params dto.ListJournalistsParams) ([]domain.Journalist, *string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	journalists, nextToken, err := s.journalistRepo.ListJournalists(ctx, params.Search, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list journalists", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to retrieve journalists: %w", err)
	}

	return journalists, nextToken, nil
}

// UpdateJournalist applies optional profile updates.
func (s *journalistService) UpdateJournalist(ctx context.Context, journalistID string, req dto.UpdateJournalistRequest, updaterUserID string) (*domain.Journalist, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journalist, err := s.journalistRepo.FindJournalistByID(ctx, journalistID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journalist %s: %w", journalistID, err)
	}

	updated := false
	if req.Name != nil {
		journalist.Name = *req.Name
		updated = true
	}
	if req.Phone != nil {
		journalist.Phone = *req.Phone
		updated = true
	}
	if req.Country != nil {
		journalist.Country = *req.Country
		updated = true
	}
	if req.Title != nil {
		journalist.Title = *req.Title
		updated = true
	}
	if req.MediaHouse != nil {
		journalist.MediaHouse = *req.MediaHouse
		updated = true
	}

	if !updated {
		return journalist, nil
	}

	journalist.LastUpdatedAt = time.Now().UTC()
	journalist.LastUpdatedBy = updaterUserID

	if err := s.journalistRepo.UpdateJournalist(ctx, *journalist); err != nil {
		logger.Error("Failed to update journalist", slog.String("error", err.Error()), slog.String("journalist_id", journalistID))
		return nil, fmt.Errorf("failed to update journalist: %w", err)
	}

	logger.Info("Journalist updated", slog.String("journalist_id", journalistID))
	return journalist, nil
}
