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
	"github.com/wezaprosoft/press_rewards_app/internal/utils"
)

// userService manages authenticating user accounts.
type userService struct {
	userRepo       portsrepo.UserRepository
	journalistRepo portsrepo.JournalistRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepository, journalistRepo portsrepo.JournalistRepository) portssvc.UserSvcFacade {
	return &userService{
		userRepo:       userRepo,
		journalistRepo: journalistRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a staff or journalist user account. A linked
// journalist ID must reference an existing journalist.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.JournalistID != nil {
		if _, err := s.journalistRepo.FindJournalistByID(ctx, *req.JournalistID); err != nil {
			return nil, fmt.Errorf("failed to find journalist %s: %w", *req.JournalistID, err)
		}
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: passwordHash,
		IsStaff:      req.IsStaff,
		JournalistID: req.JournalistID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
		}
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("User created", slog.String("user_id", user.UserID), slog.Bool("is_staff", user.IsStaff))
	return &user, nil
}

// GetUser retrieves a user account by ID.
func (s *userService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	return user, nil
}

// AuthenticateUser checks credentials and returns the matching user. A
// missing account and a wrong password both map to ErrUnauthorized so the
// response does not reveal which one failed.
func (s *userService) AuthenticateUser(ctx context.Context, email string, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		logger.Error("Failed to look up user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Failed login attempt", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	return user, nil
}
