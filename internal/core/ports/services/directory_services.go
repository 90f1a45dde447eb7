package services

import (
	"context"

	"github.com/wezaprosoft/press_rewards_app/internal/core/domain"
	"github.com/wezaprosoft/press_rewards_app/internal/dto"
)

// JournalistSvcFacade is the journalist directory: profile CRUD and search.
// This service never touches the ledger.
type JournalistSvcFacade interface {
	CreateJournalist(ctx context.Context, req dto.CreateJournalistRequest, creatorUserID string) (*domain.Journalist, error)
	GetJournalist(ctx context.Context, journalistID string) (*domain.Journalist, error)
	ListJournalists(ctx context.Context, params dto.ListJournalistsParams) ([]domain.Journalist, *string, error)
	UpdateJournalist(ctx context.Context, journalistID string, req dto.UpdateJournalistRequest, updaterUserID string) (*domain.Journalist, error)
}

// PressReleaseSvcFacade manages press release metadata and distribution
// records. Content generation and delivery live upstream.
type PressReleaseSvcFacade interface {
	CreatePressRelease(ctx context.Context, req dto.CreatePressReleaseRequest, creatorUserID string) (*domain.PressRelease, error)
	GetPressRelease(ctx context.Context, pressReleaseID string) (*domain.PressRelease, error)
	ListPressReleases(ctx context.Context, params dto.ListParams) ([]domain.PressRelease, *string, error)
	UpdatePressRelease(ctx context.Context, pressReleaseID string, req dto.UpdatePressReleaseRequest, updaterUserID string) (*domain.PressRelease, error)
	SharePressRelease(ctx context.Context, pressReleaseID string, journalistIDs []string, sharerUserID string) error
}

// UserSvcFacade manages authenticating users and credential checks.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	AuthenticateUser(ctx context.Context, email string, password string) (*domain.User, error)
}
