package dto

import (
	"time"

	"github.com/wezaprosoft/press_rewards_app/internal/core/domain"
)

// CreatePressReleaseRequest carries new press release metadata.
type CreatePressReleaseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Client      string `json:"client"`
	Partner     string `json:"partner"`
	Country     string `json:"country"`
}

// UpdatePressReleaseRequest carries optional metadata updates.
type UpdatePressReleaseRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	Client      *string `json:"client"`
	Partner     *string `json:"partner"`
	Country     *string `json:"country"`
	IsPublished *bool   `json:"isPublished"`
}

// SharePressReleaseRequest records distribution of a press release to a set
// of journalists. Delivery itself happens upstream.
type SharePressReleaseRequest struct {
	JournalistIDs []string `json:"journalistIDs" binding:"required,min=1"`
}

// PressReleaseResponse is the API shape of press release metadata.
type PressReleaseResponse struct {
	PressReleaseID string    `json:"pressReleaseID"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Client         string    `json:"client,omitempty"`
	Partner        string    `json:"partner,omitempty"`
	Country        string    `json:"country,omitempty"`
	IsPublished    bool      `json:"isPublished"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ListPressReleasesResponse wraps a press release listing page.
type ListPressReleasesResponse struct {
	PressReleases []PressReleaseResponse `json:"pressReleases"`
	NextToken     *string                `json:"nextToken,omitempty"`
}

// ToPressReleaseResponse converts a domain press release to its API shape.
func ToPressReleaseResponse(pr *domain.PressRelease) PressReleaseResponse {
	return PressReleaseResponse{
		PressReleaseID: pr.PressReleaseID,
		Title:          pr.Title,
		Description:    pr.Description,
		Client:         pr.Client,
		Partner:        pr.Partner,
		Country:        pr.Country,
		IsPublished:    pr.IsPublished,
		CreatedAt:      pr.CreatedAt,
	}
}

// ToPressReleaseResponses converts a slice of domain press releases.
func ToPressReleaseResponses(releases []domain.PressRelease) []PressReleaseResponse {
	out := make([]PressReleaseResponse, len(releases))
	for i := range releases {
		out[i] = ToPressReleaseResponse(&releases[i])
	}
	return out
}
