package dto

import (
	"time"

	"github.com/wezaprosoft/press_rewards_app/internal/core/domain"
)

// SubmitLinkRequest is a journalist's claim of having published a press
// release at a URL. The link starts in pending review.
type SubmitLinkRequest struct {
	PressReleaseID  string     `json:"pressReleaseID" binding:"required"`
	URL             string     `json:"url" binding:"required,url"`
	Title           string     `json:"title"`
	PublicationDate *time.Time `json:"publicationDate"`
}

// RejectLinkRequest carries the optional reviewer notes for a rejection.
type RejectLinkRequest struct {
	Notes string `json:"notes"`
}

// ListLinksParams filters a link listing by status and/or journalist.
type ListLinksParams struct {
	Status       *string `form:"status"`
	JournalistID *string `form:"journalistID"`
	Limit        int     `form:"limit"`
	NextToken    *string `form:"nextToken"`
}

// PublishedLinkResponse is the API shape of a published link.
type PublishedLinkResponse struct {
	LinkID          string     `json:"linkID"`
	JournalistID    string     `json:"journalistID"`
	PressReleaseID  string     `json:"pressReleaseID"`
	URL             string     `json:"url"`
	Title           string     `json:"title,omitempty"`
	PublicationDate *time.Time `json:"publicationDate,omitempty"`
	Status          string     `json:"status"`
	ReviewedBy      *string    `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// ListLinksResponse wraps a link listing page.
type ListLinksResponse struct {
	Links     []PublishedLinkResponse `json:"links"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// ToPublishedLinkResponse converts a domain link to its API shape.
func ToPublishedLinkResponse(link *domain.PublishedLink) PublishedLinkResponse {
	return PublishedLinkResponse{
		LinkID:          link.LinkID,
		JournalistID:    link.JournalistID,
		PressReleaseID:  link.PressReleaseID,
		URL:             link.URL,
		Title:           link.Title,
		PublicationDate: link.PublicationDate,
		Status:          string(link.Status),
		ReviewedBy:      link.ReviewedBy,
		ReviewedAt:      link.ReviewedAt,
		Notes:           link.Notes,
		CreatedAt:       link.CreatedAt,
	}
}

// ToPublishedLinkResponses converts a slice of domain links.
func ToPublishedLinkResponses(links []domain.PublishedLink) []PublishedLinkResponse {
	out := make([]PublishedLinkResponse, len(links))
	for i := range links {
		out[i] = ToPublishedLinkResponse(&links[i])
	}
	return out
}
