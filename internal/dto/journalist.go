package dto

import (
	"github.com/shopspring/decimal"

	"github.com/wezaprosoft/press_rewards_app/internal/core/domain"
)

// CreateJournalistRequest carries a new journalist profile.
type CreateJournalistRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Country    string `json:"country"`
	Title      string `json:"title"`
	MediaHouse string `json:"mediaHouse"`
}

// UpdateJournalistRequest carries optional profile updates.
type UpdateJournalistRequest struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Country    *string `json:"country"`
	Title      *string `json:"title"`
	MediaHouse *string `json:"mediaHouse"`
}

// ListJournalistsParams holds directory listing parameters. Search matches
// email, name, country, title and media house.
type ListJournalistsParams struct {
	Search    string  `form:"search"`
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// JournalistResponse is the API shape of a journalist profile.
type JournalistResponse struct {
	JournalistID string `json:"journalistID"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	Country      string `json:"country,omitempty"`
	Title        string `json:"title,omitempty"`
	MediaHouse   string `json:"mediaHouse,omitempty"`
}

// ListJournalistsResponse wraps a directory page.
type ListJournalistsResponse struct {
	Journalists []JournalistResponse `json:"journalists"`
	NextToken   *string              `json:"nextToken,omitempty"`
}

// BalanceResponse reports the derived point balance and its cash equivalent.
type BalanceResponse struct {
	JournalistID string          `json:"journalistID"`
	Points       int64           `json:"points"`
	AmountKSH    decimal.Decimal `json:"amountKSH"`
}

// ToJournalistResponse converts a domain journalist to its API shape.
func ToJournalistResponse(j *domain.Journalist) JournalistResponse {
	return JournalistResponse{
		JournalistID: j.JournalistID,
		Email:        j.Email,
		Name:         j.Name,
		Phone:        j.Phone,
		Country:      j.Country,
		Title:        j.Title,
		MediaHouse:   j.MediaHouse,
	}
}

// ToJournalistResponses converts a slice of domain journalists.
func ToJournalistResponses(journalists []domain.Journalist) []JournalistResponse {
	out := make([]JournalistResponse, len(journalists))
	for i := range journalists {
		out[i] = ToJournalistResponse(&journalists[i])
	}
	return out
}
