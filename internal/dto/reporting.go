package dto

import (
	"github.com/shopspring/decimal"

	"github.com/wezaprosoft/press_rewards_app/internal/core/domain"
)

// AdminDashboardResponse is the staff dashboard payload.
type AdminDashboardResponse struct {
	PendingLinks         int64                    `json:"pendingLinks"`
	PendingWithdrawals   int64                    `json:"pendingWithdrawals"`
	TotalPointsAwarded   int64                    `json:"totalPointsAwarded"`
	TotalPointsWithdrawn int64                    `json:"totalPointsWithdrawn"`
	TotalKSHProcessed    decimal.Decimal          `json:"totalKSHProcessed"`
	TopJournalists       []TopJournalistResponse  `json:"topJournalists"`
}

// TopJournalistResponse is one ranking row on the staff dashboard.
type TopJournalistResponse struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Points int64  `json:"points"`
}

// JournalistDashboardResponse is the journalist-facing dashboard payload.
type JournalistDashboardResponse struct {
	Journalist         JournalistResponse      `json:"journalist"`
	PressReleases      []PressReleaseResponse  `json:"pressReleases"`
	PublishedLinks     []PublishedLinkResponse `json:"publishedLinks"`
	TotalPoints        int64                   `json:"totalPoints"`
	PointsInKSH        decimal.Decimal         `json:"pointsInKSH"`
	WithdrawalRequests []WithdrawalResponse    `json:"withdrawalRequests"`
}

// PressReleaseStatsResponse summarizes engagement with one press release.
type PressReleaseStatsResponse struct {
	PressReleaseID       string           `json:"pressReleaseID"`
	LinksStats           map[string]int64 `json:"linksStats"`
	JournalistsShared    int64            `json:"journalistsShared"`
	JournalistsPublished int64            `json:"journalistsPublished"`
	EngagementRate       decimal.Decimal  `json:"engagementRate"`
}

// ToAdminDashboardResponse converts the domain dashboard aggregate.
func ToAdminDashboardResponse(d *domain.AdminDashboard) AdminDashboardResponse {
	top := make([]TopJournalistResponse, len(d.TopJournalists))
	for i, j := range d.TopJournalists {
		name := j.Name
		if name == "" {
			name = j.Email
		}
		top[i] = TopJournalistResponse{Name: name, Email: j.Email, Points: j.Points}
	}
	return AdminDashboardResponse{
		PendingLinks:         d.PendingLinks,
		PendingWithdrawals:   d.PendingWithdrawals,
		TotalPointsAwarded:   d.TotalPointsAwarded,
		TotalPointsWithdrawn: d.TotalPointsWithdrawn,
		TotalKSHProcessed:    d.TotalCashProcessed,
		TopJournalists:       top,
	}
}

// ToPressReleaseStatsResponse converts the domain stats aggregate.
func ToPressReleaseStatsResponse(s *domain.PressReleaseStats) PressReleaseStatsResponse {
	counts := make(map[string]int64, len(s.LinkCounts))
	for _, c := range s.LinkCounts {
		counts[string(c.Status)] = c.Count
	}
	return PressReleaseStatsResponse{
		PressReleaseID:       s.PressReleaseID,
		LinksStats:           counts,
		JournalistsShared:    s.JournalistsShared,
		JournalistsPublished: s.JournalistsPublished,
		EngagementRate:       s.EngagementRate,
	}
}
