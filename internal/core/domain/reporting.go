package domain

import "github.com/shopspring/decimal"

// JournalistPoints is a dashboard ranking row: a journalist and their derived
// ledger total. The total uses the same SUM(points) expression as the balance
// computation so rankings and balances can never disagree.
type JournalistPoints struct {
	JournalistID string `json:"journalistID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Points       int64  `json:"points"`
}

// AdminDashboard aggregates review-queue and ledger totals for staff.
// All values are recomputed from the ledger and workflow tables per request.
type AdminDashboard struct {
	PendingLinks         int64              `json:"pendingLinks"`
	PendingWithdrawals   int64              `json:"pendingWithdrawals"`
	TotalPointsAwarded   int64              `json:"totalPointsAwarded"`
	TotalPointsWithdrawn int64              `json:"totalPointsWithdrawn"` // Positive magnitude
	TotalCashProcessed   decimal.Decimal    `json:"totalCashProcessed"`   // Approved + completed withdrawals
	TopJournalists       []JournalistPoints `json:"topJournalists"`
}

// LinkStatusCount is a per-status link tally for a press release.
type LinkStatusCount struct {
	Status LinkStatus `json:"status"`
	Count  int64      `json:"count"`
}

// PressReleaseStats summarizes journalist engagement with one press release.
type PressReleaseStats struct {
	PressReleaseID       string            `json:"pressReleaseID"`
	LinkCounts           []LinkStatusCount `json:"linkCounts"`
	JournalistsShared    int64             `json:"journalistsShared"`
	JournalistsPublished int64             `json:"journalistsPublished"`
	EngagementRate       decimal.Decimal   `json:"engagementRate"` // Published / shared * 100
}
