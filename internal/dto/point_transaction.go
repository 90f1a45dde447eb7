package dto

import (
	"time"

	"github.com/wezaprosoft/press_rewards_app/internal/core/domain"
)

// PointTransactionResponse is the API shape of a ledger entry.
type PointTransactionResponse struct {
	TransactionID         string    `json:"transactionID"`
	JournalistID          string    `json:"journalistID"`
	Points                int64     `json:"points"`
	TransactionType       string    `json:"transactionType"`
	Description           string    `json:"description"`
	RelatedPressReleaseID *string   `json:"relatedPressReleaseID,omitempty"`
	RelatedLinkIDs        []string  `json:"relatedLinkIDs,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
}

// ListPointTransactionsResponse wraps a ledger listing page.
type ListPointTransactionsResponse struct {
	Transactions []PointTransactionResponse `json:"transactions"`
	NextToken    *string                    `json:"nextToken,omitempty"`
}

// ToPointTransactionResponse converts a domain ledger entry to its API shape.
func ToPointTransactionResponse(txn *domain.PointTransaction) PointTransactionResponse {
	return PointTransactionResponse{
		TransactionID:         txn.TransactionID,
		JournalistID:          txn.JournalistID,
		Points:                txn.Points,
		TransactionType:       string(txn.Type),
		Description:           txn.Description,
		RelatedPressReleaseID: txn.RelatedPressReleaseID,
		RelatedLinkIDs:        txn.RelatedLinkIDs,
		CreatedAt:             txn.CreatedAt,
	}
}

// ToPointTransactionResponses converts a slice of domain ledger entries.
func ToPointTransactionResponses(txns []domain.PointTransaction) []PointTransactionResponse {
	out := make([]PointTransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToPointTransactionResponse(&txns[i])
	}
	return out
}
