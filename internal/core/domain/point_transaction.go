package domain

import "time"

// TransactionType classifies a ledger entry as a point award or a withdrawal debit.
type TransactionType string

const (
	TransactionEarned     TransactionType = "earned"
	TransactionWithdrawal TransactionType = "withdrawal"
)

// PointTransaction is an immutable, append-only ledger entry. Points are
// signed: positive for earned entries, negative for withdrawal entries, so a
// journalist's balance is derivable from the ledger alone. Rows are never
// updated or deleted, which is why there are no LastUpdated audit fields.
type PointTransaction struct {
	TransactionID          string          `json:"transactionID"` // Primary key (UUID)
	JournalistID           string          `json:"journalistID"`
	Points                 int64           `json:"points"` // Signed; sign encodes direction
	Type                   TransactionType `json:"transactionType"`
	Description            string          `json:"description"`
	RelatedPressReleaseID  *string         `json:"relatedPressReleaseID,omitempty"`
	RelatedLinkIDs         []string        `json:"relatedLinkIDs,omitempty"` // Links that justified an award
	CreatedAt              time.Time       `json:"createdAt"`
	CreatedBy              string          `json:"createdBy"`
}
