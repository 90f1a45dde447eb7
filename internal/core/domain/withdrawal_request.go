package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalStatus indicates where a withdrawal request is in its lifecycle.
type WithdrawalStatus string

const (
	WithdrawalPending   WithdrawalStatus = "pending"
	WithdrawalApproved  WithdrawalStatus = "approved"
	WithdrawalRejected  WithdrawalStatus = "rejected"
	WithdrawalCompleted WithdrawalStatus = "completed"
)

// ValidProcessTarget reports whether a status is an acceptable target for
// processing a withdrawal request.
func (s WithdrawalStatus) ValidProcessTarget() bool {
	return s == WithdrawalApproved || s == WithdrawalRejected || s == WithdrawalCompleted
}

// WithdrawalRequest is a journalist's request to convert accumulated points
// into cash. Points and Amount are fixed at creation from the conversion rate
// and never recomputed; only the status and processing metadata change.
// The system records withdrawal intent and status, not actual money movement.
type WithdrawalRequest struct {
	WithdrawalID         string           `json:"withdrawalID"` // Primary key (UUID)
	JournalistID         string           `json:"journalistID"`
	Points               int64            `json:"points"` // Positive; immutable after creation
	Amount               decimal.Decimal  `json:"amount"` // KSH equivalent, fixed at creation
	Status               WithdrawalStatus `json:"status"`
	PaymentMethod        string           `json:"paymentMethod"`
	PaymentDetails       string           `json:"paymentDetails"` // Opaque to this service
	ProcessedBy          *string          `json:"processedBy,omitempty"`
	ProcessedAt          *time.Time       `json:"processedAt,omitempty"`
	TransactionReference string           `json:"transactionReference"`
	Notes                string           `json:"notes"`
	AuditFields
}
