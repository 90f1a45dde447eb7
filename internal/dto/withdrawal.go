package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wezaprosoft/press_rewards_app/internal/core/domain"
)

// CreateWithdrawalRequest is a journalist's request to cash out points. The
// cash amount is derived from the conversion rate at creation, never taken
// from the caller.
type CreateWithdrawalRequest struct {
	Points         int64  `json:"points" binding:"required,gt=0"`
	PaymentMethod  string `json:"paymentMethod" binding:"required"`
	PaymentDetails string `json:"paymentDetails"`
}

// ProcessWithdrawalRequest carries one reviewer action on a withdrawal.
type ProcessWithdrawalRequest struct {
	Status               string  `json:"status" binding:"required"`
	Notes                *string `json:"notes"`
	TransactionReference *string `json:"transactionReference"`
}

// ListWithdrawalsParams filters a withdrawal listing.
type ListWithdrawalsParams struct {
	JournalistID *string `form:"journalistID"`
	Status       *string `form:"status"`
	Limit        int     `form:"limit"`
	NextToken    *string `form:"nextToken"`
}

// WithdrawalResponse is the API shape of a withdrawal request.
type WithdrawalResponse struct {
	WithdrawalID         string          `json:"withdrawalID"`
	JournalistID         string          `json:"journalistID"`
	Points               int64           `json:"points"`
	Amount               decimal.Decimal `json:"amount"`
	Status               string          `json:"status"`
	PaymentMethod        string          `json:"paymentMethod"`
	PaymentDetails       string          `json:"paymentDetails,omitempty"`
	ProcessedBy          *string         `json:"processedBy,omitempty"`
	ProcessedAt          *time.Time      `json:"processedAt,omitempty"`
	TransactionReference string          `json:"transactionReference,omitempty"`
	Notes                string          `json:"notes,omitempty"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// ListWithdrawalsResponse wraps a withdrawal listing page.
type ListWithdrawalsResponse struct {
	Withdrawals []WithdrawalResponse `json:"withdrawals"`
	NextToken   *string              `json:"nextToken,omitempty"`
}

// ToWithdrawalResponse converts a domain withdrawal request to its API shape.
func ToWithdrawalResponse(w *domain.WithdrawalRequest) WithdrawalResponse {
	return WithdrawalResponse{
		WithdrawalID:         w.WithdrawalID,
		JournalistID:         w.JournalistID,
		Points:               w.Points,
		Amount:               w.Amount,
		Status:               string(w.Status),
		PaymentMethod:        w.PaymentMethod,
		PaymentDetails:       w.PaymentDetails,
		ProcessedBy:          w.ProcessedBy,
		ProcessedAt:          w.ProcessedAt,
		TransactionReference: w.TransactionReference,
		Notes:                w.Notes,
		CreatedAt:            w.CreatedAt,
	}
}

// ToWithdrawalResponses converts a slice of domain withdrawal requests.
func ToWithdrawalResponses(withdrawals []domain.WithdrawalRequest) []WithdrawalResponse {
	out := make([]WithdrawalResponse, len(withdrawals))
	for i := range withdrawals {
		out[i] = ToWithdrawalResponse(&withdrawals[i])
	}
	return out
}
