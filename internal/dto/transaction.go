package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateTransactionRequest contains a new transaction submission. Timestamp
// is optional and defaults to the server clock; when present it must use the
// UTC wire layout 2006-01-02T15:04:05Z.
type CreateTransactionRequest struct {
	Amount    float64 `json:"amount" validate:"required,positive_amount"`
	Category  string  `json:"category" validate:"required,min=1,max=100"`
	Timestamp string  `json:"timestamp" validate:"omitempty"`
}

// TransactionResponse represents a single transaction
type TransactionResponse struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"accountId"`
	Amount    string    `json:"amount"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
	Fraud     bool      `json:"fraud"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListTransactionsQuery contains filtering options for transaction queries
type ListTransactionsQuery struct {
	Category  string `query:"category"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	FraudOnly bool   `query:"fraudOnly"`
	Offset    int    `query:"offset"`
	Limit     int    `query:"limit"`
}

// PaginationInfo contains pagination metadata
type PaginationInfo struct {
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
	Total  int64 `json:"total"`
}

// ListTransactionsResponse represents the response for listing transactions
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationInfo        `json:"pagination"`
}
