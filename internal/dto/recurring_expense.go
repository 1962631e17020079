package dto

import (
	"time"

	"finance-ledger/internal/models"

	"github.com/google/uuid"
)

// CreateRecurringExpenseRequest contains a new recurring obligation.
// StartDate uses the YYYY-MM-DD layout; only year and month matter for the
// projection.
type CreateRecurringExpenseRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=100"`
	Amount    float64 `json:"amount" validate:"required,positive_amount"`
	Frequency string  `json:"frequency" validate:"omitempty,oneof=monthly"`
	StartDate string  `json:"startDate" validate:"required"`
}

// UpdateRecurringExpenseRequest mirrors the create payload
type UpdateRecurringExpenseRequest = CreateRecurringExpenseRequest

// RecurringExpenseResponse represents a recurring expense
type RecurringExpenseResponse struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"accountId"`
	Name      string    `json:"name"`
	Amount    string    `json:"amount"`
	Frequency string    `json:"frequency"`
	StartDate string    `json:"startDate"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProjectionResponse is the 12-month balance forecast
type ProjectionResponse struct {
	Projection []models.MonthlyStatement `json:"projection"`
}
