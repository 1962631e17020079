package models

import (
	"github.com/shopspring/decimal"
)

// MonthlyStatement is one row of a 12-month balance projection. It is a
// computed value, never persisted.
type MonthlyStatement struct {
	Month                 string          `json:"month"`
	RecurringExpenseTotal decimal.Decimal `json:"recurring_expense"`
	ExpectedBalance       decimal.Decimal `json:"expected_balance"`
}
