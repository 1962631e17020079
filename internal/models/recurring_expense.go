package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	FrequencyMonthly = "monthly"
)

// RecurringExpense is a periodic obligation. Only the year and month of the
// start date are semantically significant: once an expense is due it
// contributes to every projected month from its due month onward.
type RecurringExpense struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountID uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	Name      string          `gorm:"type:varchar(255);not null" json:"expense_name"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Frequency string          `gorm:"type:varchar(50);not null;default:'monthly'" json:"frequency"`
	StartDate time.Time       `gorm:"not null" json:"start_date"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for RecurringExpense
func (e *RecurringExpense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	if e.Frequency == "" {
		e.Frequency = FrequencyMonthly
	}

	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}

	return e.Validate()
}

// BeforeUpdate hook for RecurringExpense
func (e *RecurringExpense) BeforeUpdate(tx *gorm.DB) error {
	e.UpdatedAt = time.Now()
	return e.Validate()
}

// Validate validates the recurring expense fields
func (e *RecurringExpense) Validate() error {
	if e.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if e.Name == "" {
		return errors.New("expense name is required")
	}

	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("expense amount must be positive")
	}

	if e.StartDate.IsZero() {
		return errors.New("start date is required")
	}

	return nil
}

// DueDate returns the (year, month) the expense first falls due. It is
// always the first day of the start month.
func (e *RecurringExpense) DueDate() (int, time.Month) {
	return e.StartDate.Year(), e.StartDate.Month()
}

// DueBy reports whether the expense is due on or before the given month.
func (e *RecurringExpense) DueBy(year int, month time.Month) bool {
	dueYear, dueMonth := e.DueDate()
	if dueYear != year {
		return dueYear < year
	}
	return dueMonth <= month
}

// TableName returns the table name for RecurringExpense
func (e *RecurringExpense) TableName() string {
	return "recurring_expenses"
}
