package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidBalance = errors.New("balance must be a valid decimal amount")
)

// Account is a user's ledger account. The balance is the single source of
// truth for projections and balance-drop detection; it is mutated only by
// applying a transaction's amount inside the per-account critical section.
//
// Child rows (transactions, recurring expenses, alert rules) reference the
// account by plain identifier and are loaded through repositories, never
// through a live object graph.
type Account struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Balance   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	Currency  string          `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate hook for Account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	if a.Currency == "" {
		a.Currency = "USD"
	}

	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	return a.Validate()
}

// BeforeUpdate hook for Account
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return a.Validate()
}

// Validate validates the account fields
func (a *Account) Validate() error {
	if a.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if len(a.Currency) != 3 {
		return errors.New("currency must be a 3-letter code")
	}

	return nil
}

// Apply subtracts a transaction amount from the balance and returns the
// balance pair observed by the alert engine.
func (a *Account) Apply(amount decimal.Decimal) (before, after decimal.Decimal) {
	before = a.Balance
	a.Balance = a.Balance.Sub(amount)
	return before, a.Balance
}

// TableName returns the table name for Account
func (a *Account) TableName() string {
	return "accounts"
}
