package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidAmount   = errors.New("transaction amount must be positive")
	ErrMissingCategory = errors.New("transaction category is required")
	ErrFraudFlagReset  = errors.New("fraud flag cannot be cleared once set")
)

// TimestampLayout is the wire format for transaction timestamps.
const TimestampLayout = "2006-01-02T15:04:05Z"

// Transaction is a single spend recorded against an account. The fraud flag
// is monotonic: once true it is never reset.
type Transaction struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountID uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Category  string          `gorm:"type:varchar(255);not null;index" json:"category"`
	Timestamp time.Time       `gorm:"not null;index" json:"timestamp"`
	Fraud     bool            `gorm:"not null;default:false" json:"fraud"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	now := time.Now()
	if t.Timestamp.IsZero() {
		t.Timestamp = now.UTC()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

// BeforeUpdate hook for Transaction
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.Category == "" {
		return ErrMissingCategory
	}

	if len(t.Category) > 255 {
		return errors.New("category too long")
	}

	return nil
}

// MarkFraud sets the fraud flag. The flag is monotonic; there is no
// corresponding clear operation.
func (t *Transaction) MarkFraud() {
	t.Fraud = true
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}
