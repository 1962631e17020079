package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	AlertKindBalanceDrop  = "balance_drop"
	AlertKindTargetAmount = "target_amount"
)

var (
	ErrInvalidAlertKind      = errors.New("invalid alert kind")
	ErrInvalidAlertThreshold = errors.New("alert threshold must be a fraction in (0, 1]")
)

// AlertRule is one of two per-account alert variants.
//
// balance_drop: fires when a single transaction drops the balance by more
// than BalanceDropThreshold.
//
// target_amount: fires when the balance crosses up through
// TargetAmount * AlertThreshold (e.g. 0.9 = notify at 90% of target).
//
// Rules are evaluated in stored (creation) order and at most one rule per
// family dispatches for a given event.
type AlertRule struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	Kind                 string          `gorm:"type:varchar(20);not null" json:"kind"`
	BalanceDropThreshold decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"balance_drop_threshold,omitempty"`
	TargetAmount         decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"target_amount,omitempty"`
	AlertThreshold       decimal.Decimal `gorm:"type:decimal(5,4);not null;default:0" json:"alert_threshold,omitempty"`
	CreatedAt            time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for AlertRule
func (r *AlertRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}

	return r.Validate()
}

// BeforeUpdate hook for AlertRule
func (r *AlertRule) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = time.Now()
	return r.Validate()
}

// Validate validates the alert rule fields
func (r *AlertRule) Validate() error {
	if r.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	switch r.Kind {
	case AlertKindBalanceDrop:
		if r.BalanceDropThreshold.LessThanOrEqual(decimal.Zero) {
			return errors.New("balance drop threshold must be positive")
		}
	case AlertKindTargetAmount:
		if r.TargetAmount.LessThanOrEqual(decimal.Zero) {
			return errors.New("target amount must be positive")
		}
		if r.AlertThreshold.LessThanOrEqual(decimal.Zero) || r.AlertThreshold.GreaterThan(decimal.NewFromInt(1)) {
			return ErrInvalidAlertThreshold
		}
	default:
		return ErrInvalidAlertKind
	}

	return nil
}

// Goal returns the balance level a target_amount rule notifies at.
func (r *AlertRule) Goal() decimal.Decimal {
	return r.TargetAmount.Mul(r.AlertThreshold)
}

// ThresholdValue returns the threshold carried in the notification payload
// for this rule's kind.
func (r *AlertRule) ThresholdValue() decimal.Decimal {
	if r.Kind == AlertKindTargetAmount {
		return r.Goal()
	}
	return r.BalanceDropThreshold
}

// IsValidAlertKind checks if the alert kind is valid
func IsValidAlertKind(kind string) bool {
	switch kind {
	case AlertKindBalanceDrop, AlertKindTargetAmount:
		return true
	default:
		return false
	}
}

// TableName returns the table name for AlertRule
func (r *AlertRule) TableName() string {
	return "alert_rules"
}
