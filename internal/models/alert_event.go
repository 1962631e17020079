package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DispatchStatusQueued    = "queued"
	DispatchStatusDelivered = "delivered"
	DispatchStatusFailed    = "failed"
	DispatchStatusDropped   = "dropped"
)

// AlertEvent records a single alert dispatch. One row per qualifying event;
// the dispatch status is updated out of band by the notification dispatcher
// and is never part of the transaction pipeline's critical section.
type AlertEvent struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	RuleID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"rule_id"`
	Kind           string          `gorm:"type:varchar(20);not null" json:"kind"`
	ThresholdValue decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"threshold_value"`
	DispatchStatus string          `gorm:"type:varchar(20);not null;default:'queued'" json:"dispatch_status"`
	DispatchedAt   *time.Time      `json:"dispatched_at,omitempty"`
	CreatedAt      time.Time       `gorm:"not null;index" json:"created_at"`
}

// BeforeCreate hook for AlertEvent
func (e *AlertEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	if e.DispatchStatus == "" {
		e.DispatchStatus = DispatchStatusQueued
	}

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	return nil
}

// MarkDelivered records a successful dispatch.
func (e *AlertEvent) MarkDelivered() {
	now := time.Now()
	e.DispatchStatus = DispatchStatusDelivered
	e.DispatchedAt = &now
}

// MarkFailed records a failed dispatch. Delivery is fire-and-forget; failed
// events are never retried.
func (e *AlertEvent) MarkFailed() {
	now := time.Now()
	e.DispatchStatus = DispatchStatusFailed
	e.DispatchedAt = &now
}

// TableName returns the table name for AlertEvent
func (e *AlertEvent) TableName() string {
	return "alert_events"
}
