package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateBalanceDropAlertRequest registers a balance-drop alert rule
type CreateBalanceDropAlertRequest struct {
	Threshold float64 `json:"threshold" validate:"required,positive_amount"`
}

// CreateTargetAmountAlertRequest registers a target-amount alert rule.
// AlertThreshold is a fraction of the target, e.g. 0.9 notifies at 90%.
type CreateTargetAmountAlertRequest struct {
	TargetAmount   float64 `json:"targetAmount" validate:"required,positive_amount"`
	AlertThreshold float64 `json:"alertThreshold" validate:"required,gt=0,lte=1"`
}

// AlertRuleResponse represents a stored alert rule
type AlertRuleResponse struct {
	ID                   uuid.UUID `json:"id"`
	AccountID            uuid.UUID `json:"accountId"`
	Kind                 string    `json:"kind"`
	BalanceDropThreshold string    `json:"balanceDropThreshold,omitempty"`
	TargetAmount         string    `json:"targetAmount,omitempty"`
	AlertThreshold       string    `json:"alertThreshold,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
}

// AlertEventResponse represents a dispatched alert notification
type AlertEventResponse struct {
	ID             uuid.UUID  `json:"id"`
	RuleID         uuid.UUID  `json:"ruleId"`
	Kind           string     `json:"kind"`
	ThresholdValue string     `json:"thresholdValue"`
	DispatchStatus string     `json:"dispatchStatus"`
	DispatchedAt   *time.Time `json:"dispatchedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// ListAlertEventsResponse represents the paginated alert event history
type ListAlertEventsResponse struct {
	Events     []AlertEventResponse `json:"events"`
	Pagination PaginationInfo       `json:"pagination"`
}
