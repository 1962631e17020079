package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionFilters narrows transaction history queries.
type TransactionFilters struct {
	AccountID uuid.UUID
	Category  string
	Since     *time.Time
	Until     *time.Time
	FraudOnly bool
	Offset    int
	Limit     int
}
