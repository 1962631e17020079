package repositories

import (
	"time"

	"finance-ledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdateLastLogin(userID uuid.UUID) error
}

// AccountRepositoryInterface defines the contract for account repository operations
type AccountRepositoryInterface interface {
	Create(account *models.Account) error
	GetByID(id uuid.UUID) (*models.Account, error)
	GetByUserID(userID uuid.UUID) (*models.Account, error)
	UpdateBalance(accountID uuid.UUID, balance decimal.Decimal) error
}

// TransactionRepositoryInterface is the transaction history collaborator.
// Window arguments are half-open: [since, until).
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	GetByID(id uuid.UUID) (*models.Transaction, error)
	AllByAccount(accountID uuid.UUID) ([]models.Transaction, error)
	ByCategory(accountID uuid.UUID, category string, since, until time.Time) ([]models.Transaction, error)
	ByTimeRange(accountID uuid.UUID, since, until time.Time) ([]models.Transaction, error)
	GetWithFilters(filters models.TransactionFilters) ([]models.Transaction, int64, error)
	MarkFraud(id uuid.UUID) error
}

// RecurringExpenseRepositoryInterface defines the contract for recurring expense operations
type RecurringExpenseRepositoryInterface interface {
	Create(expense *models.RecurringExpense) error
	GetByID(id, accountID uuid.UUID) (*models.RecurringExpense, error)
	ListByAccount(accountID uuid.UUID) ([]models.RecurringExpense, error)
	Update(expense *models.RecurringExpense) error
	Delete(id, accountID uuid.UUID) error
}

// AlertRuleRepositoryInterface defines the contract for alert rule operations.
// ListByAccountAndKind returns rules in stored (creation) order, which is the
// order the alert engine evaluates them in.
type AlertRuleRepositoryInterface interface {
	Create(rule *models.AlertRule) error
	GetByID(id, accountID uuid.UUID) (*models.AlertRule, error)
	ListByAccount(accountID uuid.UUID) ([]models.AlertRule, error)
	ListByAccountAndKind(accountID uuid.UUID, kind string) ([]models.AlertRule, error)
	Delete(id, accountID uuid.UUID) error
}

// AlertEventRepositoryInterface defines the contract for alert event operations
type AlertEventRepositoryInterface interface {
	Create(event *models.AlertEvent) error
	UpdateDispatchStatus(id uuid.UUID, status string) error
	ListByAccount(accountID uuid.UUID, offset, limit int) ([]models.AlertEvent, int64, error)
	CountSince(accountID uuid.UUID, since time.Time) (int64, error)
}
