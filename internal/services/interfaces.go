package services

import (
	"time"

	"finance-ledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FraudServiceInterface classifies candidate transactions before they are
// persisted. Evaluation runs against the account's history strictly before
// the candidate's timestamp; the candidate itself is never in the sample.
type FraudServiceInterface interface {
	// EvaluateFraud returns the verdict and, when fraudulent, the name of
	// the first rule that fired.
	EvaluateFraud(candidate *models.Transaction) (bool, string, error)
}

// ProjectionServiceInterface forecasts account balances against recurring
// expenses. Read-only and deterministic for a fixed now.
type ProjectionServiceInterface interface {
	Project(accountID uuid.UUID, now time.Time) ([]models.MonthlyStatement, error)
}

// AlertServiceInterface owns alert rule management, threshold evaluation and
// notification dispatch. The Evaluate methods only decide which rule (if any)
// triggered; the caller chooses whether and when to dispatch.
type AlertServiceInterface interface {
	CreateBalanceDropRule(accountID uuid.UUID, threshold decimal.Decimal) (*models.AlertRule, error)
	CreateTargetAmountRule(accountID uuid.UUID, target, fraction decimal.Decimal) (*models.AlertRule, error)
	ListRules(accountID uuid.UUID) ([]models.AlertRule, error)
	DeleteRule(id, accountID uuid.UUID) error
	ListEvents(accountID uuid.UUID, offset, limit int) ([]models.AlertEvent, int64, error)

	EvaluateBalanceDrop(accountID uuid.UUID, initialBalance, finalBalance decimal.Decimal) (*models.AlertRule, error)
	EvaluateTargetAmount(accountID uuid.UUID, initialBalance, finalBalance decimal.Decimal) (*models.AlertRule, error)

	// Dispatch records an alert event and hands it to the asynchronous
	// notification channel. Never blocks on delivery.
	Dispatch(account *models.Account, user *models.User, rule *models.AlertRule) error
}

// TransactionServiceInterface is the transaction submission pipeline:
// fraud evaluation, persistence, balance update and alert evaluation run
// inside a per-account critical section; notification dispatch happens after
// the section is released.
type TransactionServiceInterface interface {
	CreateTransaction(userID uuid.UUID, amount decimal.Decimal, category string, timestamp time.Time) (*models.Transaction, error)
	GetTransactions(userID uuid.UUID, filters models.TransactionFilters) ([]models.Transaction, int64, error)
}

// RecurringExpenseServiceInterface manages the periodic obligations used by
// the projection engine
type RecurringExpenseServiceInterface interface {
	CreateExpense(userID uuid.UUID, name string, amount decimal.Decimal, frequency string, startDate time.Time) (*models.RecurringExpense, error)
	ListExpenses(userID uuid.UUID) ([]models.RecurringExpense, error)
	UpdateExpense(id, userID uuid.UUID, name string, amount decimal.Decimal, frequency string, startDate time.Time) (*models.RecurringExpense, error)
	DeleteExpense(id, userID uuid.UUID) error
	ProjectBalance(userID uuid.UUID) ([]models.MonthlyStatement, error)
}

// AuthServiceInterface defines authentication operations
type AuthServiceInterface interface {
	Register(email, password, firstName, lastName string, initialBalance decimal.Decimal) (*models.User, *models.Account, error)
	Login(email, password string) (string, time.Time, *models.User, error)
}

// TokenServiceInterface defines JWT token operations
type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

// PasswordServiceInterface defines password hashing and validation operations
type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// ExchangeServiceInterface serves the currency rate and fee lookup tables and
// the transfer cost simulation built on them
type ExchangeServiceInterface interface {
	Rates() (map[string]decimal.Decimal, error)
	Fees() (map[string]decimal.Decimal, error)
	Simulate(amount decimal.Decimal, currency string) (*models.TransferQuote, error)
}

// DemoDataServiceInterface seeds development environments with realistic data
type DemoDataServiceInterface interface {
	Seed(userID uuid.UUID, transactionCount int) (*SeedSummary, error)
}
