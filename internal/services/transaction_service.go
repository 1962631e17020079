package services

import (
	"fmt"
	"log/slog"
	"time"

	"finance-ledger/internal/models"
	"finance-ledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type transactionService struct {
	accountRepo     repositories.AccountRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	userRepo        repositories.UserRepositoryInterface
	fraudService    FraudServiceInterface
	alertService    AlertServiceInterface
	locks           *accountLocks
	metrics         *PrometheusMetrics
}

func NewTransactionService(
	accountRepo repositories.AccountRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	fraudService FraudServiceInterface,
	alertService AlertServiceInterface,
	metrics *PrometheusMetrics,
) TransactionServiceInterface {
	return &transactionService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		fraudService:    fraudService,
		alertService:    alertService,
		locks:           newAccountLocks(),
		metrics:         metrics,
	}
}

// CreateTransaction runs the full submission pipeline. Everything that reads
// or writes account state — fraud windows, the transaction row, the balance,
// alert evaluation — happens inside the account's critical section so that
// concurrent submissions against the same account never observe each other's
// in-flight state. Notification dispatch is deliberately moved after the
// section is released: a slow or failing channel must not hold up the next
// submission.
func (s *transactionService) CreateTransaction(userID uuid.UUID, amount decimal.Decimal, category string, timestamp time.Time) (*models.Transaction, error) {
	account, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	candidate := &models.Transaction{
		AccountID: account.ID,
		Amount:    amount,
		Category:  category,
		Timestamp: timestamp.UTC(),
	}

	unlock := s.locks.Lock(account.ID)

	fraud, rule, err := s.fraudService.EvaluateFraud(candidate)
	if err != nil {
		unlock()
		return nil, fmt.Errorf("fraud evaluation failed: %w", err)
	}
	if fraud {
		candidate.MarkFraud()
	}

	if err := s.transactionRepo.Create(candidate); err != nil {
		unlock()
		return nil, fmt.Errorf("failed to persist transaction: %w", err)
	}

	initialBalance, finalBalance := account.Apply(amount)

	if err := s.accountRepo.UpdateBalance(account.ID, finalBalance); err != nil {
		unlock()
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	dropRule, err := s.alertService.EvaluateBalanceDrop(account.ID, initialBalance, finalBalance)
	if err != nil {
		slog.Error("balance drop evaluation failed", "account_id", account.ID, "error", err)
	}

	targetRule, err := s.alertService.EvaluateTargetAmount(account.ID, initialBalance, finalBalance)
	if err != nil {
		slog.Error("target amount evaluation failed", "account_id", account.ID, "error", err)
	}

	unlock()

	if dropRule != nil {
		if err := s.alertService.Dispatch(account, user, dropRule); err != nil {
			slog.Error("failed to dispatch balance drop alert", "account_id", account.ID, "error", err)
		}
	}
	if targetRule != nil {
		if err := s.alertService.Dispatch(account, user, targetRule); err != nil {
			slog.Error("failed to dispatch target amount alert", "account_id", account.ID, "error", err)
		}
	}

	if s.metrics != nil {
		s.metrics.RecordTransactionProcessed(fraud)
	}

	slog.Info("transaction created",
		"transaction_id", candidate.ID,
		"account_id", account.ID,
		"amount", amount.StringFixed(2),
		"category", category,
		"fraud", fraud,
		"fraud_rule", rule,
	)

	return candidate, nil
}

func (s *transactionService) GetTransactions(userID uuid.UUID, filters models.TransactionFilters) ([]models.Transaction, int64, error) {
	account, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, 0, err
	}

	filters.AccountID = account.ID

	return s.transactionRepo.GetWithFilters(filters)
}
