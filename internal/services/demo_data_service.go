package services

import (
	"fmt"
	"time"

	"finance-ledger/internal/models"
	"finance-ledger/internal/repositories"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SeedSummary reports what the demo data generator created
type SeedSummary struct {
	AccountID         uuid.UUID       `json:"account_id"`
	Transactions      int             `json:"transactions"`
	RecurringExpenses int             `json:"recurring_expenses"`
	AlertRules        int             `json:"alert_rules"`
	FinalBalance      decimal.Decimal `json:"final_balance"`
}

var seedCategories = []string{
	"groceries", "dining", "transport", "utilities",
	"entertainment", "healthcare", "shopping",
}

type demoDataService struct {
	accountRepo     repositories.AccountRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	expenseRepo     repositories.RecurringExpenseRepositoryInterface
	ruleRepo        repositories.AlertRuleRepositoryInterface
	faker           *gofakeit.Faker
}

func NewDemoDataService(
	accountRepo repositories.AccountRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	expenseRepo repositories.RecurringExpenseRepositoryInterface,
	ruleRepo repositories.AlertRuleRepositoryInterface,
) DemoDataServiceInterface {
	return &demoDataService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		expenseRepo:     expenseRepo,
		ruleRepo:        ruleRepo,
		faker:           gofakeit.New(0),
	}
}

// Seed fills the user's account with a spread of historical transactions,
// a few recurring obligations and one rule per alert family. Inserts go
// straight through the repositories: seeded history must not trip the fraud
// rules or fire alerts.
func (s *demoDataService) Seed(userID uuid.UUID, transactionCount int) (*SeedSummary, error) {
	if transactionCount <= 0 {
		transactionCount = 50
	}

	account, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	spent := decimal.Zero

	for i := 0; i < transactionCount; i++ {
		amount := decimal.NewFromFloat(s.faker.Price(5, 250)).Round(2)
		tx := &models.Transaction{
			AccountID: account.ID,
			Amount:    amount,
			Category:  seedCategories[s.faker.IntRange(0, len(seedCategories)-1)],
			Timestamp: now.Add(-time.Duration(s.faker.IntRange(1, 170*24)) * time.Hour),
		}

		if err := s.transactionRepo.Create(tx); err != nil {
			return nil, fmt.Errorf("failed to seed transaction: %w", err)
		}
		spent = spent.Add(amount)
	}

	expenses := []models.RecurringExpense{
		{AccountID: account.ID, Name: "Rent", Amount: decimal.NewFromInt(1200), Frequency: models.FrequencyMonthly, StartDate: now.AddDate(0, -6, 0)},
		{AccountID: account.ID, Name: s.faker.Company() + " subscription", Amount: decimal.NewFromFloat(s.faker.Price(5, 30)).Round(2), Frequency: models.FrequencyMonthly, StartDate: now.AddDate(0, -2, 0)},
		{AccountID: account.ID, Name: "Gym membership", Amount: decimal.NewFromInt(45), Frequency: models.FrequencyMonthly, StartDate: now.AddDate(0, 1, 0)},
	}

	for i := range expenses {
		if err := s.expenseRepo.Create(&expenses[i]); err != nil {
			return nil, fmt.Errorf("failed to seed recurring expense: %w", err)
		}
	}

	rules := []models.AlertRule{
		{AccountID: account.ID, Kind: models.AlertKindBalanceDrop, BalanceDropThreshold: decimal.NewFromInt(200)},
		{AccountID: account.ID, Kind: models.AlertKindTargetAmount, TargetAmount: decimal.NewFromInt(10000), AlertThreshold: decimal.NewFromFloat(0.9)},
	}

	for i := range rules {
		if err := s.ruleRepo.Create(&rules[i]); err != nil {
			return nil, fmt.Errorf("failed to seed alert rule: %w", err)
		}
	}

	finalBalance := account.Balance.Sub(spent).Round(2)
	if err := s.accountRepo.UpdateBalance(account.ID, finalBalance); err != nil {
		return nil, fmt.Errorf("failed to update seeded balance: %w", err)
	}

	return &SeedSummary{
		AccountID:         account.ID,
		Transactions:      transactionCount,
		RecurringExpenses: len(expenses),
		AlertRules:        len(rules),
		FinalBalance:      finalBalance,
	}, nil
}
