package services

import (
	"testing"

	"finance-ledger/internal/database"
	"finance-ledger/internal/models"
	"finance-ledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoDataService_Seed(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.CleanupTestDB(t, db)

	user := database.CreateTestUser(t, db, "seed@example.com")
	account := database.CreateTestAccount(t, db, user, decimal.NewFromInt(20000))

	accountRepo := repositories.NewAccountRepository(db.DB)
	transactionRepo := repositories.NewTransactionRepository(db.DB)
	expenseRepo := repositories.NewRecurringExpenseRepository(db.DB)
	ruleRepo := repositories.NewAlertRuleRepository(db.DB)

	service := NewDemoDataService(accountRepo, transactionRepo, expenseRepo, ruleRepo)

	summary, err := service.Seed(user.ID, 25)
	require.NoError(t, err)
	assert.Equal(t, account.ID, summary.AccountID)
	assert.Equal(t, 25, summary.Transactions)
	assert.Equal(t, 3, summary.RecurringExpenses)
	assert.Equal(t, 2, summary.AlertRules)

	transactions, err := transactionRepo.AllByAccount(account.ID)
	require.NoError(t, err)
	assert.Len(t, transactions, 25)
	for _, tx := range transactions {
		assert.True(t, tx.Amount.IsPositive())
		assert.False(t, tx.Fraud, "seeded history must be clean")
		assert.Contains(t, seedCategories, tx.Category)
	}

	expenses, err := expenseRepo.ListByAccount(account.ID)
	require.NoError(t, err)
	assert.Len(t, expenses, 3)

	rules, err := ruleRepo.ListByAccount(account.ID)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	kinds := []string{rules[0].Kind, rules[1].Kind}
	assert.Contains(t, kinds, models.AlertKindBalanceDrop)
	assert.Contains(t, kinds, models.AlertKindTargetAmount)

	// Balance reflects the seeded spend
	updated, err := accountRepo.GetByID(account.ID)
	require.NoError(t, err)
	assert.True(t, updated.Balance.Equal(summary.FinalBalance))
	assert.True(t, updated.Balance.LessThan(decimal.NewFromInt(20000)))
}

func TestDemoDataService_SeedDefaultsTransactionCount(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.CleanupTestDB(t, db)

	user := database.CreateTestUser(t, db, "seed-default@example.com")
	database.CreateTestAccount(t, db, user, decimal.NewFromInt(50000))

	service := NewDemoDataService(
		repositories.NewAccountRepository(db.DB),
		repositories.NewTransactionRepository(db.DB),
		repositories.NewRecurringExpenseRepository(db.DB),
		repositories.NewAlertRuleRepository(db.DB),
	)

	summary, err := service.Seed(user.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, summary.Transactions)
}

func TestDemoDataService_SeedUnknownUser(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.CleanupTestDB(t, db)

	service := NewDemoDataService(
		repositories.NewAccountRepository(db.DB),
		repositories.NewTransactionRepository(db.DB),
		repositories.NewRecurringExpenseRepository(db.DB),
		repositories.NewAlertRuleRepository(db.DB),
	)

	summary, err := service.Seed(uuid.New(), 10)
	assert.ErrorIs(t, err, repositories.ErrAccountNotFound)
	assert.Nil(t, summary)
}
