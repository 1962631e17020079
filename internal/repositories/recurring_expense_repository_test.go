package repositories

import (
	"testing"
	"time"

	"finance-ledger/internal/database"
	"finance-ledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RecurringExpenseRepositorySuite struct {
	suite.Suite
	db      *database.DB
	repo    RecurringExpenseRepositoryInterface
	account *models.Account
}

func (s *RecurringExpenseRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewRecurringExpenseRepository(s.db.DB)

	user := database.CreateTestUser(s.T(), s.db, "expenses@example.com")
	s.account = database.CreateTestAccount(s.T(), s.db, user, decimal.NewFromInt(1000))
}

func (s *RecurringExpenseRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestRecurringExpenseRepositorySuite(t *testing.T) {
	suite.Run(t, new(RecurringExpenseRepositorySuite))
}

func (s *RecurringExpenseRepositorySuite) createExpense(name string, amount int64) *models.RecurringExpense {
	expense := &models.RecurringExpense{
		AccountID: s.account.ID,
		Name:      name,
		Amount:    decimal.NewFromInt(amount),
		StartDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.repo.Create(expense))
	return expense
}

func (s *RecurringExpenseRepositorySuite) TestCreate_DefaultsFrequency() {
	expense := s.createExpense("Rent", 1200)
	s.Equal(models.FrequencyMonthly, expense.Frequency)
}

func (s *RecurringExpenseRepositorySuite) TestCreate_RejectsNonPositiveAmount() {
	err := s.repo.Create(&models.RecurringExpense{
		AccountID: s.account.ID,
		Name:      "Rent",
		Amount:    decimal.Zero,
		StartDate: time.Now(),
	})
	s.Error(err)
}

func (s *RecurringExpenseRepositorySuite) TestGetByID_ScopedToAccount() {
	expense := s.createExpense("Rent", 1200)

	loaded, err := s.repo.GetByID(expense.ID, s.account.ID)
	s.NoError(err)
	s.Equal("Rent", loaded.Name)

	_, err = s.repo.GetByID(expense.ID, uuid.New())
	s.ErrorIs(err, ErrRecurringExpenseNotFound)
}

func (s *RecurringExpenseRepositorySuite) TestListByAccount() {
	s.createExpense("Rent", 1200)
	s.createExpense("Gym", 45)

	expenses, err := s.repo.ListByAccount(s.account.ID)
	s.NoError(err)
	s.Len(expenses, 2)

	none, err := s.repo.ListByAccount(uuid.New())
	s.NoError(err)
	s.Empty(none)
}

func (s *RecurringExpenseRepositorySuite) TestUpdate() {
	expense := s.createExpense("Rent", 1200)

	expense.Amount = decimal.NewFromInt(1350)
	expense.Name = "Rent (renewed lease)"
	s.NoError(s.repo.Update(expense))

	updated, err := s.repo.GetByID(expense.ID, s.account.ID)
	s.NoError(err)
	s.True(updated.Amount.Equal(decimal.NewFromInt(1350)))
	s.Equal("Rent (renewed lease)", updated.Name)
}

func (s *RecurringExpenseRepositorySuite) TestDelete_ScopedToAccount() {
	expense := s.createExpense("Rent", 1200)

	s.ErrorIs(s.repo.Delete(expense.ID, uuid.New()), ErrRecurringExpenseNotFound)
	s.NoError(s.repo.Delete(expense.ID, s.account.ID))

	_, err := s.repo.GetByID(expense.ID, s.account.ID)
	s.ErrorIs(err, ErrRecurringExpenseNotFound)
}
