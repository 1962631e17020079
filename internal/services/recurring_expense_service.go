package services

import (
	"fmt"
	"time"

	"finance-ledger/internal/models"
	"finance-ledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type recurringExpenseService struct {
	accountRepo       repositories.AccountRepositoryInterface
	expenseRepo       repositories.RecurringExpenseRepositoryInterface
	projectionService ProjectionServiceInterface
}

func NewRecurringExpenseService(
	accountRepo repositories.AccountRepositoryInterface,
	expenseRepo repositories.RecurringExpenseRepositoryInterface,
	projectionService ProjectionServiceInterface,
) RecurringExpenseServiceInterface {
	return &recurringExpenseService{
		accountRepo:       accountRepo,
		expenseRepo:       expenseRepo,
		projectionService: projectionService,
	}
}

func (s *recurringExpenseService) CreateExpense(userID uuid.UUID, name string, amount decimal.Decimal, frequency string, startDate time.Time) (*models.RecurringExpense, error) {
	account, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	expense := &models.RecurringExpense{
		AccountID: account.ID,
		Name:      name,
		Amount:    amount,
		Frequency: frequency,
		StartDate: startDate,
	}

	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, fmt.Errorf("failed to create recurring expense: %w", err)
	}

	return expense, nil
}

func (s *recurringExpenseService) ListExpenses(userID uuid.UUID) ([]models.RecurringExpense, error) {
	account, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	return s.expenseRepo.ListByAccount(account.ID)
}

func (s *recurringExpenseService) UpdateExpense(id, userID uuid.UUID, name string, amount decimal.Decimal, frequency string, startDate time.Time) (*models.RecurringExpense, error) {
	account, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	expense, err := s.expenseRepo.GetByID(id, account.ID)
	if err != nil {
		return nil, err
	}

	expense.Name = name
	expense.Amount = amount
	expense.Frequency = frequency
	expense.StartDate = startDate

	if err := s.expenseRepo.Update(expense); err != nil {
		return nil, fmt.Errorf("failed to update recurring expense: %w", err)
	}

	return expense, nil
}

func (s *recurringExpenseService) DeleteExpense(id, userID uuid.UUID) error {
	account, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return err
	}

	return s.expenseRepo.Delete(id, account.ID)
}

func (s *recurringExpenseService) ProjectBalance(userID uuid.UUID) ([]models.MonthlyStatement, error) {
	account, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	return s.projectionService.Project(account.ID, time.Now())
}
