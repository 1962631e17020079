package services

import (
	"fmt"
	"time"

	"finance-ledger/internal/models"
	"finance-ledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectionHorizonMonths is the fixed number of forward months projected
const ProjectionHorizonMonths = 12

type projectionService struct {
	accountRepo repositories.AccountRepositoryInterface
	expenseRepo repositories.RecurringExpenseRepositoryInterface
	metrics     *PrometheusMetrics
}

func NewProjectionService(
	accountRepo repositories.AccountRepositoryInterface,
	expenseRepo repositories.RecurringExpenseRepositoryInterface,
	metrics *PrometheusMetrics,
) ProjectionServiceInterface {
	return &projectionService{
		accountRepo: accountRepo,
		expenseRepo: expenseRepo,
		metrics:     metrics,
	}
}

// Project forecasts the account balance over the twelve calendar months
// strictly after now's month. Read-only: calling it twice against unchanged
// account state returns identical output.
func (s *projectionService) Project(accountID uuid.UUID, now time.Time) ([]models.MonthlyStatement, error) {
	start := time.Now()

	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	expenses, err := s.expenseRepo.ListByAccount(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring expenses: %w", err)
	}

	statements := ProjectBalance(account.Balance, expenses, now)

	if s.metrics != nil {
		s.metrics.ObserveProjectionDuration(time.Since(start))
	}

	return statements, nil
}

// ProjectBalance computes the monthly statement table from an immutable
// snapshot of the account state. A recurring expense contributes to every
// projected month on or after its due month; once due it recurs forever.
// The running balance is rounded to 2 decimal places at each step and
// carries across months.
func ProjectBalance(balance decimal.Decimal, expenses []models.RecurringExpense, now time.Time) []models.MonthlyStatement {
	now = now.UTC()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	statements := make([]models.MonthlyStatement, 0, ProjectionHorizonMonths)
	running := balance

	for i := 1; i <= ProjectionHorizonMonths; i++ {
		month := currentMonth.AddDate(0, i, 0)

		total := decimal.Zero
		for _, expense := range expenses {
			if expense.DueBy(month.Year(), month.Month()) {
				total = total.Add(expense.Amount)
			}
		}

		running = running.Sub(total).Round(2)

		statements = append(statements, models.MonthlyStatement{
			Month:                 month.Format("2006-01"),
			RecurringExpenseTotal: total,
			ExpectedBalance:       running,
		})
	}

	return statements
}
