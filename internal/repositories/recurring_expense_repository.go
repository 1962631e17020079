package repositories

import (
	"errors"
	"fmt"

	"finance-ledger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRecurringExpenseNotFound = errors.New("recurring expense not found")
)

// recurringExpenseRepository implements RecurringExpenseRepositoryInterface
type recurringExpenseRepository struct {
	db *gorm.DB
}

// NewRecurringExpenseRepository creates a new recurring expense repository
func NewRecurringExpenseRepository(db *gorm.DB) RecurringExpenseRepositoryInterface {
	return &recurringExpenseRepository{db: db}
}

// Create creates a new recurring expense
func (r *recurringExpenseRepository) Create(expense *models.RecurringExpense) error {
	if err := r.db.Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create recurring expense: %w", err)
	}
	return nil
}

// GetByID retrieves a recurring expense scoped to an account
func (r *recurringExpenseRepository) GetByID(id, accountID uuid.UUID) (*models.RecurringExpense, error) {
	var expense models.RecurringExpense
	if err := r.db.Where("id = ? AND account_id = ?", id, accountID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecurringExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get recurring expense: %w", err)
	}
	return &expense, nil
}

// ListByAccount retrieves all recurring expenses for an account in stored order
func (r *recurringExpenseRepository) ListByAccount(accountID uuid.UUID) ([]models.RecurringExpense, error) {
	var expenses []models.RecurringExpense
	if err := r.db.Where("account_id = ?", accountID).
		Order("created_at ASC").
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to list recurring expenses: %w", err)
	}
	return expenses, nil
}

// Update persists changes to a recurring expense
func (r *recurringExpenseRepository) Update(expense *models.RecurringExpense) error {
	result := r.db.Model(&models.RecurringExpense{}).
		Where("id = ? AND account_id = ?", expense.ID, expense.AccountID).
		Updates(map[string]interface{}{
			"name":       expense.Name,
			"amount":     expense.Amount,
			"frequency":  expense.Frequency,
			"start_date": expense.StartDate,
			"updated_at": expense.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update recurring expense: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecurringExpenseNotFound
	}
	return nil
}

// Delete removes a recurring expense scoped to an account
func (r *recurringExpenseRepository) Delete(id, accountID uuid.UUID) error {
	result := r.db.Where("id = ? AND account_id = ?", id, accountID).
		Delete(&models.RecurringExpense{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete recurring expense: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecurringExpenseNotFound
	}
	return nil
}
