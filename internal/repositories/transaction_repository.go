package repositories

import (
	"errors"
	"fmt"
	"time"

	"finance-ledger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{db: db}
}

// Create creates a new transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by ID
func (r *transactionRepository) GetByID(id uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.First(&transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// AllByAccount retrieves the full transaction history for an account in
// chronological order.
func (r *transactionRepository) AllByAccount(accountID uuid.UUID) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("account_id = ?", accountID).
		Order("timestamp ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

// ByCategory retrieves same-category transactions with timestamp in
// [since, until), chronological.
func (r *transactionRepository) ByCategory(accountID uuid.UUID, category string, since, until time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("account_id = ? AND category = ? AND timestamp >= ? AND timestamp < ?",
		accountID, category, since, until).
		Order("timestamp ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions by category: %w", err)
	}
	return transactions, nil
}

// ByTimeRange retrieves transactions with timestamp in [since, until),
// chronological.
func (r *transactionRepository) ByTimeRange(accountID uuid.UUID, since, until time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("account_id = ? AND timestamp >= ? AND timestamp < ?",
		accountID, since, until).
		Order("timestamp ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions by time range: %w", err)
	}
	return transactions, nil
}

// GetWithFilters retrieves transactions with multiple filters, newest first
func (r *transactionRepository) GetWithFilters(filters models.TransactionFilters) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	query := r.db.Model(&models.Transaction{})

	if filters.AccountID != uuid.Nil {
		query = query.Where("account_id = ?", filters.AccountID)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Since != nil {
		query = query.Where("timestamp >= ?", *filters.Since)
	}
	if filters.Until != nil {
		query = query.Where("timestamp < ?", *filters.Until)
	}
	if filters.FraudOnly {
		query = query.Where("fraud = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count filtered transactions: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Offset(filters.Offset).Limit(filters.Limit)
	}

	if err := query.Order("timestamp DESC").Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get filtered transactions: %w", err)
	}

	return transactions, total, nil
}

// MarkFraud sets the fraud flag on a transaction. The flag is monotonic, so
// this is the only fraud mutation the repository exposes.
func (r *transactionRepository) MarkFraud(id uuid.UUID) error {
	result := r.db.Model(&models.Transaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"fraud":      true,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark transaction as fraud: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
