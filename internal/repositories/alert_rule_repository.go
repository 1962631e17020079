package repositories

import (
	"errors"
	"fmt"

	"finance-ledger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAlertRuleNotFound = errors.New("alert rule not found")
)

// alertRuleRepository implements AlertRuleRepositoryInterface
type alertRuleRepository struct {
	db *gorm.DB
}

// NewAlertRuleRepository creates a new alert rule repository
func NewAlertRuleRepository(db *gorm.DB) AlertRuleRepositoryInterface {
	return &alertRuleRepository{db: db}
}

// Create creates a new alert rule
func (r *alertRuleRepository) Create(rule *models.AlertRule) error {
	if err := r.db.Create(rule).Error; err != nil {
		return fmt.Errorf("failed to create alert rule: %w", err)
	}
	return nil
}

// GetByID retrieves an alert rule scoped to an account
func (r *alertRuleRepository) GetByID(id, accountID uuid.UUID) (*models.AlertRule, error) {
	var rule models.AlertRule
	if err := r.db.Where("id = ? AND account_id = ?", id, accountID).First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertRuleNotFound
		}
		return nil, fmt.Errorf("failed to get alert rule: %w", err)
	}
	return &rule, nil
}

// ListByAccount retrieves all alert rules for an account in stored order
func (r *alertRuleRepository) ListByAccount(accountID uuid.UUID) ([]models.AlertRule, error) {
	var rules []models.AlertRule
	if err := r.db.Where("account_id = ?", accountID).
		Order("created_at ASC, id ASC").
		Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to list alert rules: %w", err)
	}
	return rules, nil
}

// ListByAccountAndKind retrieves one alert family in stored order. The alert
// engine depends on this ordering: the first matching rule wins.
func (r *alertRuleRepository) ListByAccountAndKind(accountID uuid.UUID, kind string) ([]models.AlertRule, error) {
	var rules []models.AlertRule
	if err := r.db.Where("account_id = ? AND kind = ?", accountID, kind).
		Order("created_at ASC, id ASC").
		Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to list alert rules by kind: %w", err)
	}
	return rules, nil
}

// Delete removes an alert rule scoped to an account
func (r *alertRuleRepository) Delete(id, accountID uuid.UUID) error {
	result := r.db.Where("id = ? AND account_id = ?", id, accountID).
		Delete(&models.AlertRule{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete alert rule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAlertRuleNotFound
	}
	return nil
}
