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
	ErrAlertEventNotFound = errors.New("alert event not found")
)

// alertEventRepository implements AlertEventRepositoryInterface
type alertEventRepository struct {
	db *gorm.DB
}

// NewAlertEventRepository creates a new alert event repository
func NewAlertEventRepository(db *gorm.DB) AlertEventRepositoryInterface {
	return &alertEventRepository{db: db}
}

// Create creates a new alert event
func (r *alertEventRepository) Create(event *models.AlertEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("failed to create alert event: %w", err)
	}
	return nil
}

// UpdateDispatchStatus records the outcome of an asynchronous dispatch
func (r *alertEventRepository) UpdateDispatchStatus(id uuid.UUID, status string) error {
	now := time.Now()
	result := r.db.Model(&models.AlertEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"dispatch_status": status,
			"dispatched_at":   now,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update alert event status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAlertEventNotFound
	}
	return nil
}

// ListByAccount retrieves alert events for an account, newest first
func (r *alertEventRepository) ListByAccount(accountID uuid.UUID, offset, limit int) ([]models.AlertEvent, int64, error) {
	var events []models.AlertEvent
	var total int64

	if err := r.db.Model(&models.AlertEvent{}).
		Where("account_id = ?", accountID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count alert events: %w", err)
	}

	if err := r.db.Where("account_id = ?", accountID).
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list alert events: %w", err)
	}

	return events, total, nil
}

// CountSince counts events recorded for an account on or after a time
func (r *alertEventRepository) CountSince(accountID uuid.UUID, since time.Time) (int64, error) {
	var total int64
	if err := r.db.Model(&models.AlertEvent{}).
		Where("account_id = ? AND created_at >= ?", accountID, since).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count alert events: %w", err)
	}
	return total, nil
}
