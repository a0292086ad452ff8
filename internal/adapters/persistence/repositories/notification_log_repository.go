package repositories

import (
	"context"

	"campus-inventory/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// notificationLogRepository implements NotificationLogRepository interface
type notificationLogRepository struct {
	db *gorm.DB
}

// NewNotificationLogRepository creates a new notification log repository
func NewNotificationLogRepository(db *gorm.DB) NotificationLogRepository {
	return &notificationLogRepository{db: db}
}

// Create appends a dispatch record
func (r *notificationLogRepository) Create(ctx context.Context, entry *models.NotificationLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListByLoan returns the dispatch history of a loan, newest first
func (r *notificationLogRepository) ListByLoan(ctx context.Context, loanID uint) ([]*models.NotificationLog, error) {
	var entries []*models.NotificationLog
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
