package repositories

import (
	"context"
	"fmt"
	"time"

	"campus-inventory/internal/adapters/persistence/models"
	"campus-inventory/internal/core/domain"

	"gorm.io/gorm"
)

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// Create creates a new loan
func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// GetByID gets a loan by ID with its item
func (r *loanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).Preload("Item").First(&loan, id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// List lists loans, newest first, optionally filtered by status
func (r *loanRepository) List(ctx context.Context, status domain.LoanStatus, offset, limit int) ([]*models.Loan, int64, error) {
	var loans []*models.Loan
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Loan{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Item").
		Order("borrow_date DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&loans).Error
	if err != nil {
		return nil, 0, err
	}

	return loans, total, nil
}

// ListReminderCandidates returns borrowed/overdue loans due on or before the given date
func (r *loanRepository) ListReminderCandidates(ctx context.Context, dueOnOrBefore time.Time) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Item").
		Where("status IN ?", []domain.LoanStatus{domain.LoanBorrowed, domain.LoanOverdue}).
		Where("expected_return_date <= ?", dueOnOrBefore.Format("2006-01-02")).
		Order("expected_return_date ASC, id ASC").
		Find(&loans).Error
	return loans, err
}

// MarkOverdue moves borrowed loans to overdue; loans in any other state are left alone
func (r *loanRepository) MarkOverdue(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("id IN ? AND status = ?", ids, domain.LoanBorrowed).
		Update("status", domain.LoanOverdue)
	return result.RowsAffected, result.Error
}

// MarkNotified stamps the reminder column for kind
func (r *loanRepository) MarkNotified(ctx context.Context, id uint, kind domain.ReminderKind, at time.Time) error {
	column, ok := models.NotifiedColumn(kind)
	if !ok {
		return fmt.Errorf("unknown reminder kind %q", kind)
	}
	return r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("id = ?", id).
		Update(column, at).Error
}

// MarkReturned closes a borrowed or overdue loan
func (r *loanRepository) MarkReturned(ctx context.Context, id uint, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("id = ? AND status IN ?", id, []domain.LoanStatus{domain.LoanBorrowed, domain.LoanOverdue}).
		Updates(map[string]interface{}{
			"status":      domain.LoanReturned,
			"returned_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// PurgeReturnedBefore soft deletes loans returned before cutoff
func (r *loanRepository) PurgeReturnedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND returned_at < ?", domain.LoanReturned, cutoff).
		Delete(&models.Loan{})
	return result.RowsAffected, result.Error
}
