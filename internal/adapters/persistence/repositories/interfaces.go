package repositories

import (
	"context"
	"time"

	"campus-inventory/internal/adapters/persistence/models"
	"campus-inventory/internal/core/domain"
)

// StudentRepository defines student lookups used by identity resolution
type StudentRepository interface {
	GetByStudentCode(ctx context.Context, studentCode string) (*models.Student, error)
	GetByCode(ctx context.Context, code string) (*models.Student, error)
}

// EmployeeRepository defines employee lookups used by identity resolution
type EmployeeRepository interface {
	GetByEmployeeCode(ctx context.Context, employeeCode string) (*models.Employee, error)
	GetByCode(ctx context.Context, code string) (*models.Employee, error)
}

// UserRepository defines generic user lookups used by identity resolution
type UserRepository interface {
	GetByIDNumber(ctx context.Context, idNumber string) (*models.User, error)
	GetByCode(ctx context.Context, code string) (*models.User, error)
}

// AdminRepository defines admin account access
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	Count(ctx context.Context) (int64, error)
}

// ItemRepository defines inventory item access
type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id uint) (*models.Item, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	List(ctx context.Context, search string, offset, limit int) ([]*models.Item, int64, error)
	// Reserve takes qty units out of stock; false when not enough are available
	Reserve(ctx context.Context, id uint, qty int) (bool, error)
	Release(ctx context.Context, id uint, qty int) error
}

// LoanRepository defines loan access for borrowing and reminders
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	List(ctx context.Context, status domain.LoanStatus, offset, limit int) ([]*models.Loan, int64, error)
	// ListReminderCandidates returns open loans due on or before the given date
	ListReminderCandidates(ctx context.Context, dueOnOrBefore time.Time) ([]*models.Loan, error)
	MarkOverdue(ctx context.Context, ids []uint) (int64, error)
	MarkNotified(ctx context.Context, id uint, kind domain.ReminderKind, at time.Time) error
	// MarkReturned closes an open loan; false when the loan was already returned
	MarkReturned(ctx context.Context, id uint, at time.Time) (bool, error)
	PurgeReturnedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// NotificationLogRepository records reminder dispatch attempts
type NotificationLogRepository interface {
	Create(ctx context.Context, entry *models.NotificationLog) error
	ListByLoan(ctx context.Context, loanID uint) ([]*models.NotificationLog, error)
}
