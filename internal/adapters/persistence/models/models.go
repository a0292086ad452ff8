package models

import (
	"time"

	"campus-inventory/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ============================================================
// Borrower tables
// ============================================================

// Student represents students table
type Student struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	StudentCode string         `gorm:"column:student_id;uniqueIndex;size:30;not null" json:"student_id"`
	Code        string         `gorm:"index;size:191" json:"code"`
	Name        string         `gorm:"size:150;not null" json:"name"`
	Email       string         `gorm:"size:150" json:"email"`
	Contact     string         `gorm:"size:30" json:"contact"`
	Status      string         `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Student) TableName() string {
	return "students"
}

func (s *Student) ToIdentity() *domain.Identity {
	return &domain.Identity{
		Kind:       domain.IdentityStudent,
		InternalID: s.ID,
		Code:       s.StudentCode,
		Name:       s.Name,
		Email:      s.Email,
		Contact:    s.Contact,
		Status:     s.Status,
	}
}

// Employee represents employees table
type Employee struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	EmployeeCode string         `gorm:"column:employee_id;uniqueIndex;size:30;not null" json:"employee_id"`
	Code         string         `gorm:"index;size:191" json:"code"`
	Name         string         `gorm:"size:150;not null" json:"name"`
	Email        string         `gorm:"size:150" json:"email"`
	Contact      string         `gorm:"size:30" json:"contact"`
	Status       string         `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) ToIdentity() *domain.Identity {
	return &domain.Identity{
		Kind:       domain.IdentityEmployee,
		InternalID: e.ID,
		Code:       e.EmployeeCode,
		Name:       e.Name,
		Email:      e.Email,
		Contact:    e.Contact,
		Status:     e.Status,
	}
}

// User represents users table (visitors and other generic borrowers)
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	IDNumber  string         `gorm:"uniqueIndex;size:30;not null" json:"id_number"`
	Code      string         `gorm:"index;size:191" json:"code"`
	Name      string         `gorm:"size:150;not null" json:"name"`
	Email     string         `gorm:"size:150" json:"email"`
	Contact   string         `gorm:"size:30" json:"contact"`
	Status    string         `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) ToIdentity() *domain.Identity {
	return &domain.Identity{
		Kind:       domain.IdentityUser,
		InternalID: u.ID,
		Code:       u.IDNumber,
		Name:       u.Name,
		Email:      u.Email,
		Contact:    u.Contact,
		Status:     u.Status,
	}
}

// Admin represents admins table
type Admin struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Admin) TableName() string {
	return "admins"
}

// ============================================================
// Inventory
// ============================================================

// Item represents items table
type Item struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"uniqueIndex;size:50;not null" json:"code"`
	Name      string         `gorm:"size:150;not null" json:"name"`
	Category  string         `gorm:"size:50;index" json:"category"`
	Quantity  int            `gorm:"not null;default:0" json:"quantity"`
	Available int            `gorm:"not null;default:0" json:"available"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Item) TableName() string {
	return "items"
}

// Loan represents loans table. The borrower fields are a snapshot taken at
// borrow time so reminders survive later edits to the borrower record.
type Loan struct {
	ID                 uint                `gorm:"primaryKey" json:"id"`
	BorrowerType       domain.IdentityKind `gorm:"size:20;not null;index:idx_loans_borrower" json:"borrower_type"`
	BorrowerID         uint                `gorm:"not null;index:idx_loans_borrower" json:"borrower_id"`
	BorrowerName       string              `gorm:"size:150" json:"borrower_name"`
	BorrowerEmail      string              `gorm:"size:150" json:"borrower_email"`
	BorrowerContact    string              `gorm:"size:30" json:"borrower_contact"`
	ItemID             uint                `gorm:"not null;index" json:"item_id"`
	Quantity           int                 `gorm:"not null;default:1" json:"quantity"`
	BorrowDate         time.Time           `gorm:"type:date;not null" json:"borrow_date"`
	ExpectedReturnDate time.Time           `gorm:"type:date;not null;index" json:"expected_return_date"`
	ReturnedAt         *time.Time          `gorm:"index" json:"returned_at"`
	Status             domain.LoanStatus   `gorm:"size:20;not null;default:'borrowed';index" json:"status"`
	Purpose            string              `gorm:"type:text" json:"purpose"`
	OverdueNotifiedAt  *time.Time          `json:"overdue_notified_at"`
	DueTodayNotifiedAt *time.Time          `json:"due_today_notified_at"`
	DueSoonNotifiedAt  *time.Time          `json:"due_soon_notified_at"`
	CreatedAt          time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relations
	Item *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

// NotifiedAt returns the dispatch timestamp for a reminder kind
func (l *Loan) NotifiedAt(kind domain.ReminderKind) *time.Time {
	switch kind {
	case domain.ReminderOverdue:
		return l.OverdueNotifiedAt
	case domain.ReminderDueToday:
		return l.DueTodayNotifiedAt
	case domain.ReminderDueSoon:
		return l.DueSoonNotifiedAt
	}
	return nil
}

// SetNotifiedAt records a dispatch timestamp for a reminder kind
func (l *Loan) SetNotifiedAt(kind domain.ReminderKind, at time.Time) {
	switch kind {
	case domain.ReminderOverdue:
		l.OverdueNotifiedAt = &at
	case domain.ReminderDueToday:
		l.DueTodayNotifiedAt = &at
	case domain.ReminderDueSoon:
		l.DueSoonNotifiedAt = &at
	}
}

// NotifiedColumn maps a reminder kind to its timestamp column
func NotifiedColumn(kind domain.ReminderKind) (string, bool) {
	switch kind {
	case domain.ReminderOverdue:
		return "overdue_notified_at", true
	case domain.ReminderDueToday:
		return "due_today_notified_at", true
	case domain.ReminderDueSoon:
		return "due_soon_notified_at", true
	}
	return "", false
}

// NotificationLog records every reminder dispatch attempt
type NotificationLog struct {
	ID        uuid.UUID           `gorm:"type:char(36);primaryKey" json:"id"`
	RunID     uuid.UUID           `gorm:"type:char(36);index" json:"run_id"`
	LoanID    uint                `gorm:"not null;index" json:"loan_id"`
	Kind      domain.ReminderKind `gorm:"size:20;not null" json:"kind"`
	Recipient string              `gorm:"size:150" json:"recipient"`
	Status    string              `gorm:"size:10;not null" json:"status"`
	Error     string              `gorm:"type:text" json:"error,omitempty"`
	CreatedAt time.Time           `gorm:"autoCreateTime" json:"created_at"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}

// BeforeCreate assigns a random id when none is set
func (n *NotificationLog) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Student{},
		&Employee{},
		&User{},
		&Admin{},
		&Item{},
		&Loan{},
		&NotificationLog{},
	)
}
