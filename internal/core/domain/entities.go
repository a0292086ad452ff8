package domain

import "time"

// IdentityKind identifies which collection a resolved identity came from
type IdentityKind string

const (
	IdentityStudent  IdentityKind = "student"
	IdentityEmployee IdentityKind = "employee"
	IdentityUser     IdentityKind = "user"
)

// Valid reports whether k is one of the known borrower kinds
func (k IdentityKind) Valid() bool {
	switch k {
	case IdentityStudent, IdentityEmployee, IdentityUser:
		return true
	}
	return false
}

// Identity is the normalized actor behind a scan. Exactly one kind is set;
// Code carries the student code, employee code or id number respectively.
type Identity struct {
	Kind       IdentityKind `json:"type"`
	InternalID uint         `json:"internal_id"`
	Code       string       `json:"code"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Contact    string       `json:"contact"`
	Status     string       `json:"status"`
}

// IsActive reports whether the identity may borrow. An empty status counts as active.
func (i *Identity) IsActive() bool {
	return i.Status == "" || i.Status == StatusActive
}

// Identity statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// LoanStatus is the lifecycle state of a loan
type LoanStatus string

const (
	LoanBorrowed LoanStatus = "borrowed"
	LoanOverdue  LoanStatus = "overdue"
	LoanReturned LoanStatus = "returned"
)

// IsOpen reports whether the item is still out
func (s LoanStatus) IsOpen() bool {
	return s == LoanBorrowed || s == LoanOverdue
}

// ReminderKind is one of the three borrower reminders
type ReminderKind string

const (
	ReminderOverdue  ReminderKind = "overdue"
	ReminderDueToday ReminderKind = "due_today"
	ReminderDueSoon  ReminderKind = "due_soon"
)

// ReminderKinds lists reminder kinds in dispatch order
var ReminderKinds = []ReminderKind{ReminderOverdue, ReminderDueToday, ReminderDueSoon}

// Notification log statuses
const (
	DispatchSent   = "SENT"
	DispatchFailed = "FAILED"
)

// Date truncates the instant t to midnight of its calendar day in loc
func Date(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DateOnly re-anchors a date-only value (a DATE column) at midnight in loc,
// keeping its year, month and day as stored.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
