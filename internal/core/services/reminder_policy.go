package services

import (
	"strings"
	"time"

	"campus-inventory/internal/adapters/persistence/models"
	"campus-inventory/internal/core/domain"
)

// DueNotifications is the set of loans that need a reminder on one run.
// A loan appears in at most one of Overdue, DueToday and DueSoon.
type DueNotifications struct {
	Overdue  []*models.Loan
	DueToday []*models.Loan
	DueSoon  []*models.Loan

	// NewlyOverdue holds loans whose status was moved from borrowed to
	// overdue during evaluation; the caller persists the transition.
	NewlyOverdue []*models.Loan
}

// For returns the loans selected for kind
func (d DueNotifications) For(kind domain.ReminderKind) []*models.Loan {
	switch kind {
	case domain.ReminderOverdue:
		return d.Overdue
	case domain.ReminderDueToday:
		return d.DueToday
	case domain.ReminderDueSoon:
		return d.DueSoon
	}
	return nil
}

// Total is the number of reminders to send
func (d DueNotifications) Total() int {
	return len(d.Overdue) + len(d.DueToday) + len(d.DueSoon)
}

// ReminderPolicy decides which loans get which reminder.
//
// Overdue and due-today reminders are sent at most once per calendar day;
// due-soon is sent once for the lifetime of the loan.
type ReminderPolicy struct{}

// NewReminderPolicy creates a new reminder policy
func NewReminderPolicy() *ReminderPolicy {
	return &ReminderPolicy{}
}

// Compute selects reminders for loans as of now. Calendar days are taken in
// now's location. Borrowed loans past their due date are switched to overdue
// in place before selection.
func (p *ReminderPolicy) Compute(now time.Time, loans []*models.Loan) DueNotifications {
	loc := now.Location()
	today := domain.Date(now, loc)
	tomorrow := today.AddDate(0, 0, 1)

	var due DueNotifications
	for _, loan := range loans {
		if loan == nil {
			continue
		}

		dueDate := domain.DateOnly(loan.ExpectedReturnDate, loc)

		if loan.Status == domain.LoanBorrowed && dueDate.Before(today) {
			loan.Status = domain.LoanOverdue
			due.NewlyOverdue = append(due.NewlyOverdue, loan)
		}

		if strings.TrimSpace(loan.BorrowerEmail) == "" {
			continue
		}

		switch {
		case dueDate.Before(today):
			if loan.Status.IsOpen() && !notifiedOnOrAfter(loan.OverdueNotifiedAt, today) {
				due.Overdue = append(due.Overdue, loan)
			}
		case dueDate.Equal(today):
			if loan.Status == domain.LoanBorrowed && !notifiedOnOrAfter(loan.DueTodayNotifiedAt, today) {
				due.DueToday = append(due.DueToday, loan)
			}
		case dueDate.Equal(tomorrow):
			if loan.Status == domain.LoanBorrowed && loan.DueSoonNotifiedAt == nil {
				due.DueSoon = append(due.DueSoon, loan)
			}
		}
	}

	return due
}

// notifiedOnOrAfter reports whether at falls on day or a later calendar day
func notifiedOnOrAfter(at *time.Time, day time.Time) bool {
	if at == nil {
		return false
	}
	return !domain.Date(*at, day.Location()).Before(day)
}
