package services

import (
	"context"
	"time"

	"campus-inventory/internal/adapters/persistence/models"
	"campus-inventory/internal/core/domain"
)

// Mailer sends a templated reminder to one recipient
type Mailer interface {
	Send(ctx context.Context, to string, kind domain.ReminderKind, data ReminderData) error
}

// ReminderData is the template input for borrower reminders
type ReminderData struct {
	AppName            string
	LoanID             uint
	BorrowerName       string
	ItemName           string
	ItemCode           string
	Quantity           int
	Purpose            string
	BorrowDate         time.Time
	ExpectedReturnDate time.Time
	DaysOverdue        int
}

// newReminderData snapshots the template fields of a loan as of now
func newReminderData(loan *models.Loan, now time.Time) ReminderData {
	data := ReminderData{
		LoanID:             loan.ID,
		BorrowerName:       loan.BorrowerName,
		Quantity:           loan.Quantity,
		Purpose:            loan.Purpose,
		BorrowDate:         loan.BorrowDate,
		ExpectedReturnDate: loan.ExpectedReturnDate,
	}
	if loan.Item != nil {
		data.ItemName = loan.Item.Name
		data.ItemCode = loan.Item.Code
	}

	loc := now.Location()
	today := domain.Date(now, loc)
	due := domain.DateOnly(loan.ExpectedReturnDate, loc)
	if due.Before(today) {
		data.DaysOverdue = int(today.Sub(due).Hours() / 24)
	}

	return data
}
