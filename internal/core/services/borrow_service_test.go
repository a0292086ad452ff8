package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"campus-inventory/internal/adapters/persistence/models"
	"campus-inventory/internal/core/domain"
	"campus-inventory/internal/pkg/clock"
	"campus-inventory/internal/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type borrowFixture struct {
	borrowers *borrowerStore
	items     *fakeItems
	loans     *fakeLoans
	service   *BorrowService
}

func newBorrowFixture() *borrowFixture {
	f := &borrowFixture{
		borrowers: seededBorrowers(),
		items: newFakeItems(&models.Item{
			ID: 7, Code: "PRJ-01", Name: "Projector", Quantity: 3, Available: 3,
		}),
		loans: newFakeLoans(),
	}
	f.service = NewBorrowService(f.borrowers.resolver(), f.items, f.loans, clock.NewFixed(policyNow))
	return f
}

func TestBorrowService_Borrow(t *testing.T) {
	f := newBorrowFixture()

	loan, err := f.service.Borrow(context.Background(), &BorrowInput{
		ScanPayload:        `{"type":"student","student_id":"6401234"}`,
		ItemID:             7,
		Quantity:           2,
		ExpectedReturnDate: dueIn(3),
		Purpose:            " seminar ",
	})
	require.NoError(t, err)

	assert.NotZero(t, loan.ID)
	assert.Equal(t, domain.IdentityStudent, loan.BorrowerType)
	assert.Equal(t, uint(1), loan.BorrowerID)
	assert.Equal(t, "somchai@campus.local", loan.BorrowerEmail)
	assert.Equal(t, domain.LoanBorrowed, loan.Status)
	assert.Equal(t, "seminar", loan.Purpose)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, ict), loan.BorrowDate)
	assert.Equal(t, time.Date(2026, 3, 13, 0, 0, 0, 0, ict), loan.ExpectedReturnDate)
	assert.Equal(t, 1, f.items.available(7))
}

func TestBorrowService_BorrowDefaultsQuantity(t *testing.T) {
	f := newBorrowFixture()

	loan, err := f.service.Borrow(context.Background(), &BorrowInput{
		ScanPayload:        "QR-EMP-1",
		ItemID:             7,
		ExpectedReturnDate: dueIn(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, loan.Quantity)
	assert.Equal(t, domain.IdentityEmployee, loan.BorrowerType)
}

func TestBorrowService_BorrowRejects(t *testing.T) {
	tests := []struct {
		name    string
		input   BorrowInput
		wantErr error
	}{
		{"unknown borrower", BorrowInput{ScanPayload: "nobody", ItemID: 7, ExpectedReturnDate: dueIn(1)}, domain.ErrIdentityNotFound},
		{"unknown item", BorrowInput{ScanPayload: "QR-STU-1", ItemID: 99, ExpectedReturnDate: dueIn(1)}, domain.ErrItemNotFound},
		{"not enough stock", BorrowInput{ScanPayload: "QR-STU-1", ItemID: 7, Quantity: 4, ExpectedReturnDate: dueIn(1)}, domain.ErrInsufficientStock},
		{"due in the past", BorrowInput{ScanPayload: "QR-STU-1", ItemID: 7, ExpectedReturnDate: dueIn(-1)}, domain.ErrInvalidInput},
		{"negative quantity", BorrowInput{ScanPayload: "QR-STU-1", ItemID: 7, Quantity: -1, ExpectedReturnDate: dueIn(1)}, domain.ErrInvalidInput},
		{"missing item", BorrowInput{ScanPayload: "QR-STU-1", ExpectedReturnDate: dueIn(1)}, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBorrowFixture()
			input := tt.input

			_, err := f.service.Borrow(context.Background(), &input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 3, f.items.available(7))
		})
	}
}

func TestBorrowService_BorrowRejectsInactiveBorrower(t *testing.T) {
	f := newBorrowFixture()
	f.borrowers.users.rows[0].Status = domain.StatusInactive

	_, err := f.service.Borrow(context.Background(), &BorrowInput{
		ScanPayload:        "QR-USR-1",
		ItemID:             7,
		ExpectedReturnDate: dueIn(1),
	})
	assert.ErrorIs(t, err, domain.ErrIdentityInactive)
}

func TestBorrowService_BorrowReleasesStockWhenCreateFails(t *testing.T) {
	f := newBorrowFixture()
	f.loans.createErr = errors.New("duplicate entry")

	_, err := f.service.Borrow(context.Background(), &BorrowInput{
		ScanPayload:        "QR-STU-1",
		ItemID:             7,
		Quantity:           2,
		ExpectedReturnDate: dueIn(1),
	})
	assert.Error(t, err)
	assert.Equal(t, 3, f.items.available(7))
}

func TestBorrowService_Return(t *testing.T) {
	f := newBorrowFixture()
	ctx := context.Background()

	loan, err := f.service.Borrow(ctx, &BorrowInput{
		ScanPayload:        "QR-STU-1",
		ItemID:             7,
		Quantity:           2,
		ExpectedReturnDate: dueIn(1),
	})
	require.NoError(t, err)
	require.Equal(t, 1, f.items.available(7))

	returned, err := f.service.Return(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanReturned, returned.Status)
	require.NotNil(t, returned.ReturnedAt)
	assert.True(t, returned.ReturnedAt.Equal(policyNow))
	assert.Equal(t, 3, f.items.available(7))

	_, err = f.service.Return(ctx, loan.ID)
	assert.ErrorIs(t, err, domain.ErrLoanAlreadyReturned)
	assert.Equal(t, 3, f.items.available(7))

	_, err = f.service.Return(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestBorrowService_ReturnOverdueLoan(t *testing.T) {
	f := newBorrowFixture()
	loan := newLoan(0, domain.LoanOverdue, -5)
	loan.ItemID = 7
	require.NoError(t, f.loans.Create(context.Background(), loan))

	returned, err := f.service.Return(context.Background(), loan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanReturned, returned.Status)
}

func TestBorrowService_List(t *testing.T) {
	f := newBorrowFixture()
	f.loans = newFakeLoans(
		newLoan(1, domain.LoanBorrowed, 1),
		newLoan(2, domain.LoanOverdue, -1),
		newLoan(3, domain.LoanReturned, -3),
	)
	f.service = NewBorrowService(f.borrowers.resolver(), f.items, f.loans, clock.NewFixed(policyNow))

	loans, total, err := f.service.List(context.Background(), domain.LoanOverdue, pagination.New(1, 10, ""))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []uint{2}, loanIDs(loans))

	_, total, err = f.service.List(context.Background(), "", pagination.New(1, 10, ""))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	_, _, err = f.service.List(context.Background(), "lost", pagination.New(1, 10, ""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
