package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"campus-inventory/internal/adapters/persistence/models"
	"campus-inventory/internal/adapters/persistence/repositories"
	"campus-inventory/internal/core/domain"
	"campus-inventory/internal/pkg/clock"
	"campus-inventory/internal/pkg/pagination"

	"gorm.io/gorm"
)

// BorrowService handles the borrow and return flow
type BorrowService struct {
	resolver *IdentityResolver
	itemRepo repositories.ItemRepository
	loanRepo repositories.LoanRepository
	clock    clock.Clock
}

// NewBorrowService creates a new borrow service
func NewBorrowService(
	resolver *IdentityResolver,
	itemRepo repositories.ItemRepository,
	loanRepo repositories.LoanRepository,
	clk clock.Clock,
) *BorrowService {
	return &BorrowService{
		resolver: resolver,
		itemRepo: itemRepo,
		loanRepo: loanRepo,
		clock:    clk,
	}
}

// BorrowInput represents a borrow request
type BorrowInput struct {
	ScanPayload        string
	ItemID             uint
	Quantity           int
	ExpectedReturnDate time.Time
	Purpose            string
}

// Borrow resolves the scanned borrower, reserves stock and opens a loan
func (s *BorrowService) Borrow(ctx context.Context, input *BorrowInput) (*models.Loan, error) {
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 0 || input.ItemID == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := s.clock.Now()
	loc := now.Location()
	today := domain.Date(now, loc)
	dueDate := domain.DateOnly(input.ExpectedReturnDate, loc)
	if dueDate.Before(today) {
		return nil, fmt.Errorf("%w: expected return date is in the past", domain.ErrInvalidInput)
	}

	identity, err := s.resolver.Resolve(ctx, input.ScanPayload)
	if err != nil {
		return nil, err
	}
	if !identity.IsActive() {
		return nil, domain.ErrIdentityInactive
	}

	item, err := s.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}

	reserved, err := s.itemRepo.Reserve(ctx, item.ID, input.Quantity)
	if err != nil {
		return nil, err
	}
	if !reserved {
		return nil, domain.ErrInsufficientStock
	}

	loan := &models.Loan{
		BorrowerType:       identity.Kind,
		BorrowerID:         identity.InternalID,
		BorrowerName:       identity.Name,
		BorrowerEmail:      identity.Email,
		BorrowerContact:    identity.Contact,
		ItemID:             item.ID,
		Quantity:           input.Quantity,
		BorrowDate:         today,
		ExpectedReturnDate: dueDate,
		Status:             domain.LoanBorrowed,
		Purpose:            strings.TrimSpace(input.Purpose),
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		if relErr := s.itemRepo.Release(ctx, item.ID, input.Quantity); relErr != nil {
			log.Printf("❌ Failed to release %d x item #%d after loan create error: %v", input.Quantity, item.ID, relErr)
		}
		return nil, err
	}
	loan.Item = item

	log.Printf("📦 Loan #%d: %s %s borrowed %d x %s (due %s)",
		loan.ID, identity.Kind, identity.Code, loan.Quantity, item.Code, dueDate.Format("2006-01-02"))

	return loan, nil
}

// Return closes an open loan and puts the stock back
func (s *BorrowService) Return(ctx context.Context, id uint) (*models.Loan, error) {
	loan, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if loan.Status == domain.LoanReturned {
		return nil, domain.ErrLoanAlreadyReturned
	}

	now := s.clock.Now()
	closed, err := s.loanRepo.MarkReturned(ctx, id, now)
	if err != nil {
		return nil, err
	}
	if !closed {
		return nil, domain.ErrLoanAlreadyReturned
	}

	if err := s.itemRepo.Release(ctx, loan.ItemID, loan.Quantity); err != nil {
		log.Printf("❌ Loan #%d returned but stock for item #%d not released: %v", id, loan.ItemID, err)
	}

	loan.Status = domain.LoanReturned
	loan.ReturnedAt = &now

	log.Printf("✅ Loan #%d returned", id)
	return loan, nil
}

// Get gets a loan by ID
func (s *BorrowService) Get(ctx context.Context, id uint) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

// List lists loans, optionally filtered by status
func (s *BorrowService) List(ctx context.Context, status domain.LoanStatus, params *pagination.Params) ([]*models.Loan, int64, error) {
	switch status {
	case "", domain.LoanBorrowed, domain.LoanOverdue, domain.LoanReturned:
	default:
		return nil, 0, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	return s.loanRepo.List(ctx, status, params.Offset, params.Limit)
}
