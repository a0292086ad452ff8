package handlers

import (
	"strconv"
	"time"

	"campus-inventory/internal/core/domain"
	"campus-inventory/internal/core/services"
	"campus-inventory/internal/pkg/pagination"
	"campus-inventory/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles borrow and return endpoints
type LoanHandler struct {
	borrowService   *services.BorrowService
	reminderService *services.ReminderService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(borrowService *services.BorrowService, reminderService *services.ReminderService) *LoanHandler {
	return &LoanHandler{
		borrowService:   borrowService,
		reminderService: reminderService,
	}
}

// BorrowRequest represents borrow request body
type BorrowRequest struct {
	ScanPayload        string `json:"scan_payload"`
	ItemID             uint   `json:"item_id"`
	Quantity           int    `json:"quantity"`
	ExpectedReturnDate string `json:"expected_return_date" example:"2026-03-15"`
	Purpose            string `json:"purpose"`
}

// Borrow opens a loan for the scanned borrower
// @Summary Borrow item
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BorrowRequest true "Borrow request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /loans/borrow [post]
func (h *LoanHandler) Borrow(c *fiber.Ctx) error {
	var req BorrowRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.ScanPayload == "" {
		return response.BadRequest(c, "Scan payload is required")
	}
	dueDate, err := time.Parse("2006-01-02", req.ExpectedReturnDate)
	if err != nil {
		return response.BadRequest(c, "expected_return_date must be YYYY-MM-DD")
	}

	loan, err := h.borrowService.Borrow(c.Context(), &services.BorrowInput{
		ScanPayload:        req.ScanPayload,
		ItemID:             req.ItemID,
		Quantity:           req.Quantity,
		ExpectedReturnDate: dueDate,
		Purpose:            req.Purpose,
	})
	if err != nil {
		return serviceError(c, err, "Failed to borrow item")
	}

	return response.Created(c, "Item borrowed successfully", loan)
}

// Return closes a loan
// @Summary Return item
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans/{id}/return [post]
func (h *LoanHandler) Return(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.borrowService.Return(c.Context(), uint(id))
	if err != nil {
		return serviceError(c, err, "Failed to return item")
	}

	return response.Success(c, "Item returned successfully", loan)
}

// List lists loans
// @Summary List loans
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param status query string false "borrowed, overdue or returned"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	loans, total, err := h.borrowService.List(c.Context(), domain.LoanStatus(c.Query("status")), params)
	if err != nil {
		return serviceError(c, err, "Failed to list loans")
	}

	return response.Paginated(c, "Loans retrieved successfully", loans, params, total)
}

// Get gets a loan by ID
// @Summary Get loan
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.borrowService.Get(c.Context(), uint(id))
	if err != nil {
		return serviceError(c, err, "Failed to get loan")
	}

	return response.Success(c, "Loan retrieved successfully", loan)
}

// Notifications lists the reminder dispatch log of a loan
// @Summary Loan reminder history
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id}/notifications [get]
func (h *LoanHandler) Notifications(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	if _, err := h.borrowService.Get(c.Context(), uint(id)); err != nil {
		return serviceError(c, err, "Failed to get loan")
	}

	history, err := h.reminderService.History(c.Context(), uint(id))
	if err != nil {
		return serviceError(c, err, "Failed to get reminder history")
	}

	return response.Success(c, "Reminder history retrieved successfully", history)
}
