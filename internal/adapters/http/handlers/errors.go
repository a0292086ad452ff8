package handlers

import (
	"errors"
	"log"

	"campus-inventory/internal/core/domain"
	"campus-inventory/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// serviceError maps domain errors onto HTTP responses. Anything unknown is
// logged and reported as fallback with a 500.
func serviceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrIdentityNotFound):
		return response.NotFound(c, "Identity not recognized")
	case errors.Is(err, domain.ErrIdentityInactive):
		return response.Unprocessable(c, "Borrower account is not active")
	case errors.Is(err, domain.ErrItemNotFound):
		return response.NotFound(c, "Item not found")
	case errors.Is(err, domain.ErrLoanNotFound):
		return response.NotFound(c, "Loan not found")
	case errors.Is(err, domain.ErrItemAlreadyExists):
		return response.Conflict(c, "Item code already exists")
	case errors.Is(err, domain.ErrLoanAlreadyReturned):
		return response.Conflict(c, "Loan already returned")
	case errors.Is(err, domain.ErrInsufficientStock):
		return response.Unprocessable(c, "Not enough units available")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, "Invalid username or password")
	case errors.Is(err, domain.ErrStoreUnavailable):
		log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
		return response.ServiceUnavailable(c, "Record store unavailable, try again later")
	}

	log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
	return response.InternalServerError(c, fallback)
}
