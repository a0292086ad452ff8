package handlers

import (
	"campus-inventory/internal/core/services"
	"campus-inventory/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ScanHandler resolves QR scans to borrowers
type ScanHandler struct {
	resolver *services.IdentityResolver
}

// NewScanHandler creates a new scan handler
func NewScanHandler(resolver *services.IdentityResolver) *ScanHandler {
	return &ScanHandler{resolver: resolver}
}

// ScanRequest carries the decoded QR text
type ScanRequest struct {
	Payload string `json:"payload"`
}

// Resolve identifies the borrower behind a scan
// @Summary Resolve scan payload
// @Description Match a decoded QR payload against students, employees and users
// @Tags Scan
// @Accept json
// @Produce json
// @Param body body ScanRequest true "Decoded QR text"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /scan/resolve [post]
func (h *ScanHandler) Resolve(c *fiber.Ctx) error {
	var req ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	identity, err := h.resolver.Resolve(c.Context(), req.Payload)
	if err != nil {
		return serviceError(c, err, "Failed to resolve scan")
	}

	return response.Success(c, "Identity resolved", identity)
}
