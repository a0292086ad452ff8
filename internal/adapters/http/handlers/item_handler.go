package handlers

import (
	"strconv"

	"campus-inventory/internal/core/services"
	"campus-inventory/internal/pkg/pagination"
	"campus-inventory/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ItemHandler handles inventory item endpoints
type ItemHandler struct {
	itemService *services.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService *services.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// List lists items
// @Summary List items
// @Tags Items
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param q query string false "Search by code or name"
// @Success 200 {object} response.Response
// @Router /items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	items, total, err := h.itemService.List(c.Context(), params)
	if err != nil {
		return serviceError(c, err, "Failed to list items")
	}

	return response.Paginated(c, "Items retrieved successfully", items, params, total)
}

// Get gets an item by ID
// @Summary Get item
// @Tags Items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /items/{id} [get]
func (h *ItemHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid item ID")
	}

	item, err := h.itemService.Get(c.Context(), uint(id))
	if err != nil {
		return serviceError(c, err, "Failed to get item")
	}

	return response.Success(c, "Item retrieved successfully", item)
}

// Create adds an item
// @Summary Create item
// @Tags Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateItemInput true "Item"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var input services.CreateItemInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	item, err := h.itemService.Create(c.Context(), &input)
	if err != nil {
		return serviceError(c, err, "Failed to create item")
	}

	return response.Created(c, "Item created successfully", item)
}
