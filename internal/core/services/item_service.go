package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"campus-inventory/internal/adapters/persistence/models"
	"campus-inventory/internal/adapters/persistence/repositories"
	"campus-inventory/internal/core/domain"
	"campus-inventory/internal/pkg/pagination"

	"gorm.io/gorm"
)

// ItemService handles inventory items
type ItemService struct {
	itemRepo repositories.ItemRepository
}

// NewItemService creates a new item service
func NewItemService(itemRepo repositories.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// CreateItemInput represents create item input
type CreateItemInput struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

// Create adds a new item with all units available
func (s *ItemService) Create(ctx context.Context, input *CreateItemInput) (*models.Item, error) {
	code := strings.TrimSpace(input.Code)
	name := strings.TrimSpace(input.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: code and name are required", domain.ErrInvalidInput)
	}
	if input.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", domain.ErrInvalidInput)
	}

	exists, err := s.itemRepo.ExistsByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrItemAlreadyExists
	}

	item := &models.Item{
		Code:      code,
		Name:      name,
		Category:  strings.TrimSpace(input.Category),
		Quantity:  input.Quantity,
		Available: input.Quantity,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get gets an item by ID
func (s *ItemService) Get(ctx context.Context, id uint) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// List lists items matching params.Search
func (s *ItemService) List(ctx context.Context, params *pagination.Params) ([]*models.Item, int64, error) {
	return s.itemRepo.List(ctx, params.Search, params.Offset, params.Limit)
}
