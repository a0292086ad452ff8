package repositories

import (
	"context"

	"campus-inventory/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// itemRepository implements ItemRepository interface
type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

// Create creates a new item
func (r *itemRepository) Create(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetByID gets an item by ID
func (r *itemRepository) GetByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ExistsByCode checks if an item code is taken
func (r *itemRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Item{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// List lists items with optional search on code/name/category
func (r *itemRepository) List(ctx context.Context, search string, offset, limit int) ([]*models.Item, int64, error) {
	var items []*models.Item
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Item{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("code LIKE ? OR name LIKE ? OR category LIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Reserve decrements available stock in a single conditional update
func (r *itemRepository) Reserve(ctx context.Context, id uint, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ? AND available >= ?", id, qty).
		Update("available", gorm.Expr("available - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Release puts qty units back, never above the item's total quantity
func (r *itemRepository) Release(ctx context.Context, id uint, qty int) error {
	return r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", id).
		Update("available", gorm.Expr("LEAST(available + ?, quantity)", qty)).Error
}
