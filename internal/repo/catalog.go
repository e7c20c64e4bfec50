package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/models"
)

func (r *GormRepo) CreateShop(ctx context.Context, shop *models.Shop) error {
	return errors.Wrap(r.DB.WithContext(ctx).Create(shop).Error, "create shop")
}

func (r *GormRepo) CreateItem(ctx context.Context, item *models.Item) error {
	return errors.Wrap(r.DB.WithContext(ctx).Create(item).Error, "create item")
}

func (r *GormRepo) GetShop(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&shop).Error; err != nil {
		return nil, errors.Wrapf(err, "get shop %s", id)
	}
	return &shop, nil
}

func (r *GormRepo) FindShopByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := r.DB.WithContext(ctx).Where("owner_id = ?", ownerID).First(&shop).Error; err != nil {
		return nil, errors.Wrapf(err, "find shop of owner %s", ownerID)
	}
	return &shop, nil
}

func (r *GormRepo) ListShopItems(ctx context.Context, shopID uuid.UUID) ([]models.Item, error) {
	var items []models.Item
	if err := r.DB.WithContext(ctx).Where("shop_id = ?", shopID).Order("name ASC").Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "list shop items")
	}
	return items, nil
}

func (r *GormRepo) DeleteShopItems(ctx context.Context, shopID uuid.UUID) (int64, error) {
	res := r.DB.WithContext(ctx).Where("shop_id = ?", shopID).Delete(&models.Item{})
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "delete shop items")
	}
	return res.RowsAffected, nil
}

func (r *GormRepo) DeleteShopByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	res := r.DB.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&models.Shop{})
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "delete shop")
	}
	return res.RowsAffected, nil
}

// SearchItems is a plain substring match on name and description, used when
// no search index is configured.
func (r *GormRepo) SearchItems(ctx context.Context, q string, offset, limit int) (int64, []models.Item, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	matching := func() *gorm.DB {
		return r.DB.WithContext(ctx).Model(&models.Item{}).
			Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := matching().Count(&total).Error; err != nil {
		return 0, nil, errors.Wrap(err, "count items")
	}

	items := make([]models.Item, 0, limit)
	if total > 0 {
		if err := matching().Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
			return 0, nil, errors.Wrap(err, "search items")
		}
	}
	return total, items, nil
}
