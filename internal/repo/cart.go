package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/marketplace/internal/models"
)

func orderedLines(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *GormRepo) FindOpenCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).
		Preload("Items", orderedLines).
		Where("user_id = ? AND checked_out = ?", userID, false).
		First(&cart).Error
	if err != nil {
		return nil, errors.Wrapf(err, "find open cart of %s", userID)
	}
	return &cart, nil
}

// SaveCart writes the cart as one document: the cart row and the full,
// ordered set of its lines.
func (r *GormRepo) SaveCart(ctx context.Context, cart *models.Cart) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cart.ID == uuid.Nil {
			if err := tx.Omit(clause.Associations).Create(cart).Error; err != nil {
				return err
			}
		} else if err := tx.Omit(clause.Associations).Save(cart).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartLine{}).Error; err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return nil
		}
		for i := range cart.Items {
			cart.Items[i].CartID = cart.ID
			cart.Items[i].Position = i
		}
		return tx.Omit(clause.Associations).Create(&cart.Items).Error
	})
	return errors.Wrap(err, "save cart")
}

// ListCheckedOutCarts returns order history with items and buyers resolved.
func (r *GormRepo) ListCheckedOutCarts(ctx context.Context) ([]models.Cart, error) {
	var carts []models.Cart
	err := r.DB.WithContext(ctx).
		Preload("Items", orderedLines).
		Preload("Items.Item").
		Preload("User").
		Where("checked_out = ?", true).
		Order("date DESC").
		Find(&carts).Error
	if err != nil {
		return nil, errors.Wrap(err, "list checked out carts")
	}
	return carts, nil
}
