package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/marketplace/internal/models"
)

type OrderService struct {
	Gate  *AccessService
	Carts CartStore
}

// ListShopOrders returns the checked-out carts holding at least one item
// sold by the shop, newest first. Every line of a matching cart is kept.
func (s *OrderService) ListShopOrders(ctx context.Context, shopID, callerID uuid.UUID) ([]models.Cart, error) {
	if _, err := s.Gate.RequireShopOwner(ctx, shopID, callerID); err != nil {
		return nil, err
	}
	carts, err := s.Carts.ListCheckedOutCarts(ctx)
	if err != nil {
		return nil, err
	}
	orders := FilterShopOrders(carts, shopID)
	if len(orders) == 0 {
		return nil, newError(ErrNotFound, "No orders yet for this shop !")
	}
	return orders, nil
}

// FilterShopOrders keeps the checked-out carts with a line whose resolved
// item belongs to shopID. Input order is preserved.
func FilterShopOrders(carts []models.Cart, shopID uuid.UUID) []models.Cart {
	var out []models.Cart
	for _, c := range carts {
		if !c.CheckedOut {
			continue
		}
		for _, line := range c.Items {
			if line.Item != nil && line.Item.ShopID == shopID {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
