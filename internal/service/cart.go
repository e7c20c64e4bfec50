package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/events"
	"github.com/Skotchmaster/marketplace/internal/models"
)

// CartService keeps at most one open cart per user and folds repeated
// additions of the same item into a single line.
type CartService struct {
	Accounts AccountStore
	Carts    CartStore
	Events   events.Publisher
	Now      func() time.Time
}

func (s *CartService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// AddItems merges items into the user's open cart, creating the cart when
// there is none. items == nil means the request carried no item sequence;
// an empty slice is a valid no-op addition. totalPrice is added to the
// running total as supplied by the caller. A nil date stamps the cart with
// the current time.
func (s *CartService) AddItems(ctx context.Context, userID uuid.UUID, items []models.CartLine, date *time.Time, totalPrice float64) (*models.Cart, error) {
	user, err := s.Accounts.GetUserByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	if items == nil {
		return nil, newError(ErrInvalidInput, "Items must be an array.")
	}
	for _, it := range items {
		if it.ItemID == uuid.Nil {
			return nil, newError(ErrInvalidInput, "Every item needs an item reference")
		}
		if it.Quantity < 1 {
			return nil, newError(ErrInvalidInput, "Quantity must be more than zero")
		}
	}

	stamp := s.now()
	if date != nil {
		stamp = date.UTC()
	}

	cart, err := s.Carts.FindOpenCart(ctx, userID)
	switch {
	case err == nil:
		cart.Items = MergeLines(cart.Items, items)
		cart.TotalPrice += totalPrice
		cart.Date = stamp
	case errors.Is(err, gorm.ErrRecordNotFound):
		lines := make([]models.CartLine, len(items))
		for i, it := range items {
			lines[i] = models.CartLine{ItemID: it.ItemID, Quantity: it.Quantity}
		}
		cart = &models.Cart{
			UserID:     userID,
			Items:      lines,
			TotalPrice: totalPrice,
			Date:       stamp,
		}
	default:
		return nil, err
	}

	if err := s.Carts.SaveCart(ctx, cart); err != nil {
		return nil, err
	}
	if !user.HasCart(cart.ID) {
		if err := s.Accounts.AddCartRef(ctx, userID, cart.ID); err != nil {
			return nil, err
		}
	}

	events.Emit(ctx, s.Events, events.TopicCart, cart.ID.String(), map[string]any{
		"type":        "cart_items_added",
		"cart_id":     cart.ID.String(),
		"user_id":     userID.String(),
		"lines":       len(cart.Items),
		"total_price": cart.TotalPrice,
	})
	return cart, nil
}

// RemoveItem drops the line for itemID from the user's open cart whatever
// its quantity. The running total is left as is.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*models.Cart, error) {
	if _, err := s.Accounts.GetUserByID(ctx, userID); err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	cart, err := s.Carts.FindOpenCart(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "No current cart found")
	}

	idx := -1
	for i, line := range cart.Items {
		if line.ItemID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, newError(ErrNotFound, "Item not found in the cart")
	}
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)

	if err := s.Carts.SaveCart(ctx, cart); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.Events, events.TopicCart, cart.ID.String(), map[string]any{
		"type":    "cart_item_removed",
		"cart_id": cart.ID.String(),
		"user_id": userID.String(),
		"item_id": itemID.String(),
	})
	return cart, nil
}

func (s *CartService) GetOpenCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if _, err := s.Accounts.GetUserByID(ctx, userID); err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	cart, err := s.Carts.FindOpenCart(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "No current cart found")
	}
	return cart, nil
}
