package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/events"
	"github.com/Skotchmaster/marketplace/internal/logging"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/search"
)

// AccessService guards shop and admin operations and runs the shop owner
// lifecycle: registered, approved, deleted.
type AccessService struct {
	Accounts AccountStore
	Catalog  CatalogStore
	// Index is optional; when set, a deleted owner's items are also purged
	// from the search index.
	Index  search.Index
	Events events.Publisher
}

// RequireShopOwner resolves the shop and checks that callerID owns it.
func (s *AccessService) RequireShopOwner(ctx context.Context, shopID, callerID uuid.UUID) (*models.Shop, error) {
	shop, err := s.Catalog.GetShop(ctx, shopID)
	if err != nil {
		return nil, notFoundOr(err, "Shop not found")
	}
	if shop.OwnerID != callerID {
		return nil, newError(ErrForbidden, "You are not the owner of this shop")
	}
	return shop, nil
}

// RequireAdmin fails with ErrForbidden unless callerID is an existing admin.
func (s *AccessService) RequireAdmin(ctx context.Context, callerID uuid.UUID) (*models.User, error) {
	u, err := s.Accounts.GetUserByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(ErrForbidden, "Unauthorized access")
		}
		return nil, err
	}
	switch u.Role {
	case models.RoleAdmin:
		return u, nil
	case models.RoleCustomer, models.RoleOwner:
	}
	return nil, newError(ErrForbidden, "Unauthorized access")
}

func (s *AccessService) requireOwnerAccount(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	u, err := s.Accounts.GetUserByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	if u.Role != models.RoleOwner {
		return nil, newError(ErrInvalidInput, "User is not a shop owner")
	}
	return u, nil
}

func (s *AccessService) ApproveOwner(ctx context.Context, callerID, userID uuid.UUID) error {
	if _, err := s.RequireAdmin(ctx, callerID); err != nil {
		return err
	}
	if _, err := s.requireOwnerAccount(ctx, userID); err != nil {
		return err
	}
	if err := s.Accounts.SetOwnerState(ctx, userID, true); err != nil {
		return notFoundOr(err, "User not found")
	}

	events.Emit(ctx, s.Events, events.TopicUser, userID.String(), map[string]any{
		"type":    "owner_approved",
		"user_id": userID.String(),
		"by":      callerID.String(),
	})
	return nil
}

// RejectOwner deletes a pending owner. Approved owners may have a shop and
// must go through DeleteOwner instead.
func (s *AccessService) RejectOwner(ctx context.Context, callerID, userID uuid.UUID) error {
	if _, err := s.RequireAdmin(ctx, callerID); err != nil {
		return err
	}
	u, err := s.requireOwnerAccount(ctx, userID)
	if err != nil {
		return err
	}
	if u.State {
		return newError(ErrInvalidInput, "Shop owner is already approved")
	}
	if err := s.Accounts.DeleteUser(ctx, userID); err != nil {
		return notFoundOr(err, "User not found")
	}

	events.Emit(ctx, s.Events, events.TopicUser, userID.String(), map[string]any{
		"type":    "owner_rejected",
		"user_id": userID.String(),
		"by":      callerID.String(),
	})
	return nil
}

// DeleteOwner removes the owner's items, then the shop, then the account.
// The steps are not atomic; a failure after the first returns a
// *CascadeError naming what was already removed.
func (s *AccessService) DeleteOwner(ctx context.Context, callerID, userID uuid.UUID) error {
	if _, err := s.RequireAdmin(ctx, callerID); err != nil {
		return err
	}
	owner, err := s.requireOwnerAccount(ctx, userID)
	if err != nil {
		return err
	}

	shopID, err := s.cascadeOwner(ctx, owner)
	if err != nil {
		return err
	}

	if s.Index != nil && shopID != uuid.Nil {
		if err := s.Index.DeleteShopItems(ctx, shopID.String()); err != nil {
			logging.FromContext(ctx).Warn("search_cleanup_error", "shop_id", shopID.String(), "error", err)
		}
	}

	events.Emit(ctx, s.Events, events.TopicUser, userID.String(), map[string]any{
		"type":    "owner_deleted",
		"user_id": userID.String(),
		"shop_id": shopID.String(),
		"by":      callerID.String(),
	})
	return nil
}

func (s *AccessService) cascadeOwner(ctx context.Context, owner *models.User) (uuid.UUID, error) {
	var (
		shopID uuid.UUID
		done   []CascadeStep
	)
	shop, err := s.Catalog.FindShopByOwner(ctx, owner.ID)
	switch {
	case err == nil:
		shopID = shop.ID
	case errors.Is(err, gorm.ErrRecordNotFound):
		if owner.ShopID != nil {
			shopID = *owner.ShopID
		}
	default:
		return uuid.Nil, &CascadeError{Step: StepLookupShop, Err: err}
	}

	if shopID != uuid.Nil {
		if _, err := s.Catalog.DeleteShopItems(ctx, shopID); err != nil {
			return shopID, &CascadeError{Step: StepItems, Err: err}
		}
		done = append(done, StepItems)
	}
	if _, err := s.Catalog.DeleteShopByOwner(ctx, owner.ID); err != nil {
		return shopID, &CascadeError{Step: StepShop, Completed: done, Err: err}
	}
	done = append(done, StepShop)
	if err := s.Accounts.DeleteUser(ctx, owner.ID); err != nil {
		return shopID, &CascadeError{Step: StepUser, Completed: done, Err: err}
	}
	return shopID, nil
}

func (s *AccessService) ListShopOwners(ctx context.Context, callerID uuid.UUID) ([]models.User, error) {
	if _, err := s.RequireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	owners, err := s.Accounts.ListUsersByRole(ctx, models.RoleOwner)
	if err != nil {
		return nil, err
	}
	if len(owners) == 0 {
		return nil, newError(ErrNotFound, "No shop owners found !")
	}
	return owners, nil
}
