package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/marketplace/internal/models"
)

type AccountStore interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUserIfNotExists(ctx context.Context, u *models.User) error
	UpdatePasswordDigest(ctx context.Context, id uuid.UUID, digest string) error
	SetOwnerState(ctx context.Context, id uuid.UUID, state bool) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	AddCartRef(ctx context.Context, userID, cartID uuid.UUID) error
	ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error)
}

type CatalogStore interface {
	GetShop(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	FindShopByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Shop, error)
	ListShopItems(ctx context.Context, shopID uuid.UUID) ([]models.Item, error)
	DeleteShopItems(ctx context.Context, shopID uuid.UUID) (int64, error)
	DeleteShopByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type CartStore interface {
	FindOpenCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	ListCheckedOutCarts(ctx context.Context) ([]models.Cart, error)
}
