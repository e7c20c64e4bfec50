package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestCartService(t *testing.T) (*CartService, *repo.GormRepo, *recordingPublisher) {
	t.Helper()
	r := newTestRepo(t)
	pub := &recordingPublisher{}
	return &CartService{
		Accounts: r,
		Carts:    r,
		Events:   pub,
		Now:      func() time.Time { return fixedNow },
	}, r, pub
}

func countOpenCarts(t *testing.T, r *repo.GormRepo, userID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, r.DB.Model(&models.Cart{}).Where("user_id = ? AND checked_out = ?", userID, false).Count(&n).Error)
	return n
}

func TestCartService_AddItems_CreatesCart(t *testing.T) {
	t.Parallel()

	svc, r, pub := newTestCartService(t)
	ctx := context.Background()
	u := seedUser(t, r, "alice", models.RoleCustomer, false)
	itemA, itemB := uuid.New(), uuid.New()

	cart, err := svc.AddItems(ctx, u.ID, []models.CartLine{{ItemID: itemA, Quantity: 2}, {ItemID: itemB, Quantity: 1}}, nil, 42.5)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, cart.ID)
	assert.Equal(t, 42.5, cart.TotalPrice)
	assert.False(t, cart.CheckedOut)
	assert.Equal(t, fixedNow, cart.Date)
	assert.Equal(t, int64(1), countOpenCarts(t, r, u.ID))

	stored, err := r.FindOpenCart(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, itemA, stored.Items[0].ItemID)
	assert.Equal(t, 2, stored.Items[0].Quantity)
	assert.Equal(t, itemB, stored.Items[1].ItemID)

	owner, err := r.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, owner.HasCart(cart.ID))
	assert.Len(t, owner.CartRefs, 1)

	assert.Equal(t, []string{"cart_items_added"}, pub.types())
}

func TestCartService_AddItems_AccumulatesQuantity(t *testing.T) {
	t.Parallel()

	svc, r, _ := newTestCartService(t)
	ctx := context.Background()
	u := seedUser(t, r, "alice", models.RoleCustomer, false)
	item := uuid.New()

	first, err := svc.AddItems(ctx, u.ID, []models.CartLine{{ItemID: item, Quantity: 3}}, nil, 30)
	require.NoError(t, err)
	second, err := svc.AddItems(ctx, u.ID, []models.CartLine{{ItemID: item, Quantity: 2}}, nil, 20)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 50.0, second.TotalPrice)

	stored, err := r.FindOpenCart(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 5, stored.Items[0].Quantity)
}

func TestCartService_AddItems_SingleOpenCart(t *testing.T) {
	t.Parallel()

	svc, r, _ := newTestCartService(t)
	ctx := context.Background()
	u := seedUser(t, r, "alice", models.RoleCustomer, false)

	for i := 0; i < 4; i++ {
		_, err := svc.AddItems(ctx, u.ID, []models.CartLine{{ItemID: uuid.New(), Quantity: 1}}, nil, 1)
		require.NoError(t, err)
	}

	assert.Equal(t, int64(1), countOpenCarts(t, r, u.ID))

	owner, err := r.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, owner.CartRefs, 1)

	stored, err := r.FindOpenCart(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 4)
}

func TestCartService_AddItems_UsesGivenDate(t *testing.T) {
	t.Parallel()

	svc, r, _ := newTestCartService(t)
	ctx := context.Background()
	u := seedUser(t, r, "alice", models.RoleCustomer, false)
	date := time.Date(2023, 12, 24, 8, 30, 0, 0, time.UTC)

	_, err := svc.AddItems(ctx, u.ID, []models.CartLine{}, &date, 0)
	require.NoError(t, err)
	cart, err := svc.AddItems(ctx, u.ID, []models.CartLine{}, nil, 0)
	require.NoError(t, err)

	// a later add without a date re-stamps the cart
	assert.Equal(t, fixedNow, cart.Date)
}

func TestCartService_AddItems_Errors(t *testing.T) {
	t.Parallel()

	svc, r, _ := newTestCartService(t)
	ctx := context.Background()
	u := seedUser(t, r, "alice", models.RoleCustomer, false)

	tests := []struct {
		name   string
		userID uuid.UUID
		items  []models.CartLine
		want   error
	}{
		{name: "unknown user", userID: uuid.New(), items: []models.CartLine{}, want: ErrNotFound},
		{name: "unknown user wins over missing items", userID: uuid.New(), items: nil, want: ErrNotFound},
		{name: "missing items", userID: u.ID, items: nil, want: ErrInvalidInput},
		{name: "nil item reference", userID: u.ID, items: []models.CartLine{{Quantity: 1}}, want: ErrInvalidInput},
		{name: "zero quantity", userID: u.ID, items: []models.CartLine{{ItemID: uuid.New()}}, want: ErrInvalidInput},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cart, err := svc.AddItems(ctx, tt.userID, tt.items, nil, 0)
			require.Error(t, err)
			assert.Nil(t, cart)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Equal(t, int64(0), countOpenCarts(t, r, u.ID))
}

func TestCartService_RemoveItem(t *testing.T) {
	t.Parallel()

	svc, r, pub := newTestCartService(t)
	ctx := context.Background()
	u := seedUser(t, r, "alice", models.RoleCustomer, false)
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	_, err := svc.AddItems(ctx, u.ID, []models.CartLine{{ItemID: a, Quantity: 1}, {ItemID: b, Quantity: 7}, {ItemID: c, Quantity: 2}}, nil, 99)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(ctx, u.ID, b)
	require.NoError(t, err)
	assert.Equal(t, 99.0, cart.TotalPrice)

	stored, err := r.FindOpenCart(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, a, stored.Items[0].ItemID)
	assert.Equal(t, c, stored.Items[1].ItemID)

	assert.Equal(t, []string{"cart_items_added", "cart_item_removed"}, pub.types())
}

func TestCartService_RemoveItem_MissingLineLeavesCart(t *testing.T) {
	t.Parallel()

	svc, r, _ := newTestCartService(t)
	ctx := context.Background()
	u := seedUser(t, r, "alice", models.RoleCustomer, false)
	a := uuid.New()

	_, err := svc.AddItems(ctx, u.ID, []models.CartLine{{ItemID: a, Quantity: 3}}, nil, 10)
	require.NoError(t, err)
	before, err := r.FindOpenCart(ctx, u.ID)
	require.NoError(t, err)

	_, err = svc.RemoveItem(ctx, u.ID, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Item not found in the cart", PublicMessage(err))

	after, err := r.FindOpenCart(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, lineView(before.Items), lineView(after.Items))
	assert.Equal(t, before.TotalPrice, after.TotalPrice)
}

func TestCartService_RemoveItem_NotFound(t *testing.T) {
	t.Parallel()

	svc, r, _ := newTestCartService(t)
	ctx := context.Background()
	u := seedUser(t, r, "alice", models.RoleCustomer, false)

	_, err := svc.RemoveItem(ctx, uuid.New(), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "User not found", PublicMessage(err))

	_, err = svc.RemoveItem(ctx, u.ID, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "No current cart found", PublicMessage(err))
}

func TestCartService_GetOpenCart(t *testing.T) {
	t.Parallel()

	svc, r, _ := newTestCartService(t)
	ctx := context.Background()
	u := seedUser(t, r, "alice", models.RoleCustomer, false)

	_, err := svc.GetOpenCart(ctx, u.ID)
	require.ErrorIs(t, err, ErrNotFound)

	created, err := svc.AddItems(ctx, u.ID, []models.CartLine{{ItemID: uuid.New(), Quantity: 1}}, nil, 5)
	require.NoError(t, err)

	got, err := svc.GetOpenCart(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Len(t, got.Items, 1)
}
