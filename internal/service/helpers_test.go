package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/marketplace/internal/db/dbtest"
	"github.com/Skotchmaster/marketplace/internal/hash"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []map[string]any
}

func (p *recordingPublisher) PublishEvent(_ context.Context, _, _ string, event map[string]any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i], _ = e["type"].(string)
	}
	return out
}

type fakeIndex struct {
	deleted []string
	err     error
}

func (f *fakeIndex) Search(context.Context, string, int, int) (int64, []models.Item, error) {
	return 0, nil, nil
}

func (f *fakeIndex) DeleteShopItems(_ context.Context, shopID string) error {
	f.deleted = append(f.deleted, shopID)
	return f.err
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	return repo.New(dbtest.Open(t))
}

func seedUser(t *testing.T, r *repo.GormRepo, username string, role models.Role, approved bool) *models.User {
	t.Helper()

	digest, err := hash.HashPassword("secret")
	require.NoError(t, err)

	u := &models.User{Username: username, PasswordDigest: digest, Role: role, State: approved}
	require.NoError(t, r.CreateUserIfNotExists(context.Background(), u))
	return u
}

// seedShop creates a shop for owner with the given number of items.
func seedShop(t *testing.T, r *repo.GormRepo, owner *models.User, items int) (*models.Shop, []models.Item) {
	t.Helper()
	ctx := context.Background()

	shop := &models.Shop{OwnerID: owner.ID, Name: owner.Username + "'s shop"}
	require.NoError(t, r.CreateShop(ctx, shop))

	out := make([]models.Item, 0, items)
	for i := 0; i < items; i++ {
		it := &models.Item{ShopID: shop.ID, Name: uuid.NewString()[:8], Price: float64(10 * (i + 1))}
		require.NoError(t, r.CreateItem(ctx, it))
		out = append(out, *it)
	}
	return shop, out
}

func lineView(lines []models.CartLine) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(lines))
	for _, l := range lines {
		out[l.ItemID] = l.Quantity
	}
	return out
}
