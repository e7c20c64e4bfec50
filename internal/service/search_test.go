package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/marketplace/internal/models"
)

type stubIndex struct {
	fakeIndex
	total int64
	items []models.Item
	err   error
	from  int
	size  int
}

func (s *stubIndex) Search(_ context.Context, _ string, from, size int) (int64, []models.Item, error) {
	s.from, s.size = from, size
	return s.total, s.items, s.err
}

func TestSearchService_UsesIndex(t *testing.T) {
	t.Parallel()

	ix := &stubIndex{total: 42, items: []models.Item{{Name: "lamp"}}}
	svc := &SearchService{Index: ix}

	res, err := svc.Search(context.Background(), "  lamp ", 3, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.Total)
	assert.Equal(t, 3, res.Page)
	assert.Equal(t, 20, res.Size)
	assert.Equal(t, 40, ix.from)
	assert.Len(t, res.Items, 1)
}

func TestSearchService_FallsBackToDatabase(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	owner := seedUser(t, r, "bob", models.RoleOwner, true)
	shop, _ := seedShop(t, r, owner, 0)
	ctx := context.Background()
	require.NoError(t, r.CreateItem(ctx, &models.Item{ShopID: shop.ID, Name: "Desk Lamp", Price: 20}))
	require.NoError(t, r.CreateItem(ctx, &models.Item{ShopID: shop.ID, Name: "Chair", Description: "goes well with a lamp", Price: 50}))
	require.NoError(t, r.CreateItem(ctx, &models.Item{ShopID: shop.ID, Name: "Table", Price: 90}))

	svc := &SearchService{Index: &stubIndex{err: errors.New("index down")}, Fallback: r}

	res, err := svc.Search(ctx, "LAMP", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	assert.Len(t, res.Items, 2)

	res, err = (&SearchService{Fallback: r}).Search(ctx, "sofa", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Total)
	assert.NotNil(t, res.Items)
}

func TestSearchService_Errors(t *testing.T) {
	t.Parallel()

	_, err := (&SearchService{}).Search(context.Background(), "   ", 1, 10)
	assert.ErrorIs(t, err, ErrInvalidInput)

	down := errors.New("index down")
	_, err = (&SearchService{Index: &stubIndex{err: down}}).Search(context.Background(), "lamp", 1, 10)
	assert.ErrorIs(t, err, down)
}
