package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/marketplace/internal/db/dbtest"
	"github.com/Skotchmaster/marketplace/internal/events"
	"github.com/Skotchmaster/marketplace/internal/hash"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/internal/tokens"
)

var testSecret = []byte("test-jwt-secret")

type testEnv struct {
	e    *echo.Echo
	repo *repo.GormRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	r := repo.New(dbtest.Open(t))
	pub := events.Nop{}
	gate := &service.AccessService{Accounts: r, Catalog: r, Events: pub}

	e := echo.New()
	Register(e, &Deps{
		CartHandler: &CartHTTP{Svc: &service.CartService{Accounts: r, Carts: r, Events: pub}},
		UserHandler: &UserHTTP{
			Accounts: &service.AccountService{
				Accounts:  r,
				Catalog:   r,
				Gate:      gate,
				Events:    pub,
				JWTSecret: testSecret,
				TokenTTL:  time.Hour,
			},
			Orders: &service.OrderService{Gate: gate, Carts: r},
		},
		AdminHandler:  &AdminHTTP{Access: gate},
		SearchHandler: &SearchHTTP{Svc: &service.SearchService{Fallback: r}},
		JWTSecret:     testSecret,
	})
	return &testEnv{e: e, repo: r}
}

func (env *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) seedUser(t *testing.T, username string, role models.Role, approved bool) (*models.User, string) {
	t.Helper()

	digest, err := hash.HashPassword("secret")
	require.NoError(t, err)
	u := &models.User{Username: username, PasswordDigest: digest, Role: role, State: approved}
	require.NoError(t, env.repo.CreateUserIfNotExists(context.Background(), u))

	tok, err := tokens.CreateAccessToken(testSecret, tokens.Payload{
		ID:       u.ID.String(),
		Username: u.Username,
		Type:     u.Role.String(),
	}, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return u, tok
}

func (env *testEnv) seedShop(t *testing.T, owner *models.User, names ...string) (*models.Shop, []models.Item) {
	t.Helper()
	ctx := context.Background()

	shop := &models.Shop{OwnerID: owner.ID, Name: owner.Username + " shop"}
	require.NoError(t, env.repo.CreateShop(ctx, shop))

	items := make([]models.Item, 0, len(names))
	for _, n := range names {
		it := &models.Item{ShopID: shop.ID, Name: n, Price: 10}
		require.NoError(t, env.repo.CreateItem(ctx, it))
		items = append(items, *it)
	}
	return shop, items
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}
