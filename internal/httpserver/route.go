package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/logging"
	"github.com/Skotchmaster/marketplace/internal/metrics"
	"github.com/Skotchmaster/marketplace/internal/middleware/auth"
)

type Deps struct {
	CartHandler   *CartHTTP
	UserHandler   *UserHTTP
	AdminHandler  *AdminHTTP
	SearchHandler *SearchHTTP
	JWTSecret     []byte
	// Ready reports whether backing stores answer; nil means always ready.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				logging.FromContext(c.Request().Context()).Warn("readiness_error", "error", err)
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	authMW := auth.NewJWTAuth(d.JWTSecret)

	cart := e.Group("/cart", authMW.RequireAuth)
	cart.PATCH("/:userId", d.CartHandler.AddItems)
	cart.GET("/:userId", d.CartHandler.GetCart)
	cart.DELETE("/:userId/:itemId", d.CartHandler.RemoveItem)

	user := e.Group("/user")
	user.POST("/register", d.UserHandler.Register)
	user.POST("/login", d.UserHandler.Login)
	user.PATCH("/reset-password", d.UserHandler.ResetPassword)

	private := user.Group("", authMW.RequireAuth)
	private.GET("/session", d.UserHandler.Session)
	private.GET("/shop/:shopId/items", d.UserHandler.ShopItems)
	private.GET("/shop/:shopId/orders", d.UserHandler.ShopOrders)
	private.POST("/admin/accept-shop-owner/:userId", d.AdminHandler.ApproveOwner)
	private.POST("/admin/reject-shop-owner/:userId", d.AdminHandler.RejectOwner)

	users := e.Group("/users/admin", authMW.RequireAuth)
	users.GET("", d.AdminHandler.ListOwners)
	users.DELETE("/delete-shop-owner/:userId", d.AdminHandler.DeleteOwner)

	if d.SearchHandler != nil {
		e.GET("/items/search", d.SearchHandler.Search)
	}
}
