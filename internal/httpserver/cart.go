package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/logging"
	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) AddItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_items")

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		l.Warn("add_items_error", "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	var req transport.AddItemsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_items_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	lines, err := req.Lines()
	if err != nil {
		l.Warn("add_items_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid items")
	}

	cart, err := h.Svc.AddItems(ctx, userID, lines, req.Date, req.TotalPrice)
	if err != nil {
		return fail(l, "add_items", err)
	}

	l.Info("items added to cart", "cart_id", cart.ID.String(), "lines", len(cart.Items))
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		l.Warn("remove_item_error", "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		l.Warn("remove_item_error", "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "Item not found in the cart")
	}

	cart, err := h.Svc.RemoveItem(ctx, userID, itemID)
	if err != nil {
		return fail(l, "remove_item", err)
	}

	l.Info("item removed from cart", "cart_id", cart.ID.String())
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		l.Warn("get_cart_error", "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	cart, err := h.Svc.GetOpenCart(ctx, userID)
	if err != nil {
		return fail(l, "get_cart", err)
	}
	return c.JSON(http.StatusOK, cart)
}
