package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/logging"
	"github.com/Skotchmaster/marketplace/internal/middleware/auth"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/internal/transport"
)

type UserHTTP struct {
	Accounts *service.AccountService
	Orders   *service.OrderService
}

func (h *UserHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	u, err := h.Accounts.Register(ctx, service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Type:      req.Type,
		CR:        req.CR,
	})
	if err != nil {
		// duplicates answer 400 on this route
		if errors.Is(err, service.ErrConflict) {
			return failWith(l, "register", http.StatusBadRequest, err)
		}
		return fail(l, "register", err)
	}

	l.Info("user registered", "user_id", u.ID.String(), "type", u.Role.String())
	switch u.Role {
	case models.RoleOwner:
		return c.JSON(http.StatusCreated, echo.Map{"message": "Pending approval"})
	case models.RoleCustomer, models.RoleAdmin:
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *UserHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	res, err := h.Accounts.Login(ctx, req.Username, req.Password)
	if err != nil {
		return fail(l, "login", err)
	}

	l.Info("login_successful", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, res)
}

func (h *UserHTTP) ResetPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.reset_password")

	var req transport.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("reset_password_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Accounts.UpdatePassword(ctx, req.Username, req.NewPassword); err != nil {
		return fail(l, "reset_password", err)
	}

	l.Info("password updated")
	return c.JSON(http.StatusOK, echo.Map{"status": "Password Updated!"})
}

func (h *UserHTTP) Session(c echo.Context) error {
	claims, ok := auth.Claims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return c.JSON(http.StatusOK, claims.Payload())
}

func (h *UserHTTP) ShopItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.shop_items")

	callerID, err := auth.UserID(c)
	if err != nil {
		l.Warn("shop_items_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	shopID, err := uuid.Parse(c.Param("shopId"))
	if err != nil {
		l.Warn("shop_items_error", "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "Shop not found")
	}

	items, err := h.Accounts.ShopItems(ctx, shopID, callerID)
	if err != nil {
		return fail(l, "shop_items", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *UserHTTP) ShopOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.shop_orders")

	callerID, err := auth.UserID(c)
	if err != nil {
		l.Warn("shop_orders_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	shopID, err := uuid.Parse(c.Param("shopId"))
	if err != nil {
		l.Warn("shop_orders_error", "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "Shop not found")
	}

	orders, err := h.Orders.ListShopOrders(ctx, shopID, callerID)
	if err != nil {
		// a foreign shop answers 401 on this route
		if errors.Is(err, service.ErrForbidden) {
			return failWith(l, "shop_orders", http.StatusUnauthorized, err)
		}
		return fail(l, "shop_orders", err)
	}
	return c.JSON(http.StatusOK, orders)
}
