package httpserver

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/logging"
	"github.com/Skotchmaster/marketplace/internal/middleware/auth"
	"github.com/Skotchmaster/marketplace/internal/service"
)

type AdminHTTP struct {
	Access *service.AccessService
}

// ownerAction runs an admin decision about the owner in the userId param.
func (h *AdminHTTP) ownerAction(c echo.Context, op, done string, act func(ctx context.Context, callerID, userID uuid.UUID) error) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin."+op)

	callerID, err := auth.UserID(c)
	if err != nil {
		l.Warn(op+"_error", "status", 403, "error", err)
		return echo.NewHTTPError(http.StatusForbidden, "Unauthorized access")
	}
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		l.Warn(op+"_error", "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	if err := act(ctx, callerID, userID); err != nil {
		return fail(l, op, err)
	}

	l.Info(done, "user_id", userID.String(), "admin_id", callerID.String())
	return c.JSON(http.StatusOK, echo.Map{"message": done})
}

func (h *AdminHTTP) ApproveOwner(c echo.Context) error {
	return h.ownerAction(c, "approve_owner", "Shop owner approved", h.Access.ApproveOwner)
}

func (h *AdminHTTP) RejectOwner(c echo.Context) error {
	return h.ownerAction(c, "reject_owner", "Shop owner rejected", h.Access.RejectOwner)
}

func (h *AdminHTTP) DeleteOwner(c echo.Context) error {
	return h.ownerAction(c, "delete_owner", "Shop owner deleted", h.Access.DeleteOwner)
}

func (h *AdminHTTP) ListOwners(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_owners")

	callerID, err := auth.UserID(c)
	if err != nil {
		l.Warn("list_owners_error", "status", 403, "error", err)
		return echo.NewHTTPError(http.StatusForbidden, "Unauthorized access")
	}

	owners, err := h.Access.ListShopOwners(ctx, callerID)
	if err != nil {
		return fail(l, "list_owners", err)
	}
	return c.JSON(http.StatusOK, owners)
}
