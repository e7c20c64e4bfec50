package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/service"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func fail(l *slog.Logger, op string, err error) error {
	return failWith(l, op, statusOf(err), err)
}

// failWith logs err and answers with status. Internal details never reach
// the client.
func failWith(l *slog.Logger, op string, status int, err error) error {
	if status >= http.StatusInternalServerError {
		l.Error(op+"_error", "status", status, "error", err)
		return echo.NewHTTPError(status, "internal server error")
	}
	l.Warn(op+"_error", "status", status, "error", err)

	msg := service.PublicMessage(err)
	if msg == "" {
		msg = http.StatusText(status)
	}
	return echo.NewHTTPError(status, msg)
}
