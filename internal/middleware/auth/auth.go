package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/tokens"
)

const (
	CookieName = "accessToken"

	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxClaims = "claims"
)

var ErrNoSession = errors.New("no session")

type JWTAuth struct {
	JWTSecret []byte
}

func NewJWTAuth(secret []byte) *JWTAuth {
	return &JWTAuth{JWTSecret: secret}
}

// RequireAuth accepts a Bearer token and falls back to the access token cookie.
func (m *JWTAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := tokenFromRequest(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil || claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set(ctxUserID, claims.Subject)
		c.Set(ctxRole, claims.Role)
		c.Set(ctxClaims, claims)
		return next(c)
	}
}

func tokenFromRequest(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if scheme, tok, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(tok)
	}
	if ck, err := c.Cookie(CookieName); err == nil {
		return ck.Value
	}
	return ""
}

// UserID returns the authenticated caller's id.
func UserID(c echo.Context) (uuid.UUID, error) {
	s, ok := c.Get(ctxUserID).(string)
	if !ok || s == "" {
		return uuid.Nil, ErrNoSession
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, ErrNoSession
	}
	return id, nil
}

func Claims(c echo.Context) (*tokens.AccessClaims, bool) {
	claims, ok := c.Get(ctxClaims).(*tokens.AccessClaims)
	return claims, ok && claims != nil
}
