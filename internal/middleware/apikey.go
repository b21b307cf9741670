package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voyago/travel-backoffice/internal/repository"
	"github.com/voyago/travel-backoffice/internal/utils"
)

// APIKeyOrJWT authenticates a request either by an X-API-Key header or by a
// Bearer token.  API keys act as STAFF so external integrations can drive the
// quote builder without a user session; everything else falls through to
// JWTAuth.
func APIKeyOrJWT(secret string, keys *repository.APIKeyRepo) echo.MiddlewareFunc {
	bearer := JWTAuth(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		jwtNext := bearer(next)
		return func(c echo.Context) error {
			raw := c.Request().Header.Get("X-API-Key")
			if raw == "" {
				return jwtNext(c)
			}
			k, err := keys.FindByHash(c.Request().Context(), utils.HashAPIKey(raw))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid api key"})
			}
			c.Set("user_id", "key:"+k.Name)
			c.Set("role", "STAFF")
			return next(c)
		}
	}
}
