package middleware

// identity.go holds helpers shared across middleware files for pulling the
// caller's identity out of the Echo context.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user identifier from context, or
// "anon" when the request carries no identity.  JWT numeric claims decode as
// float64; API key identities are strings.
func currentUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatUint(uint64(v), 10)
	}
	return "anon"
}
