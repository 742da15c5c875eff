package middleware

// identity.go defines helper functions shared across middleware files.
// currentUserID pulls the user_id claim JWTAuth stored in the Echo
// context; it is used by the rate limiter to build per-user keys.
// When no user is authenticated, "anon" is returned.

import "github.com/labstack/echo/v4"

// currentUserID extracts the authenticated user identifier from
// context, or "anon" when missing.
func currentUserID(c echo.Context) string {
	if v := c.Get("user_id"); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "anon"
}
