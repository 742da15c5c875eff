package handler // handler defines http handlers

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/okheya/food-rescue/internal/model"
)

// errNoIdentity indicates the JWT claims did not yield a usable
// identity.  Handlers translate it into a 401 response.
var errNoIdentity = errors.New("no identity in context")

// identityFrom builds the reservation identity out of the claims the
// JWT middleware stored in the Echo context.  Both the user ID and the
// email must be present; the consistency engine re-checks completeness
// on its own, but failing here gives the caller a clean 401 instead of
// an engine error.
func identityFrom(c echo.Context) (model.Identity, error) {
	id := model.Identity{
		UserID:    stringClaim(c, "user_id"),
		UserEmail: stringClaim(c, "user_email"),
	}
	if !id.Complete() {
		return model.Identity{}, errNoIdentity
	}
	return id, nil
}

// stringClaim returns the context value under key when it is a
// non-empty string, otherwise "".
func stringClaim(c echo.Context, key string) string {
	if v := c.Get(key); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
