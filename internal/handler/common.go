package handler // handler contains the HTTP endpoints of the parking API

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// getUserID extracts the authenticated user's id from the context.
// JWTAuth stores the raw "sub" claim, which jwt.MapClaims decodes as a
// float64; tokens from other issuers may carry a numeric string.
func getUserID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), v > 0
	case uint64:
		return v, v > 0
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n, n > 0
		}
	}
	return 0, false
}

// pathID parses a numeric :id path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	return n, err == nil && n > 0
}
