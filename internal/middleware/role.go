package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAdmin aborts the request unless JWTAuth stored admin claims.  The
// response is 401 rather than 403: admin routes do not acknowledge valid
// non-admin credentials any differently than missing ones.  403 is reserved
// for ownership violations on user-scoped resources.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := CurrentClaims(c)
			if !ok || !claims.IsAdmin() {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Unauthorized - admin access required"})
			}
			return next(c)
		}
	}
}
