package middleware // reusable HTTP middleware for authentication and gating

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/naomimt/TravelMate/internal/utils"
)

// Context keys populated by JWTAuth for downstream handlers.
const (
	ClaimsKey = "claims"
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// JWTAuth returns Echo middleware that validates a Bearer token and injects
// the decoded claims into the request context.  Missing, malformed, expired
// and forged tokens all produce the same 401 response.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Unauthorized - login required"})
			}
			claims, ok := utils.VerifyToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Unauthorized - login required"})
			}
			c.Set(ClaimsKey, claims)
			c.Set(UserIDKey, claims.UserID)
			c.Set(RoleKey, claims.Role)
			return next(c)
		}
	}
}

// CurrentClaims extracts the token claims stored by JWTAuth.  ok is false on
// routes that were not wrapped by the middleware.
func CurrentClaims(c echo.Context) (utils.TokenClaims, bool) {
	claims, ok := c.Get(ClaimsKey).(utils.TokenClaims)
	return claims, ok
}
