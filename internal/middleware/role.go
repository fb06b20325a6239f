package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventflow/eventflow-api/internal/auth"
)

// RequireRole returns a middleware that restricts a route to identities
// whose role is in the given set. The set is fixed at route-registration
// time. It must run after Auth; a missing identity on a route wired with
// RequireRole means the route group forgot the Auth middleware, so the
// request is rejected with 401 and the misconfiguration is logged.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := auth.FromContext(c)
			if !ok {
				c.Logger().Warnf("RequireRole on %s without Auth middleware", c.Path())
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Access denied. Authentication required."})
			}
			if !allowed[id.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Access denied. Insufficient permissions."})
			}
			return next(c)
		}
	}
}
