// Package middleware provides the request gates shared by protected
// routes: bearer-token authentication, role authorization, rate limiting
// and response caching.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventflow/eventflow-api/internal/auth"
)

// Auth returns an Echo middleware that validates a Bearer token and
// attaches the verified identity to the request context. The provided
// secret must match the one used when issuing tokens.
//
// Rejections deliberately carry only two client-visible messages: one for
// a missing token and one for every verification failure. Which particular
// way a token failed (forged, expired, malformed) is logged server-side
// and never echoed, so callers cannot probe for the difference.
func Auth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Access denied. No token provided."})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			id, err := auth.ParseToken(secret, raw)
			if err != nil {
				c.Logger().Infof("token verification failed: %v", err)
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token."})
			}

			auth.SetIdentity(c, id)
			return next(c)
		}
	}
}
