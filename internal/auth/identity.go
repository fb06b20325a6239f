package auth

import "github.com/labstack/echo/v4"

// identityKey is the single context key under which the middleware stores
// the verified Identity. Handlers retrieve it with FromContext instead of
// probing loosely typed context values.
const identityKey = "auth.identity"

// SetIdentity attaches a verified identity to the request context.
func SetIdentity(c echo.Context, id Identity) {
	c.Set(identityKey, id)
}

// FromContext returns the identity attached by the authentication
// middleware. ok is false when the request never passed through it, which
// on a protected route indicates a wiring mistake rather than a user error.
func FromContext(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}
