package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/eventflow/eventflow-api/internal/config"
	"github.com/eventflow/eventflow-api/internal/handler"
	"github.com/eventflow/eventflow-api/internal/middleware"
	"github.com/eventflow/eventflow-api/internal/model"
)

// RegisterRoutes wires every route group and its middleware. The rate
// limiter guards the credential endpoints; the response cache fronts the
// catalog reads; Auth plus RequireRole gate the admin group. Both Redis
// middlewares degrade to pass-through when rdb is nil.
func RegisterRoutes(e *echo.Echo, cfg config.Config, a *handler.AuthHandler, ev *handler.EventsHandler, rdb *redis.Client) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	authn := middleware.Auth(cfg.JWTSecret)

	// Credential endpoints. Registration and login are anonymous and rate
	// limited; the profile pair requires a valid token.
	authGroup := e.Group("/api/auth", rateLimit)
	authGroup.POST("/register", a.Register)
	authGroup.POST("/login", a.Login)
	authGroup.GET("/profile", a.Profile, authn)
	authGroup.PUT("/profile", a.UpdateProfile, authn)

	// Catalog browsing is public and cached; registration endpoints need a
	// verified identity. The static /my and /register routes take priority
	// over the /:id param route.
	events := e.Group("/api/events")
	events.GET("", ev.List, cache)
	events.GET("/my", ev.MyRegistrations, authn)
	events.GET("/:id", ev.Details, cache)
	events.POST("/register", ev.Register, authn)

	// Admin dashboard endpoints: authenticated and role-gated.
	admin := e.Group("/api/admin", authn, middleware.RequireRole(model.RoleAdmin))
	admin.GET("/registrations", ev.RecentRegistrations)
}
