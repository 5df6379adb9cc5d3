// Package http provides HTTP server infrastructure including the Module interface
// that all domain modules must implement for route registration.
package http

import (
	"servant_backend/platform/config"
	"servant_backend/platform/httpkit"
	"servant_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// Module represents a bounded context that can register its HTTP routes.
// Each domain module implements this interface to encapsulate its own
// route setup, keeping the main router decoupled from specific endpoints.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes on the provided router group.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext provides shared dependencies for module route registration.
// This avoids passing many parameters to each module's RegisterRoutes method.
type RouterContext struct {
	// Engine is the root Gin engine for modules that need engine-level access.
	Engine *gin.Engine
	// V1 is the /api/v1 route group.
	V1 *gin.RouterGroup
	// Admin is the authenticated owner route group under /api/v1/admin.
	Admin *gin.RouterGroup
	// Config is the JWT configuration for auth middleware (scoped access).
	Config config.JWTConfig
	// RateLimits holds per-route limits for the public endpoints.
	RateLimits config.RateLimitConfig
	// AuthRateLimiter is the stricter rate limiter for the login route.
	AuthRateLimiter *httpkit.AuthRateLimiter
	// PublicLimiter is the fixed-window limiter for request-creation routes.
	PublicLimiter *httpkit.WindowLimiter
	// Logger is the structured logger shared with middleware.
	Logger *logger.Logger
}
