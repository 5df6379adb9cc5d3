// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"servant_backend/platform/config"
	"servant_backend/platform/events"
	"servant_backend/platform/httpkit"
	"servant_backend/platform/logger"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
	config.RateLimitConfig
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration.
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is used for readiness checks (config store ping).
	Health HealthChecker
	// EventBus is the domain event bus for cross-module communication.
	EventBus events.Bus
	// PublicLimiter throttles the public request-creation endpoints.
	PublicLimiter *httpkit.WindowLimiter
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
