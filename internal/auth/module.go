// Package auth provides the owner authentication module.
package auth

import (
	"servant_backend/internal/auth/handler"
	"servant_backend/internal/auth/service"
	apphttp "servant_backend/internal/http"
	"servant_backend/platform/config"
	"servant_backend/platform/logger"
	"servant_backend/platform/validator"
)

// Module represents the auth domain module
type Module struct {
	handler *handler.Handler
}

// NewModule creates a new auth module with its dependencies wired.
func NewModule(cfg config.AuthServiceConfig, log *logger.Logger, val *validator.Validator) *Module {
	svc := service.New(cfg, log)
	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "auth"
}

// RegisterRoutes registers the module's routes. The login route sits behind
// the stricter per-IP limiter so password guessing stays slow.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	rg := ctx.V1.Group("/auth")
	rg.POST("/login", ctx.AuthRateLimiter.RateLimit(), m.handler.Login)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
