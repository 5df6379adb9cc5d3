// Package pricing provides the quote estimation domain module.
package pricing

import (
	apphttp "servant_backend/internal/http"
	"servant_backend/internal/pricing/handler"
	"servant_backend/internal/pricing/service"
	"servant_backend/internal/siteconfig/store"
	"servant_backend/platform/validator"
)

// Module represents the pricing domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new pricing module with all dependencies wired
func NewModule(docs store.DocumentStore, val *validator.Validator) *Module {
	svc := service.New(docs)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "pricing"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public routes, estimate preview throttled per client IP
	pricing := ctx.V1.Group("/pricing")
	limit := ctx.PublicLimiter.LimitRoute("estimate", ctx.RateLimits.GetEstimateRateLimit(), ctx.RateLimits.GetEstimateRateWindow(), ctx.Logger)
	m.handler.RegisterPublicRoutes(pricing, limit)

	adminPricing := ctx.Admin.Group("/pricing")
	m.handler.RegisterAdminRoutes(adminPricing)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
