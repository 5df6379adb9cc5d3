// Package siteconfig provides the editable site content module: business
// profile, menu, gallery, and specialty images.
package siteconfig

import (
	"servant_backend/internal/adapters/storage"
	apphttp "servant_backend/internal/http"
	"servant_backend/internal/siteconfig/handler"
	"servant_backend/internal/siteconfig/service"
	"servant_backend/internal/siteconfig/store"
	"servant_backend/platform/logger"
	"servant_backend/platform/validator"
)

// Module represents the site configuration domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new site configuration module with all dependencies wired
func NewModule(docs store.DocumentStore, objStorage storage.StorageService, galleryBucket string, log *logger.Logger, val *validator.Validator) *Module {
	svc := service.NewService(docs, objStorage, galleryBucket, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "siteconfig"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public routes, no auth middleware
	site := ctx.V1.Group("/site")
	m.handler.RegisterPublicRoutes(site)

	adminSite := ctx.Admin.Group("/site")
	m.handler.RegisterAdminRoutes(adminSite)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
