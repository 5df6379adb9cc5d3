// Package bookings provides the booking workflow domain module: request
// intake, the approve/reject state machine, and availability slots.
package bookings

import (
	"time"

	"servant_backend/internal/bookings/calendar"
	"servant_backend/internal/bookings/handler"
	"servant_backend/internal/bookings/service"
	apphttp "servant_backend/internal/http"
	"servant_backend/internal/invoicing"
	pricingservice "servant_backend/internal/pricing/service"
	"servant_backend/internal/scheduler"
	"servant_backend/platform/config"
	"servant_backend/platform/events"
	"servant_backend/platform/logger"
	"servant_backend/platform/validator"
)

// Module represents the bookings domain module
type Module struct {
	handler       *handler.Handler
	publicHandler *handler.PublicHandler
	service       *service.Service
}

// NewModule creates a new bookings module with all dependencies wired
func NewModule(store calendar.BookingStore, pricing *pricingservice.Service, issuer invoicing.Issuer, cfg config.CalendarConfig, loc *time.Location, eventBus *events.InMemoryBus, log *logger.Logger, val *validator.Validator) *Module {
	svc := service.New(store, pricing, issuer, cfg, loc, log)
	svc.SetEventBus(eventBus)
	h := handler.New(svc, val)
	ph := handler.NewPublicHandler(svc, val)

	return &Module{
		handler:       h,
		publicHandler: ph,
		service:       svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "bookings"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// SetReminderScheduler wires the reminder queue into the booking workflow.
func (m *Module) SetReminderScheduler(rs scheduler.ReminderScheduler) {
	m.service.SetReminderScheduler(rs)
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	adminBookings := ctx.Admin.Group("/bookings")
	m.handler.RegisterRoutes(adminBookings)

	// Public routes, creation throttled per client IP
	publicBookings := ctx.V1.Group("/bookings")
	limit := ctx.PublicLimiter.LimitRoute("bookings", ctx.RateLimits.GetBookingRateLimit(), ctx.RateLimits.GetBookingRateWindow(), ctx.Logger)
	m.publicHandler.RegisterRoutes(publicBookings, limit)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
