// Package contact provides the public contact-form module.
package contact

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"servant_backend/internal/events"
	apphttp "servant_backend/internal/http"
	"servant_backend/platform/httpkit"
	"servant_backend/platform/logger"
	"servant_backend/platform/phone"
	"servant_backend/platform/validator"
)

// MessageRequest is the contact form payload.
type MessageRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required"`
}

// Module represents the contact domain module
type Module struct {
	eventBus events.Bus
	val      *validator.Validator
	log      *logger.Logger
}

// NewModule creates a new contact module
func NewModule(eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	return &Module{eventBus: eventBus, val: val, log: log}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "contact"
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	limit := ctx.PublicLimiter.LimitRoute("contact", ctx.RateLimits.GetContactRateLimit(), ctx.RateLimits.GetContactRateWindow(), ctx.Logger)
	ctx.V1.POST("/contact", limit, m.submit)
}

// submit handles POST /api/v1/contact
func (m *Module) submit(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if err := m.val.Struct(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		httpkit.Error(c, http.StatusBadRequest, "message is required", nil)
		return
	}

	m.eventBus.Publish(c.Request.Context(), events.ContactMessageReceived{
		BaseEvent: events.NewBaseEvent(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     phone.NormalizeE164(req.Phone),
		Message:   req.Message,
	})

	httpkit.OK(c, gin.H{"success": true})
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
