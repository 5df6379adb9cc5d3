package handler

import (
	"net/http"

	"servant_backend/internal/bookings/service"
	"servant_backend/internal/bookings/transport"
	"servant_backend/platform/httpkit"
	"servant_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// PublicHandler handles the visitor-facing booking routes.
type PublicHandler struct {
	svc *service.Service
	val *validator.Validator
}

// NewPublicHandler creates a new public bookings handler.
func NewPublicHandler(svc *service.Service, val *validator.Validator) *PublicHandler {
	return &PublicHandler{svc: svc, val: val}
}

// RegisterRoutes registers the public booking routes. The create route is
// expected to be mounted behind the request-creation rate limiter.
func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup, createMiddleware ...gin.HandlerFunc) {
	handlers := append([]gin.HandlerFunc{}, createMiddleware...)
	handlers = append(handlers, h.Create)
	rg.POST("", handlers...)
	rg.GET("/slots", h.AvailableSlots)
}

// Create handles POST /api/v1/bookings
func (h *PublicHandler) Create(c *gin.Context) {
	var req transport.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	id, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		// Never leak upstream details to visitors; the admin flow gets
		// specifics, the public funnel gets a generic retry message.
		if domainErr, ok := httpkit.AsAppError(err); ok && domainErr.HTTPStatus() < http.StatusInternalServerError {
			httpkit.HandleError(c, err)
			return
		}
		httpkit.Error(c, http.StatusInternalServerError, "something went wrong, please try again or call us", nil)
		return
	}

	httpkit.OK(c, transport.CreateBookingResponse{Success: true, EventID: id})
}

// AvailableSlots handles GET /api/v1/bookings/slots?date=YYYY-MM-DD
func (h *PublicHandler) AvailableSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httpkit.Error(c, http.StatusBadRequest, "date query parameter is required", nil)
		return
	}

	slots, err := h.svc.AvailableSlots(c.Request.Context(), date)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.SlotsResponse{Slots: slots})
}
