package handler

import (
	"net/http"

	"servant_backend/internal/bookings/service"
	"servant_backend/internal/bookings/transport"
	"servant_backend/platform/httpkit"
	"servant_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const msgInvalidRequest = "invalid request"

// Handler handles the owner-facing booking routes.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new bookings admin handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the admin booking routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
	rg.POST("/:id/approve", h.Approve)
	rg.POST("/:id/reject", h.Reject)
}

// List handles GET /api/v1/admin/bookings
func (h *Handler) List(c *gin.Context) {
	bookings, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, bookings)
}

// GetByID handles GET /api/v1/admin/bookings/:id
func (h *Handler) GetByID(c *gin.Context) {
	booking, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, booking)
}

// Approve handles POST /api/v1/admin/bookings/:id/approve
func (h *Handler) Approve(c *gin.Context) {
	var req transport.ApproveBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	result, err := h.svc.Approve(c.Request.Context(), c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ApproveBookingResponse{
		Success:    true,
		InvoiceID:  result.InvoiceID,
		InvoiceURL: result.InvoiceURL,
	})
}

// Reject handles POST /api/v1/admin/bookings/:id/reject
func (h *Handler) Reject(c *gin.Context) {
	if err := h.svc.Reject(c.Request.Context(), c.Param("id")); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"success": true})
}
