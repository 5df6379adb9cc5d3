package handler

import (
	"io"
	"net/http"

	"servant_backend/internal/pricing/service"
	"servant_backend/internal/pricing/transport"
	"servant_backend/platform/httpkit"
	"servant_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for pricing.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new pricing handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterPublicRoutes registers the public pricing routes. The estimate
// middleware throttles the preview endpoint.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup, estimateMiddleware ...gin.HandlerFunc) {
	rg.GET("", h.GetConfig)
	rg.POST("/estimate", append(estimateMiddleware, h.Estimate)...)
}

// RegisterAdminRoutes registers the owner-only pricing routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.PUT("", h.UpdateConfig)
}

// GetConfig handles GET /api/v1/pricing
func (h *Handler) GetConfig(c *gin.Context) {
	cfg, err := h.svc.Config(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, cfg)
}

// UpdateConfig handles PUT /api/v1/admin/pricing
func (h *Handler) UpdateConfig(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	cfg, err := h.svc.UpdateConfig(c.Request.Context(), raw)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, cfg)
}

// Estimate handles POST /api/v1/pricing/estimate
func (h *Handler) Estimate(c *gin.Context) {
	var req transport.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	estimate, err := h.svc.Estimate(c.Request.Context(), transport.EstimateInput{
		EventType:    req.EventType,
		ServiceStyle: req.ServiceStyle,
		GuestCount:   req.GuestCount,
		AddOnIDs:     req.AddOnIDs,
		Meal:         req.Meal,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, estimate)
}
