package handler

import (
	"net/http"
	"strings"

	"servant_backend/internal/siteconfig/service"
	"servant_backend/internal/siteconfig/transport"
	"servant_backend/platform/httpkit"
	"servant_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for site configuration.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new site configuration handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterPublicRoutes registers the read-only site content routes.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/business", h.GetBusiness)
	rg.GET("/menu", h.GetMenu)
	rg.GET("/gallery", h.GetGallery)
	rg.GET("/specialty-images", h.GetSpecialtyImages)
}

// RegisterAdminRoutes registers the owner-only editing routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.PUT("/business", h.UpdateBusiness)
	rg.PUT("/menu", h.UpdateMenu)
	rg.PUT("/specialty-images", h.UpdateSpecialtyImages)
	rg.POST("/gallery/upload-url", h.CreateGalleryUploadURL)
	rg.POST("/gallery", h.AddGalleryImage)
	rg.DELETE("/gallery/*key", h.DeleteGalleryImage)
}

// GetBusiness handles GET /api/v1/site/business
func (h *Handler) GetBusiness(c *gin.Context) {
	info, err := h.svc.Business(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, info)
}

// UpdateBusiness handles PUT /api/v1/admin/site/business
func (h *Handler) UpdateBusiness(c *gin.Context) {
	var info transport.BusinessInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.svc.UpdateBusiness(c.Request.Context(), info); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, info)
}

// GetMenu handles GET /api/v1/site/menu
func (h *Handler) GetMenu(c *gin.Context) {
	menu, err := h.svc.Menu(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, menu)
}

// UpdateMenu handles PUT /api/v1/admin/site/menu
func (h *Handler) UpdateMenu(c *gin.Context) {
	var menu transport.MenuConfig
	if err := c.ShouldBindJSON(&menu); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	saved, err := h.svc.UpdateMenu(c.Request.Context(), menu)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, saved)
}

// GetGallery handles GET /api/v1/site/gallery
func (h *Handler) GetGallery(c *gin.Context) {
	gallery, err := h.svc.Gallery(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gallery)
}

// CreateGalleryUploadURL handles POST /api/v1/admin/site/gallery/upload-url
func (h *Handler) CreateGalleryUploadURL(c *gin.Context) {
	var req transport.GalleryUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	signed, err := h.svc.CreateGalleryUploadURL(c.Request.Context(), req.FileName, req.ContentType, req.SizeBytes)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, signed)
}

// AddGalleryImage handles POST /api/v1/admin/site/gallery
func (h *Handler) AddGalleryImage(c *gin.Context) {
	var req transport.AddGalleryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	gallery, err := h.svc.AddGalleryImage(c.Request.Context(), req.Key, req.Caption)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, gallery)
}

// DeleteGalleryImage handles DELETE /api/v1/admin/site/gallery/*key
func (h *Handler) DeleteGalleryImage(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if err := h.svc.DeleteGalleryImage(c.Request.Context(), key); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSpecialtyImages handles GET /api/v1/site/specialty-images
func (h *Handler) GetSpecialtyImages(c *gin.Context) {
	images, err := h.svc.SpecialtyImages(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, images)
}

// UpdateSpecialtyImages handles PUT /api/v1/admin/site/specialty-images
func (h *Handler) UpdateSpecialtyImages(c *gin.Context) {
	var images transport.SpecialtyImages
	if err := c.ShouldBindJSON(&images); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.svc.UpdateSpecialtyImages(c.Request.Context(), images); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, images)
}
