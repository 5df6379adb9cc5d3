// Package handler exposes the owner login endpoint.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"servant_backend/internal/auth/service"
	"servant_backend/internal/auth/transport"
	"servant_backend/platform/httpkit"
	"servant_backend/platform/validator"
)

// Handler serves the owner authentication routes.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates the auth handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Login handles POST /api/v1/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if err := h.val.Struct(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	token, err := h.svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpkit.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		httpkit.Error(c, http.StatusInternalServerError, "sign-in failed", nil)
		return
	}

	httpkit.OK(c, transport.LoginResponse{Token: token})
}
