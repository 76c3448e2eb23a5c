package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"compras/internal/core/apperror"
	appctx "compras/internal/core/context"
	"compras/internal/domain/auth"
	"compras/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	session, err := h.service.Login(ctx, req.ToCredentials())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSession(session))
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userCtx := appctx.GetUser(c.Request.Context())
	if userCtx == nil {
		h.Error(c, apperror.NewUnauthorized("not authenticated"))
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{
		ID:       userCtx.ActorID,
		Username: userCtx.Username,
		Role:     userCtx.Role,
		RoleID:   userCtx.RoleID,
	})
}

// RegisterRoutes registers auth routes.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/login", h.Login)
	protected.GET("/me", h.Me)
}
