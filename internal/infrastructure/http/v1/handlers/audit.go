package handlers

import (
	"github.com/gin-gonic/gin"

	"compras/internal/domain/audit"
	"compras/internal/infrastructure/http/v1/dto"
)

// AuditHandler handles audit trail endpoints.
type AuditHandler struct {
	*BaseHandler
	service *audit.Service
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, service *audit.Service) *AuditHandler {
	return &AuditHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /audit
func (h *AuditHandler) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(entries))
}

// RegisterRoutes registers audit routes.
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
}
