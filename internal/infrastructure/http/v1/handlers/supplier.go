package handlers

import (
	"github.com/gin-gonic/gin"

	"compras/internal/domain/catalogs/supplier"
	"compras/internal/infrastructure/http/v1/dto"
)

// SupplierHandler handles supplier catalog endpoints.
type SupplierHandler struct {
	*BaseHandler
	service *supplier.Service
}

// NewSupplierHandler creates a new supplier handler.
func NewSupplierHandler(base *BaseHandler, service *supplier.Service) *SupplierHandler {
	return &SupplierHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(dto.FromSuppliers(items)))
}

// Get handles GET /suppliers/:taxId
func (h *SupplierHandler) Get(c *gin.Context) {
	sup, err := h.service.GetByTaxID(c.Request.Context(), c.Param("taxId"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSupplier(sup))
}

// Create handles POST /suppliers
func (h *SupplierHandler) Create(c *gin.Context) {
	var req dto.SupplierRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(201, dto.FromSupplier(created))
}

// Update handles PUT /suppliers/:taxId
func (h *SupplierHandler) Update(c *gin.Context) {
	var req dto.SupplierRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sup := req.ToDomain()
	sup.TaxID = c.Param("taxId")

	updated, err := h.service.Update(c.Request.Context(), sup)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSupplier(updated))
}

// Delete handles DELETE /suppliers/:taxId
func (h *SupplierHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("taxId")); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers supplier routes.
func (h *SupplierHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:taxId", h.Get)
	rg.PUT("/:taxId", h.Update)
	rg.DELETE("/:taxId", h.Delete)
}
