package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"compras/internal/domain/invoices"
	"compras/internal/infrastructure/http/v1/dto"
)

// InvoiceHandler handles invoice and line item endpoints.
type InvoiceHandler struct {
	*BaseHandler
	service *invoices.Service
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(base *BaseHandler, service *invoices.Service) *InvoiceHandler {
	return &InvoiceHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(dto.FromInvoices(items)))
}

// Get handles GET /invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	inv, lines, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.InvoiceDetailResponse{
		InvoiceResponse: dto.FromInvoice(inv),
		LineItems:       dto.FromLineItems(lines),
	})
}

// Create handles POST /invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req dto.InvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv, err := req.ToDomain()
	if err != nil {
		h.Error(c, err)
		return
	}

	inputs, err := req.ToLineInputs()
	if err != nil {
		h.Error(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), inv, inputs)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromInvoice(created))
}

// Update handles PUT /invoices/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.InvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv, err := req.ToDomain()
	if err != nil {
		h.Error(c, err)
		return
	}
	inv.ID = id

	updated, err := h.service.Update(c.Request.Context(), inv)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromInvoice(updated))
}

// Delete handles DELETE /invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Cancel handles POST /invoices/:id/cancel
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	updated, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromInvoice(updated))
}

// Print handles POST /invoices/:id/print
func (h *InvoiceHandler) Print(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	updated, err := h.service.Print(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromInvoice(updated))
}

// ListLineItems handles GET /invoices/:id/line-items
func (h *InvoiceHandler) ListLineItems(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	items, err := h.service.ListLineItems(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(dto.FromLineItems(items)))
}

// AddLineItem handles POST /invoices/:id/line-items
func (h *InvoiceHandler) AddLineItem(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.LineItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	created, err := h.service.AddLineItem(c.Request.Context(), id, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromLineItem(created))
}

// UpdateLineItem handles PUT /invoices/:id/line-items/:lineId
func (h *InvoiceHandler) UpdateLineItem(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	lineID, ok := h.ParseIDParam(c, "lineId")
	if !ok {
		return
	}

	var req dto.LineItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	updated, err := h.service.UpdateLineItem(c.Request.Context(), lineID, id, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromLineItem(updated))
}

// DeleteLineItem handles DELETE /invoices/:id/line-items/:lineId
func (h *InvoiceHandler) DeleteLineItem(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	lineID, ok := h.ParseIDParam(c, "lineId")
	if !ok {
		return
	}

	if err := h.service.DeleteLineItem(c.Request.Context(), lineID, id); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers invoice routes.
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/cancel", h.Cancel)
	rg.POST("/:id/print", h.Print)
	rg.GET("/:id/line-items", h.ListLineItems)
	rg.POST("/:id/line-items", h.AddLineItem)
	rg.PUT("/:id/line-items/:lineId", h.UpdateLineItem)
	rg.DELETE("/:id/line-items/:lineId", h.DeleteLineItem)
}
