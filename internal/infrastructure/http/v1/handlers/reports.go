package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"compras/internal/core/apperror"
	"compras/internal/domain/reports"
)

const dateLayout = "2006-01-02"

// ReportsHandler handles report endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// SupplierBalances handles GET /reports/supplier-balances?from=...&to=...
func (h *ReportsHandler) SupplierBalances(c *gin.Context) {
	from, to, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	report, err := h.service.SupplierBalances(c.Request.Context(), from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// SupplierBalancesPDF handles GET /reports/supplier-balances/pdf?from=...&to=...
func (h *ReportsHandler) SupplierBalancesPDF(c *gin.Context) {
	from, to, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	report, err := h.service.SupplierBalances(c.Request.Context(), from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	pdf, err := reports.RenderBalancesPDF(report)
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="saldos-proveedores.pdf"`)
	c.Data(200, "application/pdf", pdf)
}

// parsePeriod reads the report period from query parameters. Missing bounds
// default to the current month.
func (h *ReportsHandler) parsePeriod(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(dateLayout, v)
		if err != nil {
			h.Error(c, apperror.NewValidation("from must be yyyy-MM-dd").
				WithDetail("value", v))
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}

	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(dateLayout, v)
		if err != nil {
			h.Error(c, apperror.NewValidation("to must be yyyy-MM-dd").
				WithDetail("value", v))
			return time.Time{}, time.Time{}, false
		}
		to = parsed
	}

	if to.Before(from) {
		h.Error(c, apperror.NewValidation("to must not be before from"))
		return time.Time{}, time.Time{}, false
	}

	return from, to, true
}

// RegisterRoutes registers report routes.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/supplier-balances", h.SupplierBalances)
	rg.GET("/supplier-balances/pdf", h.SupplierBalancesPDF)
}
