// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"compras/internal/domain/audit"
	"compras/internal/domain/auth"
	"compras/internal/domain/catalogs/supplier"
	"compras/internal/domain/invoices"
	"compras/internal/domain/reports"
	"compras/internal/infrastructure/http/v1/handlers"
	"compras/internal/infrastructure/http/v1/middleware"
	"compras/pkg/logger"
)

// RouterConfig holds the wired services the router exposes.
type RouterConfig struct {
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	AuthService     *auth.Service
	SupplierService *supplier.Service
	InvoiceService  *invoices.Service
	ReportsService  *reports.Service
	AuditService    *audit.Service

	// Upstreams for readiness checks
	Upstreams map[string]handlers.Pinger

	Version string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Compress())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Version, cfg.Upstreams)
	healthHandler.RegisterRoutes(router.Group("/health"))

	baseHandler := handlers.NewBaseHandler()

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth: login is public, /me requires a token
		authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)
		publicAuth := v1.Group("/auth")
		protectedAuth := v1.Group("/auth")
		protectedAuth.Use(middleware.Auth(cfg.JWTValidator))
		authHandler.RegisterRoutes(publicAuth, protectedAuth)

		// Everything else requires a token; UserContext propagates the actor
		// id down to store writes.
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))
		protected.Use(middleware.UserContext())

		supplierHandler := handlers.NewSupplierHandler(baseHandler, cfg.SupplierService)
		supplierHandler.RegisterRoutes(protected.Group("/suppliers"))

		invoiceHandler := handlers.NewInvoiceHandler(baseHandler, cfg.InvoiceService)
		invoiceHandler.RegisterRoutes(protected.Group("/invoices"))

		reportsHandler := handlers.NewReportsHandler(baseHandler, cfg.ReportsService)
		reportsHandler.RegisterRoutes(protected.Group("/reports"))

		auditHandler := handlers.NewAuditHandler(baseHandler, cfg.AuditService)
		auditHandler.RegisterRoutes(protected.Group("/audit"))
	}

	return router
}
