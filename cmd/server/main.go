// Package main is the entry point for the compras API server.
// It exposes the procurement module over HTTP and proxies persistence to the
// remote procurement store, product catalog and security service.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"compras/internal/domain/audit"
	"compras/internal/domain/auth"
	"compras/internal/domain/catalogs/supplier"
	"compras/internal/domain/invoices"
	"compras/internal/domain/reports"
	v1 "compras/internal/infrastructure/http/v1"
	"compras/internal/infrastructure/http/v1/handlers"
	"compras/internal/infrastructure/remote"
	"compras/pkg/logger"
)

const version = "1.0.0"

func main() {
	// Local development settings; missing file is fine in containers
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.Info("starting compras server")

	// --- Remote services ---
	remoteTimeout := getEnvDuration("REMOTE_TIMEOUT", 30*time.Second)

	storeClient := remote.NewClient("procurement-store", remote.Config{
		BaseURL: mustEnv("COMPRAS_API_URL"),
		Timeout: remoteTimeout,
	})
	catalogClient := remote.NewClient("product-catalog", remote.Config{
		BaseURL: mustEnv("PRODUCTS_API_URL"),
		Timeout: remoteTimeout,
	})
	securityClient := remote.NewClient("security-service", remote.Config{
		BaseURL: mustEnv("SECURITY_API_URL"),
		Timeout: remoteTimeout,
	})

	invoiceRepo := remote.NewInvoiceRepo(storeClient)
	lineItemRepo := remote.NewLineItemRepo(storeClient)
	supplierRepo := remote.NewSupplierRepo(storeClient)
	productCatalog := remote.NewProductCatalog(catalogClient)
	security := remote.NewSecurityClient(securityClient)

	// --- JWT Service ---
	jwtSecret := getEnv("JWT_SECRET", "your-secret-key-change-in-production")
	jwtConfig := auth.DefaultJWTConfig(jwtSecret)
	if ttl := getEnvDuration("JWT_TTL", 0); ttl > 0 {
		jwtConfig.AccessTokenTTL = ttl
	}
	jwtService := auth.NewJWTService(jwtConfig)

	// --- Domain services ---
	authService := auth.NewService(security, jwtService)
	supplierService := supplier.NewService(supplierRepo)
	invoiceService := invoices.NewService(invoiceRepo, lineItemRepo, productCatalog)
	reportsService := reports.NewService(invoiceRepo, supplierRepo)
	auditService := audit.NewService(security)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:          log,
		JWTValidator:    jwtService,
		AuthService:     authService,
		SupplierService: supplierService,
		InvoiceService:  invoiceService,
		ReportsService:  reportsService,
		AuditService:    auditService,
		Upstreams: map[string]handlers.Pinger{
			"procurement-store": storeClient,
			"product-catalog":   catalogClient,
			"security-service":  securityClient,
		},
		Version: version,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
