package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger checks reachability of one upstream dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health and readiness endpoints.
type HealthHandler struct {
	version   string
	startedAt time.Time
	upstreams map[string]Pinger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(version string, upstreams map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		version:   version,
		startedAt: time.Now(),
		upstreams: upstreams,
	}
}

// Live handles GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready handles GET /health/ready. Reports degraded when an upstream service
// is unreachable; the API itself still serves what it can.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	overall := "ready"
	checks := make(map[string]string, len(h.upstreams))
	for name, p := range h.upstreams {
		if err := p.Ping(ctx); err != nil {
			checks[name] = "unreachable"
			status = http.StatusServiceUnavailable
			overall = "degraded"
		} else {
			checks[name] = "ok"
		}
	}

	c.JSON(status, gin.H{
		"status": overall,
		"checks": checks,
	})
}

// Info handles GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": h.version,
		"uptime":  time.Since(h.startedAt).String(),
	})
}

// RegisterRoutes registers health routes.
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/live", h.Live)
	rg.GET("/ready", h.Ready)
	rg.GET("/info", h.Info)
}
