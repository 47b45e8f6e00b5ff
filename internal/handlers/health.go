package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/companies/internal/repository"
	log "github.com/sirupsen/logrus"
)

type HealthHandler struct {
	backend repository.Backend
}

func NewHealthHandler(backend repository.Backend) *HealthHandler {
	return &HealthHandler{backend: backend}
}

// HealthCheck pings the store so a lost database connection shows up as
// 503 rather than as failures on every other route.
func (h *HealthHandler) HealthCheck(ctx *gin.Context) {
	start := time.Now()

	if err := h.backend.Ping(ctx.Request.Context()); err != nil {
		log.WithError(err).Warn("Health check failed")
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unavailable",
			"database":  h.backend.Name(),
			"error":     "database unreachable",
			"timestamp": time.Now().Format(time.RFC3339),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"database":   h.backend.Name(),
		"latency_ms": time.Since(start).Milliseconds(),
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}
