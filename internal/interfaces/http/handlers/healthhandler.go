package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/promptpilot/promptpilot/internal/shared/logger"
	"github.com/promptpilot/promptpilot/internal/shared/utils"
)

// Pinger checks a backing store.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	ping   Pinger
	logger logger.Interface
}

func NewHealthHandler(ping Pinger, logger logger.Interface) *HealthHandler {
	return &HealthHandler{ping: ping, logger: logger}
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			h.logger.Errorw("health check failed", "error", err)
			utils.SuccessResponse(c, http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	utils.SuccessResponse(c, http.StatusOK, gin.H{"status": "ok"})
}
