// Package handler contains HTTP handlers for the API.
// Handlers are responsible for:
// - Calling use case methods
// - Converting results to HTTP responses
package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"udin/src/app/http/dto"
	"udin/src/app/middleware"
	"udin/src/core/usecase"
	"udin/src/infra/logger"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	healthService *usecase.HealthService
	log           *slog.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(healthService *usecase.HealthService, log *slog.Logger) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
		log:           log,
	}
}

// Health reports liveness and the running version.
// GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	status, err := h.healthService.Check(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromHealth(status))
}

// DetailedHealth adds per-component status. A degraded service answers 503.
// GET /api/health/detailed
func (h *HealthHandler) DetailedHealth(c *gin.Context) {
	status, err := h.healthService.CheckDetailed(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	code := http.StatusOK
	if status.Status != usecase.StatusOK {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, dto.FromHealth(status))
}

func (h *HealthHandler) fail(c *gin.Context, err error) {
	logger.WithRequestID(h.log, middleware.GetRequestID(c)).Error("health check error", "error", err)
	c.JSON(http.StatusInternalServerError, dto.HealthFailure(h.healthService.Now()))
}
