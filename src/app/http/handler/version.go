package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"udin/src/app/http/dto"
	"udin/src/app/http/response"
	"udin/src/app/middleware"
	"udin/src/core/domain"
	"udin/src/core/usecase"
	"udin/src/infra/logger"
)

const descriptorMissing = "The version.json file does not exist. It is generated during the build process."

// VersionHandler serves the build-time version descriptor.
type VersionHandler struct {
	versionService *usecase.VersionService
	log            *slog.Logger
}

// NewVersionHandler creates a new VersionHandler.
func NewVersionHandler(versionService *usecase.VersionService, log *slog.Logger) *VersionHandler {
	return &VersionHandler{
		versionService: versionService,
		log:            log,
	}
}

// Version returns the descriptor exactly as written at build time.
// GET /api/version
func (h *VersionHandler) Version(c *gin.Context) {
	raw, err := h.versionService.Read(c.Request.Context())
	switch {
	case err == nil:
		response.JSON(c, http.StatusOK, raw)
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, dto.VersionError{
			Error:   "Version information not available",
			Message: descriptorMissing,
		})
	default:
		logger.WithRequestID(h.log, middleware.GetRequestID(c)).Error("error serving version information", "error", err)
		c.JSON(http.StatusInternalServerError, dto.VersionError{
			Error:   "Failed to retrieve version information",
			Message: err.Error(),
		})
	}
}
