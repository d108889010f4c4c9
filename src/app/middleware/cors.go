package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"udin/src/infra/config"
)

// CORS adds CORS headers for the configured origin and short-circuits
// OPTIONS preflight requests.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	const (
		allowedMethods = "GET, HEAD, OPTIONS"
		allowedHeaders = "Content-Type, " + RequestIDHeader
		maxAge         = "600"
	)

	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", cfg.AllowedOrigin)
		c.Header("Access-Control-Allow-Methods", allowedMethods)
		c.Header("Access-Control-Allow-Headers", allowedHeaders)
		c.Header("Access-Control-Expose-Headers", RequestIDHeader)
		c.Header("Access-Control-Max-Age", maxAge)
		if cfg.AllowedOrigin != "*" {
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
