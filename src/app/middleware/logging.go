package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"udin/src/infra/logger"
	"udin/src/infra/metrics"
)

// skipPrefixes are static asset paths that are neither logged nor measured.
var skipPrefixes = []string{
	"/_next/static",
	"/_next/image",
	"/static/",
	"/favicon.ico",
}

func skipped(path string) bool {
	for _, p := range skipPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Logging logs each request on arrival and after the rest of the chain has
// run, and records request metrics. The reported duration covers every
// downstream handler, including one that panics. m may be nil.
//
// It reads the ID set by RequestID, so it must be registered after it.
func Logging(log *slog.Logger, m *metrics.Metrics) gin.HandlerFunc {
	log = logger.WithComponent(log, "http")

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skipped(path) {
			c.Next()
			return
		}

		start := time.Now()
		method := c.Request.Method
		requestID := GetRequestID(c)

		log.Info(fmt.Sprintf("[%s] %s %s - Request received", requestID, method, path))

		finish := func(status int) {
			elapsed := time.Since(start)

			route := c.FullPath()
			if route == "" {
				route = "unmatched"
			}
			m.ObserveHTTP(method, route, status, elapsed)

			msg := fmt.Sprintf("[%s] %s %s - Request processed in %dms", requestID, method, path, elapsed.Milliseconds())
			switch {
			case status >= 500:
				log.Error(msg, "status", status)
			case status >= 400:
				log.Warn(msg, "status", status)
			default:
				log.Info(msg, "status", status)
			}
		}

		// A panicking handler is recorded as a 500 before Recovery answers it.
		defer func() {
			if p := recover(); p != nil {
				finish(http.StatusInternalServerError)
				panic(p)
			}
		}()

		c.Next()

		finish(c.Writer.Status())
	}
}
