package httpserver

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"nexacrm/pkg/metrics"
)

// MetricsMiddleware records request latency per method/route/status.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
