package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"scribe/internal/app/metrics"
)

// Metrics records request counts and latencies by matched route.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
