package middleware

import (
	"strconv"
	"time"

	"spincraft-tracker/internal/observability"

	"github.com/gin-gonic/gin"
)

// Metrics records request count and latency per route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		observability.HTTPRequests().WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		observability.HTTPDuration().WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
