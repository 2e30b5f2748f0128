package middleware

import (
	"strconv"

	"lendshare/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware counts requests per route template, not per raw
// path, to keep label cardinality bounded.
func MetricsMiddleware() gin.HandlerFunc {
	metrics.Register()
	return func(c *gin.Context) {
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.IncHTTP(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status()))
	}
}
