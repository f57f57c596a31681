package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/engagement-dashboard/internal/service"
)

// Metrics records dashboard request metrics labelled by route template. Requests that
// match no route share one label so probing scanners cannot grow the series set.
// Prometheus scrapes are not counted.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil || c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
