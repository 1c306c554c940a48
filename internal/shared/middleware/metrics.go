package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storelink/paygate/internal/utils/metrics"
)

// Metrics returns a middleware recording request counts, durations and
// the in-flight gauge per route pattern. Health checks and Prometheus
// scrapes are not recorded.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		if path == "/healthz" || path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		method := c.Request.Method

		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		c.Next()

		m.RecordHTTPRequest(method, path, c.Writer.Status(), time.Since(start))
	}
}
