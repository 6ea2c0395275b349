package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/pos/backend/internal/infrastructure/telemetry"
)

// HTTPMetrics records request count, latency and in-flight requests on the
// Prometheus registry behind m. Routes are labelled with their pattern
// ("/api/v1/products/:id"), never the raw path. A nil m disables it.
func HTTPMetrics(m *telemetry.HTTPMetrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		done := m.Begin()
		c.Next()
		done(c.Request.Method, c.FullPath(), c.Writer.Status())
	}
}

// HTTPMetricsStatusGroup groups a status code by class (2xx, 4xx, 5xx)
func HTTPMetricsStatusGroup(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500:
		return "5xx"
	default:
		return "other"
	}
}
