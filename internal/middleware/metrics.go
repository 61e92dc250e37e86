package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samvad-hq/samvad-api-relay/internal/metrics"
)

// Metrics records counts and latencies for requests handled under the named
// upstream mount.
func Metrics(m *metrics.Metrics, upstream string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.Observe(upstream, c.Writer.Status(), time.Since(start))
	}
}
