package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samvad-hq/samvad-api-relay/pkg/apiclient"
)

// Recovery turns handler panics into 500 responses and logs them.
func Recovery(log apiclient.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf("panic recovered: %v | %s %s", r, c.Request.Method, c.Request.URL.Path)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}
