package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID carries the per-request correlation id.
const HeaderRequestID = "X-Request-Id"

// RequestID ensures every request carries an X-Request-Id, generating one
// when the caller did not send it. The id is echoed on the response and left
// on the inbound headers so proxied upstreams receive it too.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
			c.Request.Header.Set(HeaderRequestID, id)
		}
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}
