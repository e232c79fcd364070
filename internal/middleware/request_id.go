package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ContextRequestID = "request_id"

	// longer ids from the client are replaced to keep logs clean
	requestIDMaxLen = 64
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.NewString()
		}

		c.Set(ContextRequestID, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}
