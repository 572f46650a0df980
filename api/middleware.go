package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminTokenHeader is the request header checked by AdminTokenMiddleware.
const AdminTokenHeader = "X-Admin-Token"

// AdminTokenMiddleware guards admin routes with a shared token. An empty
// configured token disables the check so local development stays friction
// free.
func AdminTokenMiddleware(token string) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		supplied := c.GetHeader(AdminTokenHeader)
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
			SendError(c, http.StatusUnauthorized, ErrorCodeUnauthorized, "Invalid or missing admin token")
			c.Abort()
			return
		}

		c.Next()
	})
}

// RequestSizeLimitMiddleware limits the size of request bodies to prevent memory exhaustion
func RequestSizeLimitMiddleware(maxSize int64) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		// Limit request body size
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	})
}

// CORSMiddleware adds CORS headers for cross-origin requests
func CORSMiddleware() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+AdminTokenHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
}
