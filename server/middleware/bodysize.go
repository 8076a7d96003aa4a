package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dodd623/lucidscript/util"
)

// Uploads carry whole recordings, so the fallback limit is large.
const defaultMaxBodySize = 200 * 1024 * 1024

// BodySizeLimit returns middleware that restricts the request body to the
// given size string (e.g. "200MB", "512KB", "1GB").
func BodySizeLimit(maxSize string) gin.HandlerFunc {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, size)
		c.Next()
	}
}
