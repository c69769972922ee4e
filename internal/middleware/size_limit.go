package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mitrevichin/Job-Tracking-App/internal/utilities"
)

// MultipartOverhead is the room left for multipart boundaries and part headers
const MultipartOverhead = int64(8 * 1024)

// SizeLimit rejects bodies larger than maxBodyBytes plus MultipartOverhead.
// A declared Content-Length over the limit fails immediately with 413, otherwise
// the body is wrapped so reading past the limit returns *http.MaxBytesError.
func SizeLimit(maxBodyBytes int64) gin.HandlerFunc {
	limit := maxBodyBytes + MultipartOverhead
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
				Error: "Request entity too large",
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
