package middleware

import "github.com/gin-gonic/gin"

// SafeHeader adds security-related headers to each response.
// hsts also enables Strict-Transport-Security, only meaningful behind TLS.
func SafeHeader(hsts bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store")
		h.Del("X-Powered-By")
		if hsts {
			h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}

		c.Next()
	}
}
