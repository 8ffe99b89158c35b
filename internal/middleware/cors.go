package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// The API carries no auth headers; browsers only need to send JSON
// bodies and read back the request id.
const (
	corsMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsHeaders = "Content-Type, X-Request-Id"
	corsMaxAge  = "300"
)

// CORS admits browser clients from the configured origins. An empty
// allowlist opens the API to any origin, which is the single-user
// local deployment default.
func CORS(allowlist []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowlist))
	for _, origin := range allowlist {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		allowed[trimmed] = struct{}{}
	}
	allowAll := len(allowed) == 0
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			writeCORSHeaders(c, "*")
		case origin != "":
			if _, ok := allowed[origin]; ok {
				writeCORSHeaders(c, origin)
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func writeCORSHeaders(c *gin.Context, origin string) {
	h := c.Writer.Header()
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Access-Control-Allow-Methods", corsMethods)
	h.Set("Access-Control-Allow-Headers", corsHeaders)
	h.Set("Access-Control-Expose-Headers", requestIDHeader)
	h.Set("Access-Control-Max-Age", corsMaxAge)
}
