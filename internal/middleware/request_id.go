package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/gin-gonic/gin"
)

const requestIDHeader = "X-Request-Id"

// Caller-supplied ids longer than this are replaced, they are meant
// for log correlation, not payload smuggling.
const maxRequestIDLen = 64

type requestIDKey struct{}

// RequestID tags every request with a correlation id, echoing a sane
// caller-supplied one or minting a fresh one. The id travels on the
// response header and in the request context so error logs can carry
// it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" || len(id) > maxRequestIDLen {
			id = newRequestID()
		}
		c.Writer.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(c.Request.Context(), requestIDKey{}, id)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequestIDFrom returns the correlation id stashed by RequestID, or
// an empty string outside a request.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func newRequestID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
