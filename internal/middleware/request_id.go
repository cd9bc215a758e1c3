package middleware

import (
	"regexp"

	"starhr/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// Request ids are copied onto outbox rows (varchar(64)) and log lines.
const maxRequestIDLen = 64

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// RequestID reuses a well formed X-Request-ID from the caller and mints a
// uuid otherwise.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if !validRequestID(rid) {
			rid = uuid.NewString()
		}

		c.Set("request_id", rid)
		c.Request = c.Request.WithContext(contextutil.WithRequestID(c.Request.Context(), rid))
		c.Header(RequestIDHeader, rid)
		c.Next()
	}
}

func validRequestID(rid string) bool {
	return rid != "" && len(rid) <= maxRequestIDLen && requestIDPattern.MatchString(rid)
}
