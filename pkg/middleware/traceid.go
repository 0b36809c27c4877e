package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/logger"
	"github.com/google/uuid"
)

const TraceIDHeader = "X-Trace-ID"

// TraceID attaches a request-scoped logger carrying trace_id to the request
// context. An incoming X-Trace-ID is reused; otherwise a UUID is generated.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		l := logger.L().With().Str("trace_id", traceID).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), &l))
		c.Header(TraceIDHeader, traceID)
		c.Next()
	}
}
