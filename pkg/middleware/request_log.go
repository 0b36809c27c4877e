package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/logger"
)

// maxLoggedBody caps how much of a request body is buffered for logging.
const maxLoggedBody = 64 << 10

// RequestLogger logs method, path, body and Authorization header of every
// request on arrival, then status and duration once the handler chain returns.
// The body is restored so handlers can still read it.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.FromContext(c.Request.Context())
		start := time.Now()

		var body []byte
		if c.Request.Body != nil {
			b, err := io.ReadAll(io.LimitReader(c.Request.Body, maxLoggedBody))
			if err != nil {
				log.Warn().Err(err).Msg("read request body for logging")
			}
			body = b
			c.Request.Body = struct {
				io.Reader
				io.Closer
			}{io.MultiReader(bytes.NewReader(b), c.Request.Body), c.Request.Body}
		}

		ev := log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("auth", c.GetHeader("Authorization"))
		switch {
		case len(body) == 0:
			ev = ev.RawJSON("body", []byte("{}"))
		case json.Valid(body):
			ev = ev.RawJSON("body", body)
		default:
			ev = ev.Str("body", string(body))
		}
		ev.Msg("request")

		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Int("size", c.Writer.Size()).
			Msg("completed")
	}
}
