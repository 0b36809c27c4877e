package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/apperr"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/logger"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/metrics"
)

const (
	MsgNoToken      = "Unauthorized: No token provided"
	MsgInvalidToken = "Forbidden: Invalid token"
)

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) error
}

// AuthMiddleware returns a Gin middleware that verifies Bearer tokens using the provided verifier.
// It is a pass/fail gate: nothing is attached to the request on success.
func AuthMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			metrics.AuthFailures.WithLabelValues("missing").Inc()
			e := apperr.Auth(MsgNoToken)
			c.AbortWithStatusJSON(e.Status(), e.Body())
			return
		}

		if err := ver.Verify(c.Request.Context(), token); err != nil {
			logger.FromContext(c.Request.Context()).Error().Err(err).Msg("token verification failed")
			metrics.AuthFailures.WithLabelValues("invalid").Inc()
			e := apperr.Forbidden(MsgInvalidToken)
			c.AbortWithStatusJSON(e.Status(), e.Body())
			return
		}
		c.Next()
	}
}

// bearerToken returns the second space-separated part of an
// "Authorization: Bearer <token>" header, or "" when there is none.
func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// abortJSON is shared by the limiters.
func abortJSON(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, apperr.Body{Message: msg})
}
