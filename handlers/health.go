package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/logger"
)

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

// readyTimeout bounds every readiness probe.
const readyTimeout = 2 * time.Second

// RegisterHealth mounts /start, /health and /ready. /ready returns 503 when
// any check fails.
func RegisterHealth(r gin.IRouter, checks map[string]Check) {
	started := time.Now()

	r.GET("/start", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello World!")
	})

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		ready := true
		deps := map[string]bool{}
		for name, check := range checks {
			err := check(ctx)
			deps[name] = err == nil
			if err != nil {
				ready = false
				logger.FromContext(ctx).Warn().Err(err).Str("dependency", name).Msg("readiness check failed")
			}
		}

		uptime := time.Since(started).String()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	})
}
