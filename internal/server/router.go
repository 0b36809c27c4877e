// Package server assembles the HTTP engine: global middleware, the blog
// routes and the operational endpoints.
package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/gogotex/backend/blog-service/handlers"
	"github.com/gogotex/gogotex/backend/blog-service/internal/blog/handler"
	"github.com/gogotex/gogotex/backend/blog-service/internal/blog/service"
	"github.com/gogotex/gogotex/backend/blog-service/internal/config"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Options carries everything NewRouter wires together.
type Options struct {
	Service  service.Service
	Verifier middleware.Verifier

	// AuthRequired mounts the authorization filter on POST, PUT and DELETE.
	AuthRequired bool

	RateLimit   config.RateLimitConfig
	Redis       *redis.Client
	CORSOrigins []string

	// Checks back the /ready endpoint, keyed by dependency name.
	Checks map[string]handlers.Check
}

// NewRouter builds the gin engine. Middleware order: recovery, trace id,
// request logger, CORS, metrics, then the rate limiter when enabled.
func NewRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.TraceID(),
		middleware.RequestLogger(),
		middleware.CORS(opts.CORSOrigins),
		middleware.Metrics(),
	)

	if opts.RateLimit.Enabled {
		if opts.RateLimit.UseRedis && opts.Redis != nil {
			win := time.Duration(opts.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(opts.Redis, opts.RateLimit.RPS, opts.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(opts.RateLimit.RPS, opts.RateLimit.Burst))
		}
	}

	var guard []gin.HandlerFunc
	if opts.AuthRequired && opts.Verifier != nil {
		guard = append(guard, middleware.AuthMiddleware(opts.Verifier))
	}
	handler.RegisterBlogRoutes(r, opts.Service, guard...)

	handlers.RegisterHealth(r, opts.Checks)
	handlers.RegisterSwagger(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
