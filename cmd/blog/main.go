package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/gogotex/backend/blog-service/handlers"
	"github.com/gogotex/gogotex/backend/blog-service/internal/blog/repository"
	"github.com/gogotex/gogotex/backend/blog-service/internal/blog/service"
	"github.com/gogotex/gogotex/backend/blog-service/internal/config"
	"github.com/gogotex/gogotex/backend/blog-service/internal/database"
	"github.com/gogotex/gogotex/backend/blog-service/internal/server"
	"github.com/gogotex/gogotex/backend/blog-service/internal/tokens"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/logger"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// initialize logging early; LOG_LEVEL from config is applied once loaded
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())
	if cfg.JWT.UsingDefaultSecret() {
		logger.Warn("JWT_SECRET not set, using the development secret")
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checks := map[string]handlers.Check{}

	var svc service.Service
	switch cfg.Store.Backend {
	case config.BackendMemory:
		logger.Warn("using in-memory store; posts are lost on restart")
		svc = service.NewMemoryService()
	default:
		client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err != nil {
			logger.Fatalf("failed to connect to MongoDB: %v", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		dbName := cfg.MongoDB.Database
		if dbName == "" {
			if dbName, err = database.DatabaseName(cfg.MongoDB.URI, "dev-db"); err != nil {
				logger.Fatalf("invalid MONGO_URI: %v", err)
			}
		}
		logger.Infof("connected to MongoDB (database=%s)", dbName)
		svc = service.NewMongoService(client.Database(dbName).Collection(repository.Collection))
		checks["mongo"] = database.Pinger(client)
	}

	var rdb *redis.Client
	if addr := cfg.Redis.Addr(); addr != "" && cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis {
		rdb = redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v", addr, err)
		} else {
			logger.Infof("connected to Redis for rate limiting: %s", addr)
		}
		defer func() { _ = rdb.Close() }()
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	r := server.NewRouter(server.Options{
		Service:      svc,
		Verifier:     tokens.NewHMACVerifier(cfg.JWT.Secret),
		AuthRequired: cfg.Auth.Required,
		RateLimit:    cfg.RateLimit,
		Redis:        rdb,
		CORSOrigins:  cfg.CORS.AllowedOrigins,
		Checks:       checks,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Server is running on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatalf("server failed: %v", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}
