package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agent_arena/internal/arena"
	"agent_arena/internal/config"
	"agent_arena/internal/db"
	"agent_arena/internal/engine"
	httpServer "agent_arena/internal/http"
	"agent_arena/internal/http/middleware"
	"agent_arena/internal/logger"
	"agent_arena/internal/ranking"
	"agent_arena/internal/repository"
	"agent_arena/internal/service"
	"agent_arena/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT()

	store := arena.NewMemoryStore()
	hub := ws.NewHub()
	sink := engine.MultiSink{hub}

	// Archival persistence is optional; the engine runs fully in memory.
	var dbPool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		dbPool = db.Connect(cfg.DatabaseURL)
		defer dbPool.Close()

		archiver := service.NewArchiver(
			store,
			repository.NewMatchRepository(dbPool),
			repository.NewAgentRepository(dbPool),
			repository.NewRatingRepository(dbPool),
		)
		sink = append(sink, archiver)
	} else {
		logger.Warn("DATABASE_URL not set, match archiving disabled")
	}

	updater := ranking.NewUpdater(store)
	scheduler := arena.NewScheduler(store, cfg.Timing, cfg.Rules, sink, updater)
	defer scheduler.Close()
	matchmaker := arena.NewMatchmaker(store, scheduler, cfg.Rules)

	middleware.InitRedisRateLimiter(cfg.RedisAddr, os.Getenv("REDIS_PASSWORD"), 0)

	r := gin.Default()

	// CORS for agent clients on other origins
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	httpServer.RegisterRoutes(r, store, scheduler, matchmaker, hub, dbPool, version)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
