package http

import (
	"os"
	"strconv"
	"time"

	"agent_arena/internal/arena"
	"agent_arena/internal/http/handlers"
	"agent_arena/internal/http/middleware"
	"agent_arena/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, store *arena.MemoryStore, scheduler *arena.Scheduler, matchmaker *arena.Matchmaker, hub *ws.Hub, db *pgxpool.Pool, version string) {
	h := handlers.NewHandler(store, scheduler, matchmaker)
	healthHandler := handlers.NewHealthHandler(db, version)

	// read limits from env, with safe defaults
	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateLimit = n
		}
	}
	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	// Match-action limiter is tighter and keyed by agent, one commit and
	// one reveal per phase is the honest usage pattern.
	actionRateLimit := 30
	if v := os.Getenv("ACTION_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			actionRateLimit = n
		}
	}

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	actionRL := middleware.ActionRateLimit(actionRateLimit, time.Minute)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))
	{
		// Registration is open; throttle it in-process so it works
		// even without Redis.
		v1.POST("/agents", middleware.SimpleRateLimit(10, time.Minute), h.Register)
		v1.GET("/me", middleware.JWT(), h.Me)

		v1.POST("/queue", middleware.JWT(), h.JoinQueue)
		v1.DELETE("/queue", middleware.JWT(), h.LeaveQueue)
		v1.GET("/queue/me", middleware.JWT(), h.QueueStatus)

		v1.GET("/matches/current", middleware.JWT(), h.CurrentMatch)
		v1.POST("/matches/:id/ready", middleware.JWT(), h.Ready)
		v1.POST("/matches/:id/rounds/:no/commit", middleware.JWT(), actionRL, h.Commit)
		v1.POST("/matches/:id/rounds/:no/reveal", middleware.JWT(), actionRL, h.Reveal)
		v1.GET("/matches/:id", h.GetMatch)

		v1.GET("/rankings", h.Rankings)
		v1.GET("/agents/:id/rating", h.RatingHistory)
	}

	// WebSocket spectator stream
	r.GET("/ws", h.WS(hub))
}
