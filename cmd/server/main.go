/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the installment plan engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and parse command-line flags
  2. Initialize logrus
  3. Initialize SQLite store
  4. Pick the preview cache (Redis if configured, in-memory otherwise)
  5. Start the overdue-flagging cron job
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080, env PORT)
  -db      SQLite database path (default: billing.db, env DB_PATH)
           Use ":memory:" for an in-memory database
  -redis   Redis address for the preview cache (default: off, env REDIS_ADDR)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the cron runner and close the database
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/billing.db"

  # Run with Redis-backed preview cache
  ./server -redis="localhost:6379"

SEE ALSO:
  - api/server.go: Router configuration
  - jobs/overdue.go: Nightly overdue flagging
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/warp/installment-engine/api"
	"github.com/warp/installment-engine/cache"
	"github.com/warp/installment-engine/jobs"
	"github.com/warp/installment-engine/store/sqlite"
)

func main() {
	// .env is optional; flags and real env win.
	_ = godotenv.Load()

	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envStr("DB_PATH", "billing.db"), "SQLite database path")
	redisAddr := flag.String("redis", envStr("REDIS_ADDR", ""), "Redis address for the preview cache (empty = in-memory)")
	flag.Parse()

	// Logger
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(envStr("LOG_LEVEL", "info")); err == nil {
		log.SetLevel(level)
	}

	// Store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Preview cache
	var previewCache cache.Cache
	if *redisAddr != "" {
		redisCache := cache.NewRedisCache(*redisAddr, 24*time.Hour)
		defer redisCache.Close()
		previewCache = redisCache
		log.WithField("addr", *redisAddr).Info("preview cache: redis")
	} else {
		previewCache = cache.NewMemoryCache()
		log.Info("preview cache: in-memory")
	}

	// Handler and router
	handler := api.NewHandler(store, previewCache, log)
	router := api.NewRouter(handler)

	// Nightly overdue flagging
	runner := cron.New()
	if _, err := jobs.Schedule(runner, &jobs.OverdueMarker{Store: store, Log: log}); err != nil {
		log.Fatalf("Failed to schedule overdue job: %v", err)
	}
	runner.Start()
	defer runner.Stop()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", *port).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("server stopped")
}

func envStr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n
		}
	}
	return fallback
}
