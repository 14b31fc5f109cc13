package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/last-player-standing/cache"
	"github.com/danielhkuo/last-player-standing/cliparse"
	"github.com/danielhkuo/last-player-standing/db"
	"github.com/danielhkuo/last-player-standing/ledger"
	"github.com/danielhkuo/last-player-standing/middleware"
	"github.com/danielhkuo/last-player-standing/router"
	"github.com/danielhkuo/last-player-standing/scheduler"
)

func main() {
	var err error
	ctx := context.Background()

	// Parse configuration
	cliparse.LoadDotEnv()
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the configured store
	dbConn, err := db.Open(ctx, cfg.DatabaseType, cfg.DSN())
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()
	slog.Info("Database connected", "type", cfg.DatabaseType)

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Team usage cache is optional
	var usage ledger.UsageCache
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisUsageCache(ctx, cfg.RedisURL, cache.DefaultTTL)
		if err != nil {
			slog.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer rc.Close()
		usage = rc
		slog.Info("Team usage cache enabled")
	}

	svc := ledger.NewService(dbConn, usage)

	// Open and close matchweeks on schedule
	sched, err := scheduler.New(svc, cfg.SchedulerInterval)
	if err != nil {
		slog.Error("scheduler setup failed", "error", err)
		os.Exit(1)
	}
	sched.Start()

	// Create router
	mux := router.NewRouter(svc, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		if err := sched.Shutdown(); err != nil {
			slog.Warn("scheduler shutdown", "error", err)
		}
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
