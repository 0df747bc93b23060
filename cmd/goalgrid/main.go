package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Gajendran57/GoalGrid/internal/api"
	"github.com/Gajendran57/GoalGrid/internal/dashboard"
	"github.com/Gajendran57/GoalGrid/internal/notify"
	"github.com/Gajendran57/GoalGrid/internal/reminder"
	"github.com/Gajendran57/GoalGrid/internal/session"
	"github.com/Gajendran57/GoalGrid/pkg/config"
	"github.com/Gajendran57/GoalGrid/pkg/logger"
	redisclient "github.com/Gajendran57/GoalGrid/pkg/redis"
)

// notificationWindow is how long a fired notification counts as visible
// for tag dedupe.
const notificationWindow = 5 * time.Minute

func main() {
	cfg, err := config.Load(config.GetConfigEnv(), "config")
	if err != nil {
		panic(err)
	}

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting GoalGrid client",
		zap.String("backend", cfg.Backend.BaseURL),
	)

	rdb := redisclient.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	// Session wiring: the holder is the single token slot every outgoing
	// request reads through.
	holder := session.NewTokenHolder()
	client := api.NewClient(cfg.Backend, holder, log)
	vault := session.NewRedisVault(rdb)
	store := session.NewStore(holder, vault, client, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Bootstrap settles the session before anything gated starts.
	if err := store.Bootstrap(ctx); err != nil {
		log.Fatal("Session bootstrap failed", zap.Error(err))
	}

	if store.Status() != session.StatusAuthenticated {
		email := os.Getenv("GOALGRID_EMAIL")
		password := os.Getenv("GOALGRID_PASSWORD")
		if email == "" || password == "" {
			log.Fatal("No stored session and no GOALGRID_EMAIL/GOALGRID_PASSWORD credentials")
		}
		if _, err := store.Login(ctx, email, password); err != nil {
			log.Fatal("Login failed", zap.Error(err))
		}
	}

	gateway := notify.NewGateway(
		notify.NewLogSender(log),
		notify.NewRedisTagRegistry(rdb, notificationWindow, log),
		log,
	)
	gateway.EnsurePermission(ctx)

	aggregator := dashboard.NewAggregator(client, log)
	if err := aggregator.Refresh(ctx); err != nil {
		// Not fatal: the snapshot stays empty until the next refresh lands.
		log.Warn("Initial dashboard refresh failed", zap.Error(err))
	}

	interval := time.Duration(cfg.Reminder.IntervalSeconds) * time.Second
	scheduler := reminder.NewScheduler(client, gateway, interval, log)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	if cfg.Metrics.Addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				log.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	<-ctx.Done()
	log.Info("Shutting down")
}
