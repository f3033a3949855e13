package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"schoolapp-backend-go/internal/config"
	"schoolapp-backend-go/internal/db"
	httpapi "schoolapp-backend-go/internal/http"
	"schoolapp-backend-go/internal/legacy"
	"schoolapp-backend-go/internal/logger"
	"schoolapp-backend-go/internal/migrations"
	"schoolapp-backend-go/internal/services"
	"schoolapp-backend-go/internal/session"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.Environment)
	cleanupLogs, err := logger.SetupFileOutput(log)
	if err != nil {
		log.WithError(err).Warn("file logging unavailable")
	} else {
		defer cleanupLogs()
	}

	// Postgres is optional. Without it sessions live in the JSON file store
	// and ops samples are not persisted.
	var database *sqlx.DB
	var store session.Store
	if cfg.DatabaseURL != "" {
		database, err = db.Open(cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("database connect failed")
		}
		if err := migrations.Apply(database, "migrations"); err != nil {
			log.WithError(err).Fatal("migrations failed")
		}
		store = session.NewPostgresStore(database)
	} else {
		store = session.NewFileStore(cfg.SessionFilePath)
		log.WithField("path", cfg.SessionFilePath).Info("using file session store")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := services.NewEventHub()
	go hub.Run(ctx)

	fetcher := legacy.NewFetcher(cfg.LegacyAPIBase, time.Duration(cfg.LegacyTimeoutSeconds)*time.Second)
	client := legacy.NewClient(fetcher)
	server := httpapi.NewServer(database, cfg, hub, store, client, log)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.MetricsCronSpec, func() {
		if _, err := services.CaptureMetrics(database, cfg.MetricsDiskPath); err != nil {
			log.WithError(err).Warn("metrics capture failed")
		}
	}); err != nil {
		log.WithError(err).Fatal("invalid metrics cron spec")
	}
	if _, err := scheduler.AddFunc(cfg.EvictionCronSpec, func() {
		evicted := server.EvictIdleControllers(time.Duration(cfg.ControllerIdleMins) * time.Minute)
		if evicted > 0 {
			log.WithField("evicted", evicted).Info("idle controllers evicted")
		}
	}); err != nil {
		log.WithError(err).Fatal("invalid eviction cron spec")
	}
	scheduler.Start()
	defer scheduler.Stop()

	addr := ":8080"
	if value := os.Getenv("PORT"); value != "" {
		addr = ":" + value
	}
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Router(ctx),
	}

	go func() {
		log.WithField("addr", addr).Info("listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop
	cancel()
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = httpServer.Shutdown(ctxShutdown)
	log.Info("shutdown complete")
}
