package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"nexusfiles/internal/config"
	"nexusfiles/internal/database"
	"nexusfiles/internal/middleware"
	"nexusfiles/internal/modules/auth"
	"nexusfiles/internal/modules/events"
	"nexusfiles/internal/modules/files"
	jwtsvc "nexusfiles/internal/pkg/jwt"
	"nexusfiles/internal/repository"
	"nexusfiles/internal/supervisor"
)

func main() {
	log := logrus.StandardLogger()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("configuration error")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to open registry store")
	}

	fileRepo := repository.NewFileRepository(db)
	if err := fileRepo.Migrate(); err != nil {
		log.WithError(err).Fatal("registry migration failed")
	}

	hub := events.NewHub()
	defer hub.Close()

	j := jwtsvc.New(cfg.JWTSecret, cfg.SessionTTL)

	authHandler := auth.NewHandler(auth.NewService(cfg.DashboardPasscode, j))
	filesHandler := files.NewHandler(files.NewService(fileRepo, cfg.BotUsername, hub, log))
	eventsHandler := events.NewHandler(hub)

	// The worker is mandatory: without the bot listener there is no
	// ingestion and no redemption, so a failed start is fatal.
	sup := supervisor.New(supervisor.Config{
		Command:      []string{cfg.WorkerBin},
		Env:          map[string]string{"NEXUS_WORKER": "1"},
		StopTimeout:  cfg.WorkerStopTimeout,
		ReloadMarker: config.ReloadMarkerEnv,
		Logger:       log,
	})
	if err := sup.Start(); err != nil {
		log.WithError(err).Fatal("worker process failed to start")
	}
	// The worker must never outlive the parent, whatever path main
	// exits through.
	defer sup.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.CORS())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "worker": sup.Status().String()})
	})

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			filesHandler.RegisterRoutes(protected)
			eventsHandler.RegisterRoutes(protected)
		}
	}

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: r}

	go func() {
		<-ctx.Done()
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", cfg.ListenAddr).Info("dashboard API listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("dashboard server failed")
	}

	// Stop the worker before the parent exits; the deferred Stop then
	// observes Stopped and is a no-op.
	sup.Stop()
	log.Info("exited")
}
