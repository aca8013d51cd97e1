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

	"github.com/BruksfildServices01/barbershop-manager/internal/apiclient"
	"github.com/BruksfildServices01/barbershop-manager/internal/cache"
	"github.com/BruksfildServices01/barbershop-manager/internal/config"
	"github.com/BruksfildServices01/barbershop-manager/internal/dashboard"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log := logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// SESSÕES: Redis > diretório > memória
	// ======================================================
	stores := dashboard.MemoryStores()
	backend := "memory"

	redisClient, err := cache.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect redis")
	}
	switch {
	case redisClient != nil:
		defer redisClient.Close()
		stores = dashboard.RedisStores(redisClient, cfg.Dashboard.SessionTTL)
		backend = "redis"
	case cfg.Dashboard.SessionDir != "":
		if err := os.MkdirAll(cfg.Dashboard.SessionDir, 0o700); err != nil {
			log.Fatal().Err(err).Msg("failed to create session dir")
		}
		stores = dashboard.FileStores(cfg.Dashboard.SessionDir)
		backend = "file"
	}

	// a API pode subir depois do painel; só avisa
	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := apiclient.New(cfg.Dashboard.APIBaseURL, apiclient.NewMemoryStore()).Health(pingCtx); err != nil {
		log.Warn().Err(err).Str("api", cfg.Dashboard.APIBaseURL).Msg("api not reachable")
	}
	cancelPing()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLogger())
	r.MaxMultipartMemory = cfg.MaxUploadBytes()

	srvDash := dashboard.NewServer(dashboard.Options{
		APIBaseURL:   cfg.Dashboard.APIBaseURL,
		Stores:       stores,
		SessionTTL:   cfg.Dashboard.SessionTTL,
		SecureCookie: cfg.IsProduction(),
		Timezone:     cfg.Timezone,
	})
	if err := srvDash.Register(r); err != nil {
		log.Fatal().Err(err).Msg("failed to register dashboard")
	}

	srv := &http.Server{
		Addr:              cfg.DashboardAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", cfg.DashboardAddr()).
			Str("api", cfg.Dashboard.APIBaseURL).
			Str("sessions", backend).
			Msg("dashboard running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start dashboard")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
