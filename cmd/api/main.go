package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mwork/studiofinder/internal/config"
	"github.com/mwork/studiofinder/internal/domain/session"
	"github.com/mwork/studiofinder/internal/domain/studio"
	"github.com/mwork/studiofinder/internal/middleware"
	"github.com/mwork/studiofinder/internal/pkg/catalog"
	"github.com/mwork/studiofinder/internal/pkg/database"
	"github.com/mwork/studiofinder/internal/pkg/logger"
)

const (
	sessionSweepInterval = 5 * time.Minute
	limiterSweepInterval = time.Minute
)

func main() {
	cfg := config.Load()
	if err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise logger")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("booking_store", cfg.BookingStoreDriver).
		Msg("Starting Studio Finder API")

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store, closeStore, err := newBlobStore(ctx, cfg, redis)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.BookingStoreDriver).Msg("Failed to create booking store")
	}
	defer closeStore()

	if cfg.IsProduction() && len(cfg.AllowedOrigins) == 0 {
		log.Warn().Msg("ALLOWED_ORIGINS is empty; every origin is allowed")
	}

	source := catalog.NewCachedSource(newCatalogSource(cfg), cfg.CatalogCacheTTL)

	// ---------- WebSocket hub ----------
	hub := session.NewHub(redis)
	go hub.Run()
	defer hub.Shutdown()

	registry := session.NewRegistry(source, store, hub, session.Options{
		PageSize:        cfg.PageSize,
		DefaultRadiusKm: cfg.DefaultRadiusKm,
		AutoCloseDelay:  cfg.AutoCloseDelay,
		TTL:             cfg.SessionTTL,
		AutoLoad:        cfg.SessionAutoLoad,
	})
	go registry.Start(ctx, sessionSweepInterval)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go runLimiterCleanup(ctx, limiter)

	router := newRouter(routerDeps{
		registry:       registry,
		hub:            hub,
		limiter:        limiter,
		allowedOrigins: cfg.AllowedOrigins,
		exposeDebug:    cfg.IsDevelopment(),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func newCatalogSource(cfg *config.Config) studio.Source {
	if cfg.CatalogURL != "" {
		log.Info().Str("url", cfg.CatalogURL).Msg("Using remote studio catalog")
		return catalog.NewHTTPSource(cfg.CatalogURL, cfg.CatalogTimeout(), cfg.CatalogUserAgent)
	}
	log.Info().Str("file", cfg.CatalogFile).Msg("Using bundled studio catalog")
	return catalog.NewFileSource(cfg.CatalogFile)
}

func runLimiterCleanup(ctx context.Context, limiter *middleware.RateLimiter) {
	ticker := time.NewTicker(limiterSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := limiter.Cleanup(); n > 0 {
				log.Debug().Int("removed", n).Msg("Rate limiter cleanup")
			}
		}
	}
}
