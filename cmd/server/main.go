package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/advisory"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/cache"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/config"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/httpapi"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/service"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/store/memory"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration")
	}

	repo := memory.New()

	var insightCache cache.InsightCache = cache.Noop{}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, insights will not be cached")
		} else {
			insightCache = cache.NewRedis(client)
			log.Info().Str("addr", cfg.RedisAddr).Msg("redis cache connected")
		}
		cancel()
	}

	advisor := advisory.NewClient(cfg.AdvisoryBaseURL, cfg.AdvisoryAPIKey, cfg.AdvisoryModel, cfg.AdvisoryTimeout)
	if !advisor.Configured() {
		log.Info().Msg("advisory provider not configured, fallbacks will be served")
	}

	svc := service.New(repo, insightCache, advisor, log, cfg.InsightTTL)
	auth := httpapi.NewAuthManager(cfg.AuthSecret, cfg.TokenTTL, repo)
	api := httpapi.NewServer(svc, auth, log)

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Router(cfg.AllowedOrigin),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
