package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pickit/print-system/internal/api"
	"github.com/pickit/print-system/internal/core/ports"
	"github.com/pickit/print-system/internal/infrastructure/db/mongo"
	"github.com/pickit/print-system/internal/infrastructure/db/redis"
	"github.com/pickit/print-system/internal/infrastructure/geo"
	"github.com/pickit/print-system/internal/infrastructure/notify"
	"github.com/pickit/print-system/internal/infrastructure/payment"
	"github.com/pickit/print-system/internal/infrastructure/queue"
	"github.com/pickit/print-system/internal/pkg/config"
	"github.com/pickit/print-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongo.NewJobRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("job index creation failed")
	}
	if err := mongo.NewHistoryRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("history index creation failed")
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	// --- Side-effect senders and dispatcher ---
	bridge := notify.NewClient(notify.Config{
		URL:     cfg.Notify.WebhookURL,
		Secret:  cfg.Notify.Secret,
		Timeout: cfg.Notify.Timeout,
	})
	dispatcher := queue.NewDispatcher(cfg.Effects.Workers, []ports.Notifier{
		notify.NewAlertSender(bridge),
		notify.NewChimeSender(bridge),
	}, logger.Component("effects"))
	dispatcher.Start(ctx)

	// --- External collaborators ---
	gateway := payment.NewSimulator(payment.Config{
		ProcessingDelay: cfg.Payment.ProcessingDelay,
		VerifyingDelay:  cfg.Payment.VerifyingDelay,
	}, logger.Component("payment"))

	geocoder := geo.NewPlacesClient(geo.Config{
		Endpoint: cfg.Geo.Endpoint,
		APIKey:   cfg.Geo.APIKey,
	})

	// --- HTTP surface ---
	e := api.NewRouter(api.Dependencies{
		Mongo:     db,
		Redis:     rdb,
		Payments:  gateway,
		Effects:   dispatcher,
		Geocoder:  geocoder,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	log.Info().Msg("shutdown complete")
}
