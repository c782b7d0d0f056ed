package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	httpadapter "github.com/couchcryptid/surf-forecast-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/surf-forecast-etl/internal/adapter/kafka"
	"github.com/couchcryptid/surf-forecast-etl/internal/adapter/stormglass"
	"github.com/couchcryptid/surf-forecast-etl/internal/config"
	"github.com/couchcryptid/surf-forecast-etl/internal/observability"
	"github.com/couchcryptid/surf-forecast-etl/internal/pipeline"
	"github.com/joho/godotenv"
)

// alwaysReady serves /readyz when no poller is running.
type alwaysReady struct{}

func (alwaysReady) CheckReadiness(context.Context) error { return nil }

func main() {
	// Variables already set in the environment take precedence over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	client, err := stormglass.NewClient(stormglass.Options{
		BaseURL:   cfg.StormGlassBaseURL,
		Token:     cfg.StormGlassToken,
		Source:    cfg.StormGlassSource,
		Transport: stormglass.NewHTTPTransport(cfg.StormGlassTimeout),
		Logger:    logger,
		Metrics:   metrics,
	})
	if err != nil {
		logger.Error("failed to create stormglass client", "error", err)
		os.Exit(1)
	}
	if cfg.StormGlassToken == "" {
		logger.Warn("STORMGLASS_TOKEN is not set, requests are sent without an Authorization header")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		ready  sharedobs.ReadinessChecker = alwaysReady{}
		writer *kafkaadapter.Writer
	)
	if cfg.PollEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		poller := pipeline.New(client, writer, logger, metrics, pipeline.Options{
			Spots:    cfg.Spots,
			Source:   cfg.StormGlassSource,
			Interval: cfg.PollInterval,
		})
		ready = poller

		go func() {
			if err := poller.Run(ctx); err != nil {
				logger.Error("poller error", "error", err)
			}
		}()
	} else {
		logger.Info("spot polling disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, ready, client, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
