package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/couchcryptid/disaster-response-advisor/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/disaster-response-advisor/internal/adapter/kafka"
	"github.com/couchcryptid/disaster-response-advisor/internal/app"
	"github.com/couchcryptid/disaster-response-advisor/internal/config"
	"github.com/couchcryptid/disaster-response-advisor/internal/observability"
	"github.com/couchcryptid/disaster-response-advisor/internal/pipeline"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine, err := app.Build(ctx, cfg, logger, metrics)
	if err != nil {
		logger.Error("failed to build advisory engine", "error", err)
		os.Exit(1)
	}
	defer engine.Close()

	var (
		reader *kafkaadapter.Reader
		writer *kafkaadapter.Writer
		done   = make(chan struct{})
	)
	if cfg.KafkaEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		writer = kafkaadapter.NewWriter(cfg, logger)
		p := pipeline.New(reader, pipeline.NewTransformer(engine.Advisor), writer, logger, metrics, cfg.BatchSize)
		engine.AddReadinessCheck(p)

		go func() {
			defer close(done)
			if err := p.Run(ctx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
	} else {
		close(done)
		logger.Info("kafka streaming disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, engine.Advisor, engine, cfg.RateLimitRPS, logger)

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

	select {
	case <-done:
	case <-shutdownCtx.Done():
		logger.Warn("pipeline did not stop before shutdown timeout")
	}
	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
