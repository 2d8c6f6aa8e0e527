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
	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/spaceweather-watch/internal/adapter/http"
	"github.com/couchcryptid/spaceweather-watch/internal/adapter/notify"
	"github.com/couchcryptid/spaceweather-watch/internal/adapter/swpc"
	"github.com/couchcryptid/spaceweather-watch/internal/config"
	"github.com/couchcryptid/spaceweather-watch/internal/domain"
	"github.com/couchcryptid/spaceweather-watch/internal/observability"
	"github.com/couchcryptid/spaceweather-watch/internal/watch"
)

func main() {
	// A .env file is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	telemetry := swpc.NewClient(cfg.SWPCBaseURL, cfg.SWPCTimeout, metrics, logger)

	// Notification channels are feature-flagged by their credential groups.
	var channels []notify.Channel
	var kafkaChannel *notify.KafkaChannel
	if cfg.EmailEnabled() {
		channels = append(channels, notify.NewEmailChannel(cfg))
		logger.Info("email notifications enabled", "server", cfg.SMTPServer, "to", cfg.EmailTo)
	}
	if cfg.SMSEnabled() {
		channels = append(channels, notify.NewSMSChannel(cfg))
		logger.Info("sms notifications enabled", "to", cfg.SMSTo)
	}
	if cfg.KafkaEnabled() {
		kafkaChannel = notify.NewKafkaChannel(cfg)
		channels = append(channels, kafkaChannel)
		logger.Info("kafka alert bus enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaAlertsTopic)
	}
	if len(channels) == 0 {
		logger.Warn("no notification channels configured, alerts will be log-only")
	}

	notifier := notify.NewNotifier(channels, metrics, logger)

	clock := clockwork.NewRealClock()
	sampler := watch.NewSampler(telemetry, clock, cfg.Location, metrics, logger)
	dispatcher := watch.NewDispatcher(notifier, domain.ReportOptions{
		Location:     cfg.Location,
		LISThreshold: cfg.LISThreshold,
		ShortBzNT:    cfg.ShortBzNT,
		ShortSpdKms:  cfg.ShortSpdKms,
	}, metrics, logger)

	watcher := watch.New(sampler, dispatcher, cfg, clock, metrics, logger)

	srv := httpadapter.NewServer(cfg.HTTPAddr, watcher, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start ops HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Send the startup baseline, then run the watch loops until signalled.
	watcher.Baseline(ctx)
	watcher.Run(ctx)

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaChannel != nil {
		if err := kafkaChannel.Close(); err != nil {
			logger.Error("kafka producer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
