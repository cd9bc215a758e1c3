package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"starhr/internal/bootstrap"
	"starhr/internal/config"
	"starhr/internal/jobs"
	"starhr/internal/messaging/kafka"
	"starhr/internal/messaging/kafka/producer"
	"starhr/internal/observability"
	"starhr/internal/shared/connection"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RunWorker publishes the outbox and runs the scheduled credit expiry until
// SIGINT or SIGTERM.
func RunWorker(cfg *config.Config) error {
	logger := zap.L().Named("app.worker")

	if err := cfg.RequireKafka(); err != nil {
		return err
	}

	conns, err := connect(cfg, logger, true)
	if err != nil {
		return err
	}
	defer conns.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.DBMaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	metrics := observability.NewMetrics()
	svc := buildServices(cfg, conns.sqlDB, conns.gormDB, conns.rdb, metrics, bootstrap.NewStdoutAuditLogger(zap.L()), zap.L())
	outboxRepo := kafka.NewOutboxRepository(conns.sqlDB)

	expiry := jobs.NewCreditExpiryJob(svc.replacement, metrics, zap.L())
	handler, cron := expiry.Registration(cfg.CreditExpiryCron)
	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Concurrency: cfg.AsynqConcurrency,
		Logger:      zap.L(),
		Handlers:    []jobs.TaskHandler{handler},
		Cron:        []jobs.CronRegistration{cron},
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, cfg.OutboxPollInterval)

	jobErr := make(chan error, 1)
	go func() {
		jobErr <- worker.Run(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("worker shutting down")
		cancel()
		if err := <-jobErr; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	case err := <-jobErr:
		cancel()
		return err
	}
}
