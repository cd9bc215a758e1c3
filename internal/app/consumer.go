package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"starhr/internal/bootstrap"
	"starhr/internal/config"
	"starhr/internal/events"
	"starhr/internal/messaging/kafka/consumer"
	"starhr/internal/observability"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer credits replacement leave from training completion events
// until SIGINT or SIGTERM.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	if err := cfg.RequireKafka(); err != nil {
		return err
	}

	conns, err := connect(cfg, logger, false)
	if err != nil {
		return err
	}
	defer conns.Close()

	svc := buildServices(cfg, conns.sqlDB, conns.gormDB, nil, observability.NewMetrics(), bootstrap.NewStdoutAuditLogger(zap.L()), zap.L())

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.TrainingCompletedTopic,
		GroupID:        cfg.KafkaTrainingGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeTrainingCompleted(ctx, reader, svc.replacement, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
