package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"starhr/internal/domain"
	"starhr/internal/events"
	"starhr/internal/replacementleave"
	replacementleaveerrors "starhr/internal/replacementleave/errors"
	"starhr/internal/shared/apperror"
	"starhr/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// CreditCreator is satisfied by replacementleave.Service.
type CreditCreator interface {
	Credit(ctx context.Context, actor domain.Actor, req replacementleave.CreditRequest) (replacementleave.CreditResponse, error)
}

// ConsumeTrainingCompleted turns confirmed training attendance into
// replacement leave credits. Messages are committed once handled or once
// they can never succeed; infrastructure failures leave them uncommitted.
func ConsumeTrainingCompleted(
	ctx context.Context,
	reader MessageReader,
	credits CreditCreator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.training_completed")
	log.Info("training completed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("training completed consumer stopped")
				return
			}
			log.Error("fetch training completed message failed", zap.Error(err))
			continue
		}

		if !handleTrainingCompleted(ctx, msg, credits, log) {
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit training completed message failed", zap.Error(err))
		}
	}
}

// handleTrainingCompleted reports whether msg should be committed.
func handleTrainingCompleted(ctx context.Context, msg kafkago.Message, credits CreditCreator, log *zap.Logger) bool {
	var event events.TrainingCompletedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode training completed event failed", zap.Error(err))
		return true
	}

	for _, h := range msg.Headers {
		if h.Key == "request_id" {
			ctx = contextutil.WithRequestID(ctx, string(h.Value))
		}
	}

	req := replacementleave.CreditRequest{
		EmployeeID:       event.EmployeeID,
		TriggerType:      replacementleave.TriggerTraining,
		TriggerDate:      event.CompletedOn,
		Description:      event.Title,
		TriggerReference: event.AllocationID,
	}
	if event.HoursAttended != nil {
		hours := decimal.NewFromFloat(*event.HoursAttended)
		req.HoursWorked = &hours
	}

	fields := []zap.Field{
		zap.String("company_id", event.CompanyID),
		zap.String("employee_id", event.EmployeeID),
		zap.String("allocation_id", event.AllocationID),
	}

	resp, err := credits.Credit(ctx, domain.SystemActor(event.CompanyID), req)
	if err != nil {
		var appErr *apperror.AppError
		switch {
		case errors.Is(err, replacementleaveerrors.ErrDuplicateTrigger):
			log.Warn("training already credited, skipping", fields...)
			return true
		case errors.As(err, &appErr) && appErr.HTTPStatus < 500:
			log.Warn("training not credited", append(fields, zap.String("code", appErr.Code), zap.String("reason", appErr.Message))...)
			return true
		default:
			log.Error("credit from training failed", append(fields, zap.Error(err))...)
			return false
		}
	}

	log.Info("replacement leave credited from training",
		append(fields, zap.String("credit_id", resp.ID), zap.String("status", resp.Status))...)
	return true
}
