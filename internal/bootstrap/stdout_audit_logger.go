package bootstrap

import (
	"context"
	"time"

	"starhr/internal/shared/contextutil"

	"go.uber.org/zap"
)

// StdoutAuditLogger writes audit entries through a dedicated "audit" zap
// logger so they can be routed apart from request logs.
type StdoutAuditLogger struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewStdoutAuditLogger(logger ...*zap.Logger) *StdoutAuditLogger {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &StdoutAuditLogger{
		logger: l.Named("audit"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	meta := contextutil.ExtractMetadata(ctx)
	actor := entry.ActorID
	if actor == "" {
		actor = meta.UserID
	}

	fields := []zap.Field{
		zap.String("timestamp", l.now().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
	}
	if entry.CompanyID != "" {
		fields = append(fields, zap.String("company_id", entry.CompanyID))
	}
	if actor != "" {
		fields = append(fields, zap.String("actor_id", actor))
	}
	if entry.Entity != "" {
		fields = append(fields,
			zap.String("entity", entry.Entity),
			zap.String("entity_id", entry.EntityID),
		)
	}
	if meta.RequestID != "" {
		fields = append(fields, zap.String("request_id", meta.RequestID))
	}
	if len(entry.Meta) > 0 {
		fields = append(fields, zap.Any("meta", entry.Meta))
	}

	l.logger.Info("audit event", fields...)
}
