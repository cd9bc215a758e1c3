package bootstrap

import "context"

const (
	ActionServerStarted  = "SERVER_STARTED"
	ActionServerShutdown = "SERVER_SHUTDOWN"

	ActionLeaveApproved     = "LEAVE_APPROVED"
	ActionLeaveAutoApproved = "LEAVE_AUTO_APPROVED"
	ActionLeaveRejected     = "LEAVE_REJECTED"
	ActionLeaveOverridden   = "LEAVE_OVERRIDDEN"
	ActionLeaveCancelled    = "LEAVE_CANCELLED"

	ActionCreditApproved = "REPLACEMENT_CREDIT_APPROVED"
	ActionCreditRejected = "REPLACEMENT_CREDIT_REJECTED"
	ActionCreditExpired  = "REPLACEMENT_CREDIT_EXPIRED"
)

// AuditLog is a state change kept apart from request logs. Entries are
// written after the owning transaction commits.
type AuditLog struct {
	Action    string
	Message   string
	CompanyID string
	ActorID   string
	Entity    string
	EntityID  string
	Meta      map[string]any
}

// AuditLogger is best effort: Log never fails the caller.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

// NopAuditLogger drops every entry.
type NopAuditLogger struct{}

func (NopAuditLogger) Log(context.Context, AuditLog) {}
