package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	LeaveSubmitted  = "leave.submitted"
	LeaveApproved   = "leave.approved"
	LeaveRejected   = "leave.rejected"
	LeaveCancelled  = "leave.cancelled"
	LeaveOverridden = "leave.overridden"
)

type LeaveLifecycleEvent struct {
	EventType      string    `json:"event_type"`
	LeaveRequestID string    `json:"leave_request_id"`
	RequestNumber  string    `json:"request_number"`
	CompanyID      string    `json:"company_id"`
	EmployeeID     string    `json:"employee_id"`
	LeaveTypeID    string    `json:"leave_type_id"`
	ActorID        string    `json:"actor_id"`
	FromStatus     string    `json:"from_status,omitempty"`
	ToStatus       string    `json:"to_status"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	Days           string    `json:"days"`
	OccurredAt     time.Time `json:"occurred_at"`
}
