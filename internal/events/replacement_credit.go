package events

import "time"

const ReplacementCreditTopic = "hr.leave.replacement.v1"

const (
	ReplacementCredited = "replacement.credited"
	ReplacementApproved = "replacement.approved"
	ReplacementRejected = "replacement.rejected"
	ReplacementExpired  = "replacement.expired"
)

type ReplacementCreditEvent struct {
	EventType        string    `json:"event_type"`
	CreditID         string    `json:"credit_id"`
	CompanyID        string    `json:"company_id"`
	EmployeeID       string    `json:"employee_id"`
	TriggerType      string    `json:"trigger_type"`
	TriggerReference string    `json:"trigger_reference"`
	Status           string    `json:"status"`
	Days             string    `json:"days"`
	ActorID          string    `json:"actor_id"`
	OccurredAt       time.Time `json:"occurred_at"`
}
