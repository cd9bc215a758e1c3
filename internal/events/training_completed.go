package events

import "time"

const TrainingCompletedTopic = "hr.training.completed.v1"

// TrainingCompletedEvent is published by the training system once an
// attendance is confirmed. AllocationID identifies one attendance and is
// used as the credit's trigger reference.
type TrainingCompletedEvent struct {
	EventType     string    `json:"event_type"`
	CompanyID     string    `json:"company_id"`
	EmployeeID    string    `json:"employee_id"`
	TrainingID    string    `json:"training_id"`
	AllocationID  string    `json:"allocation_id"`
	Title         string    `json:"title"`
	CompletedOn   string    `json:"completed_on"`
	HoursAttended *float64  `json:"hours_attended,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
