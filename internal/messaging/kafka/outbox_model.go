package kafka

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OutboxEventRecord is the table layout behind OutboxRepository. It is only
// used for migrations; reads and writes go through plain SQL.
type OutboxEventRecord struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID     *uuid.UUID     `gorm:"type:uuid;index"`
	RequestID     string         `gorm:"size:64"`
	AggregateType string         `gorm:"size:50;not null"`
	AggregateID   uuid.UUID      `gorm:"type:uuid;not null"`
	EventType     string         `gorm:"size:100;not null"`
	Topic         string         `gorm:"size:150;not null"`
	Payload       datatypes.JSON `gorm:"type:jsonb;not null"`
	Status        string         `gorm:"size:20;not null;default:pending;index:idx_outbox_events_dispatch"`
	RetryCount    int            `gorm:"not null;default:0"`
	NextRetryAt   *time.Time     `gorm:"index:idx_outbox_events_dispatch"`
	ErrorMessage  *string        `gorm:"size:500"`
	ProcessedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (OutboxEventRecord) TableName() string {
	return "outbox_events"
}
