package leave

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusWithdrawn = "withdrawn"
)

const (
	ActionSubmitted  = "SUBMITTED"
	ActionApproved   = "APPROVED"
	ActionRejected   = "REJECTED"
	ActionCancelled  = "CANCELLED"
	ActionOverridden = "OVERRIDDEN"
)

type LeaveRequest struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_request_number;index:idx_leave_requests_employee"`
	RequestNumber     string          `gorm:"size:30;not null;uniqueIndex:uq_leave_request_number"`
	EmployeeID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_leave_requests_employee"`
	LeaveTypeID       uuid.UUID       `gorm:"type:uuid;not null"`
	BalanceID         uuid.UUID       `gorm:"type:uuid;not null"`
	StartDate         time.Time       `gorm:"type:date;not null"`
	EndDate           time.Time       `gorm:"type:date;not null"`
	HalfDayStart      bool            `gorm:"not null;default:false"`
	HalfDayEnd        bool            `gorm:"not null;default:false"`
	DaysRequested     decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	Reason            string          `gorm:"type:text"`
	DocumentURL       string          `gorm:"size:500"`
	Status            string          `gorm:"size:20;not null;index"`
	CurrentApproverID *uuid.UUID      `gorm:"type:uuid;index"`
	ApproverName      string          `gorm:"size:255"`
	HierarchySnapshot datatypes.JSON  `gorm:"type:jsonb"`
	SubmittedAt       time.Time       `gorm:"not null"`
	ApprovedBy        *uuid.UUID      `gorm:"type:uuid"`
	ApprovedAt        *time.Time
	RejectedBy        *uuid.UUID `gorm:"type:uuid"`
	RejectedAt        *time.Time
	RejectionReason   *string `gorm:"type:text"`
	CancelledAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ApprovalHistoryEntry is append-only; one row per transition.
type ApprovalHistoryEntry struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null"`
	LeaveRequestID uuid.UUID `gorm:"type:uuid;not null;index"`
	ActorID        uuid.UUID `gorm:"type:uuid;not null"`
	Action         string    `gorm:"size:20;not null"`
	FromStatus     string    `gorm:"size:20"`
	ToStatus       string    `gorm:"size:20;not null"`
	Notes          string    `gorm:"type:text"`
	CreatedAt      time.Time
}

func (ApprovalHistoryEntry) TableName() string {
	return "leave_approval_history"
}
