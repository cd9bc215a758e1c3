package replacementleave

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CreditTypeFixed = "FIXED"
	CreditTypeRatio = "RATIO"
)

const (
	TriggerTraining    = "TRAINING"
	TriggerHolidayWork = "HOLIDAY_WORK"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusExpired  = "expired"
)

const (
	ActionCredited = "CREDITED"
	ActionApproved = "APPROVED"
	ActionRejected = "REJECTED"
	ActionExpired  = "EXPIRED"
)

// ReplacementLeaveRule converts a trigger into credited days. Zero caps and
// a zero ExpiryDays mean unlimited.
type ReplacementLeaveRule struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID            uuid.UUID       `gorm:"type:uuid;not null;index:idx_replacement_rules_lookup"`
	Name                 string          `gorm:"size:100;not null"`
	TriggerType          string          `gorm:"size:30;not null;index:idx_replacement_rules_lookup"`
	LeaveTypeID          *uuid.UUID      `gorm:"type:uuid"`
	CreditType           string          `gorm:"size:10;not null;default:FIXED"`
	CreditDays           decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	HoursPerDay          decimal.Decimal `gorm:"type:numeric(6,2);not null;default:8"`
	MaxDaysPerEvent      decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	MaxDaysPerMonth      decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	MaxDaysPerYear       decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	ExpiryDays           int             `gorm:"not null;default:0"`
	MinTenureMonths      int             `gorm:"not null;default:0"`
	EmployeeGrade        string          `gorm:"size:30"`
	DepartmentID         *uuid.UUID      `gorm:"type:uuid"`
	Designation          string          `gorm:"size:100"`
	EligibilityExpr      string          `gorm:"type:text"`
	RequiresApproval     bool            `gorm:"not null;default:true"`
	AutoCreditOnApproval bool            `gorm:"not null;default:true"`
	EffectiveFrom        time.Time       `gorm:"type:date;not null"`
	EffectiveTo          *time.Time      `gorm:"type:date"`
	IsActive             bool            `gorm:"not null;default:true"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type ReplacementLeaveCredit struct {
	ID                 uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID          uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:uq_replacement_trigger_ref;index:idx_replacement_credits_employee"`
	EmployeeID         uuid.UUID           `gorm:"type:uuid;not null;index:idx_replacement_credits_employee"`
	RuleID             uuid.UUID           `gorm:"type:uuid;not null"`
	TriggerType        string              `gorm:"size:30;not null"`
	TriggerDate        time.Time           `gorm:"type:date;not null"`
	TriggerDescription string              `gorm:"size:500"`
	TriggerReference   string              `gorm:"size:100;not null;uniqueIndex:uq_replacement_trigger_ref"`
	HoursWorked        decimal.NullDecimal `gorm:"type:numeric(6,2)"`
	DaysCredited       decimal.Decimal     `gorm:"type:numeric(6,2);not null"`
	DaysUsed           decimal.Decimal     `gorm:"type:numeric(6,2);not null;default:0"`
	DaysRemaining      decimal.Decimal     `gorm:"type:numeric(6,2);not null"`
	Status             string              `gorm:"size:20;not null;index"`
	ExpiryDate         *time.Time          `gorm:"type:date;index"`
	BalanceID          *uuid.UUID          `gorm:"type:uuid"`
	CreatedBy          *uuid.UUID          `gorm:"type:uuid"`
	ApprovedBy         *uuid.UUID          `gorm:"type:uuid"`
	ApprovedAt         *time.Time
	RejectedBy         *uuid.UUID `gorm:"type:uuid"`
	RejectedAt         *time.Time
	RejectionReason    *string `gorm:"type:text"`
	ExpiredAt          *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ReplacementCreditHistory is append-only. ActorID is nil for jobs.
type ReplacementCreditHistory struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID       `gorm:"type:uuid;not null"`
	CreditID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ActorID    *uuid.UUID      `gorm:"type:uuid"`
	Action     string          `gorm:"size:20;not null"`
	FromStatus string          `gorm:"size:20"`
	ToStatus   string          `gorm:"size:20;not null"`
	Days       decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	Notes      string          `gorm:"type:text"`
	CreatedAt  time.Time
}

func (ReplacementCreditHistory) TableName() string {
	return "replacement_credit_history"
}
