package entitlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LeaveType struct {
	ID                       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID                uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_type_code"`
	Code                     string          `gorm:"size:20;not null;uniqueIndex:uq_leave_type_code"`
	Name                     string          `gorm:"size:100;not null"`
	MaxDaysPerYear           decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	CarryForwardAllowed      bool            `gorm:"not null;default:false"`
	CarryForwardMaxDays      decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	CarryForwardExpiryMonths int             `gorm:"not null;default:0"`
	RequiresApproval         bool            `gorm:"not null;default:true"`
	RequiresDocument         bool            `gorm:"not null;default:false"`
	IsPaid                   bool            `gorm:"not null;default:true"`
	MinNoticeDays            int             `gorm:"not null;default:0"`
	MaxConsecutiveDays       int             `gorm:"not null;default:0"` // 0 means unlimited
	IsActive                 bool            `gorm:"not null;default:true"`
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// EntitlementRule grants AllocatedDays to employees matching every filter it
// sets. Empty string filters and a nil department match anyone.
type EntitlementRule struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID       uuid.UUID `gorm:"type:uuid;not null;index:idx_entitlement_rules_lookup"`
	LeaveTypeID     uuid.UUID `gorm:"type:uuid;not null;index:idx_entitlement_rules_lookup"`
	Description     string    `gorm:"size:255"`
	MinTenureMonths int       `gorm:"not null;default:0"`
	MaxTenureMonths *int
	EmployeeGrade   string          `gorm:"size:30"`
	DepartmentID    *uuid.UUID      `gorm:"type:uuid"`
	Designation     string          `gorm:"size:100"`
	AllocatedDays   decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	EffectiveFrom   time.Time       `gorm:"type:date;not null"`
	EffectiveTo     *time.Time      `gorm:"type:date"`
	Priority        int             `gorm:"not null;default:100"`
	IsActive        bool            `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type EntitlementException struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_entitlement_exceptions_lookup"`
	EmployeeID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_entitlement_exceptions_lookup"`
	LeaveTypeID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_entitlement_exceptions_lookup"`
	Year          int             `gorm:"not null;index:idx_entitlement_exceptions_lookup"`
	AllocatedDays decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	Reason        string          `gorm:"type:text;not null"`
	ApprovedBy    uuid.UUID       `gorm:"type:uuid;not null"`
	IsActive      bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
