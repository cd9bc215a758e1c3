package leavebalance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// LeaveBalance is one ledger row per employee, leave type and year.
type LeaveBalance struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID             uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balance_key"`
	EmployeeID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balance_key"`
	LeaveTypeID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balance_key"`
	Year                  int             `gorm:"not null;uniqueIndex:uq_leave_balance_key"`
	AllocatedDays         decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	TakenDays             decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	PendingDays           decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	CarryForwardDays      decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	CarryForwardExpiresAt *time.Time      `gorm:"type:date"`
	RuleType              string          `gorm:"size:60;not null"`
	RuleID                *uuid.UUID      `gorm:"type:uuid"`
	Breakdown             datatypes.JSON  `gorm:"type:jsonb"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Available is allocated plus carried forward, less taken and pending.
func (b LeaveBalance) Available() decimal.Decimal {
	return b.AllocatedDays.Add(b.CarryForwardDays).Sub(b.TakenDays).Sub(b.PendingDays)
}
