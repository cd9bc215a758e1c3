package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "PRESENT"
	StatusOnLeave = "ON_LEAVE"

	SourceManual = "MANUAL"
	SourceLeave  = "LEAVE"
)

// Attendance is one employee day. Approved leave marks the day ON_LEAVE and
// keeps a reference to the request that caused it.
type Attendance struct {
	ID             uuid.UUID    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID    `gorm:"column:company_id;type:uuid;not null;uniqueIndex:uq_attendance_day,priority:1"`
	EmployeeID     uuid.UUID    `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_day,priority:2"`
	AttendanceDate time.Time    `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_day,priority:3"`
	ClockIn        *time.Time   `gorm:"column:clock_in;type:timestamptz"`
	ClockOut       *time.Time   `gorm:"column:clock_out;type:timestamptz"`
	Status         string       `gorm:"column:status;type:varchar(20);not null;default:PRESENT"`
	Source         string       `gorm:"column:source;type:varchar(30);not null;default:MANUAL"`
	LeaveRequestID *uuid.UUID   `gorm:"column:leave_request_id;type:uuid;index"`
	Notes          *string      `gorm:"column:notes;type:text"`
	CreatedAt      time.Time    `gorm:"column:created_at"`
	UpdatedAt      time.Time    `gorm:"column:updated_at"`
	Employee       *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
