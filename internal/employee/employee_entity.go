package employee

import (
	"time"

	"github.com/google/uuid"
)

// Employee is the read side of the employee master record. Leave rules only
// look at join date, grade, department and designation.
type Employee struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	DepartmentID *uuid.UUID `gorm:"type:uuid"`
	FullName     string     `gorm:"size:255;not null"`
	Email        string     `gorm:"size:255"`
	JoinDate     time.Time  `gorm:"type:date;not null"`
	Grade        string     `gorm:"size:30"`
	Designation  string     `gorm:"size:100"`
	IsActive     bool       `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e Employee) DepartmentIDString() string {
	if e.DepartmentID == nil {
		return ""
	}
	return e.DepartmentID.String()
}
