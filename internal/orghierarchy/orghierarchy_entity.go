package orghierarchy

import (
	"time"

	"github.com/google/uuid"
)

// OrgHierarchyNode is one employee's position in the reporting tree.
// ReportsToID is the supervisor's employee id.
type OrgHierarchyNode struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_org_hierarchy_employee"`
	EmployeeID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_org_hierarchy_employee"`
	ReportsToID     *uuid.UUID `gorm:"type:uuid;index"`
	DepartmentID    *uuid.UUID `gorm:"type:uuid"`
	HierarchyLevel  int        `gorm:"not null;default:0"`
	CanApproveLeave bool       `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (OrgHierarchyNode) TableName() string {
	return "org_hierarchy"
}
