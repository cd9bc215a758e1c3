package app

import (
	"starhr/internal/attendance"
	"starhr/internal/department"
	"starhr/internal/employee"
	"starhr/internal/entitlement"
	"starhr/internal/leave"
	"starhr/internal/leavebalance"
	"starhr/internal/messaging/kafka"
	"starhr/internal/orghierarchy"
	"starhr/internal/replacementleave"
	"starhr/internal/shared/counter"

	"gorm.io/gorm"
)

// migrate creates the schema for local and test environments. Production
// schemas are managed outside the binary.
func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&department.Department{},
		&employee.Employee{},
		&orghierarchy.OrgHierarchyNode{},
		&entitlement.LeaveType{},
		&entitlement.EntitlementRule{},
		&entitlement.EntitlementException{},
		&leavebalance.LeaveBalance{},
		&leave.LeaveRequest{},
		&leave.ApprovalHistoryEntry{},
		&replacementleave.ReplacementLeaveRule{},
		&replacementleave.ReplacementLeaveCredit{},
		&replacementleave.ReplacementCreditHistory{},
		&attendance.Attendance{},
		&counter.CompanyCounter{},
		&kafka.OutboxEventRecord{},
	)
}
