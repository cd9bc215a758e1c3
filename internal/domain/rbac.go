package domain

// Roles supplied by the identity layer. Approval capable tiers are MANAGER
// and above; SYSTEM is used for event driven writes.
const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
	RoleHR       = "HR"
	RoleAdmin    = "ADMIN"
	RoleSystem   = "SYSTEM"
)

// Resources and actions checked by the role policy.
const (
	ResourceLeave       = "leave"
	ResourceBalance     = "balance"
	ResourceEntitlement = "entitlement"
	ResourceLeaveType   = "leavetype"
	ResourceReplacement = "replacement"
	ResourceAttendance  = "attendance"

	ActionRead     = "read"
	ActionReadAll  = "read_all"
	ActionCreate   = "create"
	ActionCancel   = "cancel"
	ActionApprove  = "approve"
	ActionOverride = "override"
	ActionExpire   = "expire"
)

// Actor is the authenticated caller of every service operation.
type Actor struct {
	CompanyID  string
	EmployeeID string
	Role       string
}

// SystemActor is used by consumers and scheduled jobs.
func SystemActor(companyID string) Actor {
	return Actor{CompanyID: companyID, Role: RoleSystem}
}

type EnforceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	CompanyID  string `json:"company_id" binding:"required"`
	Role       string `json:"role" binding:"required"`
	Resource   string `json:"resource" binding:"required"`
	Action     string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

// IsApprovalCapable reports whether role may approve or reject requests.
func IsApprovalCapable(role string) bool {
	switch role {
	case RoleManager, RoleHR, RoleAdmin:
		return true
	}
	return false
}

// IsPrivileged reports whether role may override the assigned approver and
// see every request in the company.
func IsPrivileged(role string) bool {
	return role == RoleHR || role == RoleAdmin
}
