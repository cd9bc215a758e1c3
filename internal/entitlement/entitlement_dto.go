package entitlement

import (
	"github.com/shopspring/decimal"
)

type CarryForwardPolicy struct {
	Allowed      bool            `json:"allowed"`
	MaxDays      decimal.Decimal `json:"max_days"`
	ExpiryMonths int             `json:"expiry_months"`
}

type LeaveTypeResponse struct {
	ID                 string             `json:"id"`
	Code               string             `json:"code"`
	Name               string             `json:"name"`
	MaxDaysPerYear     decimal.Decimal    `json:"max_days_per_year"`
	CarryForward       CarryForwardPolicy `json:"carry_forward"`
	RequiresApproval   bool               `json:"requires_approval"`
	RequiresDocument   bool               `json:"requires_document"`
	IsPaid             bool               `json:"is_paid"`
	MinNoticeDays      int                `json:"min_notice_days"`
	MaxConsecutiveDays int                `json:"max_consecutive_days"`
	IsActive           bool               `json:"is_active"`
}

type PreviewQuery struct {
	EmployeeID  string `form:"employee_id" binding:"omitempty,uuid"`
	LeaveTypeID string `form:"leave_type_id" binding:"required,uuid"`
	Year        int    `form:"year" binding:"omitempty,min=2000,max=2100"`
}

type EntitlementResponse struct {
	EmployeeID  string          `json:"employee_id"`
	LeaveTypeID string          `json:"leave_type_id"`
	Year        int             `json:"year"`
	Days        decimal.Decimal `json:"days"`
	RuleType    string          `json:"rule_type"`
	RuleID      *string         `json:"rule_id,omitempty"`
	Breakdown   Breakdown       `json:"breakdown"`
}

func mapLeaveType(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:             lt.ID.String(),
		Code:           lt.Code,
		Name:           lt.Name,
		MaxDaysPerYear: lt.MaxDaysPerYear,
		CarryForward: CarryForwardPolicy{
			Allowed:      lt.CarryForwardAllowed,
			MaxDays:      lt.CarryForwardMaxDays,
			ExpiryMonths: lt.CarryForwardExpiryMonths,
		},
		RequiresApproval:   lt.RequiresApproval,
		RequiresDocument:   lt.RequiresDocument,
		IsPaid:             lt.IsPaid,
		MinNoticeDays:      lt.MinNoticeDays,
		MaxConsecutiveDays: lt.MaxConsecutiveDays,
		IsActive:           lt.IsActive,
	}
}

func mapLeaveTypes(types []LeaveType) []LeaveTypeResponse {
	out := make([]LeaveTypeResponse, 0, len(types))
	for _, lt := range types {
		out = append(out, mapLeaveType(lt))
	}
	return out
}

func mapEntitlement(employeeID, leaveTypeID string, year int, e Entitlement) EntitlementResponse {
	resp := EntitlementResponse{
		EmployeeID:  employeeID,
		LeaveTypeID: leaveTypeID,
		Year:        year,
		Days:        e.Days,
		RuleType:    e.RuleType,
		Breakdown:   e.Breakdown,
	}
	if e.RuleID != nil {
		id := e.RuleID.String()
		resp.RuleID = &id
	}
	return resp
}
