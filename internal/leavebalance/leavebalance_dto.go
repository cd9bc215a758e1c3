package leavebalance

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type BalanceQuery struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Year       int    `form:"year" binding:"omitempty,min=2000,max=2100"`
}

type BalanceResponse struct {
	ID                    string          `json:"id"`
	EmployeeID            string          `json:"employee_id"`
	LeaveTypeID           string          `json:"leave_type_id"`
	LeaveTypeCode         string          `json:"leave_type_code"`
	LeaveTypeName         string          `json:"leave_type_name"`
	Year                  int             `json:"year"`
	AllocatedDays         decimal.Decimal `json:"allocated_days"`
	TakenDays             decimal.Decimal `json:"taken_days"`
	PendingDays           decimal.Decimal `json:"pending_days"`
	CarryForwardDays      decimal.Decimal `json:"carry_forward_days"`
	CarryForwardExpiresAt *string         `json:"carry_forward_expires_at,omitempty"`
	AvailableDays         decimal.Decimal `json:"available_days"`
	RuleType              string          `json:"rule_type"`
	Breakdown             json.RawMessage `json:"breakdown,omitempty"`
}

func mapToResponse(b LeaveBalance, code, name string) BalanceResponse {
	resp := BalanceResponse{
		ID:               b.ID.String(),
		EmployeeID:       b.EmployeeID.String(),
		LeaveTypeID:      b.LeaveTypeID.String(),
		LeaveTypeCode:    code,
		LeaveTypeName:    name,
		Year:             b.Year,
		AllocatedDays:    b.AllocatedDays,
		TakenDays:        b.TakenDays,
		PendingDays:      b.PendingDays,
		CarryForwardDays: b.CarryForwardDays,
		AvailableDays:    b.Available(),
		RuleType:         b.RuleType,
	}
	if b.CarryForwardExpiresAt != nil {
		s := b.CarryForwardExpiresAt.Format("2006-01-02")
		resp.CarryForwardExpiresAt = &s
	}
	if len(b.Breakdown) > 0 {
		resp.Breakdown = json.RawMessage(b.Breakdown)
	}
	return resp
}
