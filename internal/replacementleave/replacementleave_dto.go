package replacementleave

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreditRequest struct {
	EmployeeID       string           `json:"employee_id" binding:"required,uuid"`
	TriggerType      string           `json:"trigger_type" binding:"required,max=30"`
	TriggerDate      string           `json:"trigger_date" binding:"required,calendar_date"`
	Description      string           `json:"description" binding:"max=500"`
	TriggerReference string           `json:"trigger_reference" binding:"required,max=100"`
	HoursWorked      *decimal.Decimal `json:"hours_worked"`
	Days             *decimal.Decimal `json:"days"`
}

type ApproveCreditRequest struct {
	Notes        string           `json:"notes" binding:"max=1000"`
	AdjustedDays *decimal.Decimal `json:"adjusted_days"`
}

type RejectCreditRequest struct {
	Reason string `json:"reason" binding:"required,max=1000"`
}

type ListQuery struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=pending approved rejected expired"`
}

type CreditResponse struct {
	ID                 string           `json:"id"`
	EmployeeID         string           `json:"employee_id"`
	RuleID             string           `json:"rule_id"`
	TriggerType        string           `json:"trigger_type"`
	TriggerDate        string           `json:"trigger_date"`
	TriggerDescription string           `json:"trigger_description,omitempty"`
	TriggerReference   string           `json:"trigger_reference"`
	HoursWorked        *decimal.Decimal `json:"hours_worked,omitempty"`
	DaysCredited       decimal.Decimal  `json:"days_credited"`
	DaysUsed           decimal.Decimal  `json:"days_used"`
	DaysRemaining      decimal.Decimal  `json:"days_remaining"`
	Status             string           `json:"status"`
	ExpiryDate         *string          `json:"expiry_date,omitempty"`
	ApprovedBy         *string          `json:"approved_by,omitempty"`
	ApprovedAt         *string          `json:"approved_at,omitempty"`
	RejectedBy         *string          `json:"rejected_by,omitempty"`
	RejectionReason    *string          `json:"rejection_reason,omitempty"`
	CreatedAt          string           `json:"created_at"`
}

func mapToResponse(c ReplacementLeaveCredit) CreditResponse {
	resp := CreditResponse{
		ID:                 c.ID.String(),
		EmployeeID:         c.EmployeeID.String(),
		RuleID:             c.RuleID.String(),
		TriggerType:        c.TriggerType,
		TriggerDate:        c.TriggerDate.Format(dateLayout),
		TriggerDescription: c.TriggerDescription,
		TriggerReference:   c.TriggerReference,
		DaysCredited:       c.DaysCredited,
		DaysUsed:           c.DaysUsed,
		DaysRemaining:      c.DaysRemaining,
		Status:             c.Status,
		RejectionReason:    c.RejectionReason,
		CreatedAt:          c.CreatedAt.Format(time.RFC3339),
	}
	if c.HoursWorked.Valid {
		h := c.HoursWorked.Decimal
		resp.HoursWorked = &h
	}
	if c.ExpiryDate != nil {
		s := c.ExpiryDate.Format(dateLayout)
		resp.ExpiryDate = &s
	}
	if c.ApprovedBy != nil {
		s := c.ApprovedBy.String()
		resp.ApprovedBy = &s
	}
	if c.ApprovedAt != nil {
		s := c.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &s
	}
	if c.RejectedBy != nil {
		s := c.RejectedBy.String()
		resp.RejectedBy = &s
	}
	return resp
}

func mapToListResponse(rows []ReplacementLeaveCredit) []CreditResponse {
	out := make([]CreditResponse, 0, len(rows))
	for _, c := range rows {
		out = append(out, mapToResponse(c))
	}
	return out
}
