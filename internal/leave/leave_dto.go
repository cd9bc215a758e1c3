package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DecisionApprove = "APPROVE"
	DecisionReject  = "REJECT"
)

type SubmitLeaveRequest struct {
	EmployeeID    string `json:"employee_id" binding:"omitempty,uuid"`
	LeaveTypeCode string `json:"leave_type_code" binding:"required,max=20"`
	StartDate     string `json:"start_date" binding:"required,calendar_date"`
	EndDate       string `json:"end_date" binding:"required,calendar_date"`
	HalfDayStart  bool   `json:"half_day_start"`
	HalfDayEnd    bool   `json:"half_day_end"`
	Reason        string `json:"reason" binding:"max=1000"`
	DocumentURL   string `json:"document_url" binding:"omitempty,url,max=500"`
}

type SubmitLeaveResponse struct {
	RequestID     string          `json:"request_id"`
	RequestNumber string          `json:"request_number"`
	DaysRequested decimal.Decimal `json:"days_requested"`
	ApproverName  string          `json:"approver_name"`
	Status        string          `json:"status"`
}

type DecisionRequest struct {
	Notes string `json:"notes" binding:"max=1000"`
}

type OverrideRequest struct {
	Decision      string `json:"decision" binding:"required,oneof=APPROVE REJECT"`
	Justification string `json:"justification" binding:"required,max=1000"`
}

type LeaveResponse struct {
	ID                string          `json:"id"`
	RequestNumber     string          `json:"request_number"`
	EmployeeID        string          `json:"employee_id"`
	LeaveTypeID       string          `json:"leave_type_id"`
	StartDate         string          `json:"start_date"`
	EndDate           string          `json:"end_date"`
	HalfDayStart      bool            `json:"half_day_start"`
	HalfDayEnd        bool            `json:"half_day_end"`
	DaysRequested     decimal.Decimal `json:"days_requested"`
	Reason            string          `json:"reason,omitempty"`
	DocumentURL       string          `json:"document_url,omitempty"`
	Status            string          `json:"status"`
	CurrentApproverID *string         `json:"current_approver_id,omitempty"`
	ApproverName      string          `json:"approver_name"`
	SubmittedAt       string          `json:"submitted_at"`
	ApprovedBy        *string         `json:"approved_by,omitempty"`
	ApprovedAt        *string         `json:"approved_at,omitempty"`
	RejectedBy        *string         `json:"rejected_by,omitempty"`
	RejectedAt        *string         `json:"rejected_at,omitempty"`
	RejectionReason   *string         `json:"rejection_reason,omitempty"`
	CancelledAt       *string         `json:"cancelled_at,omitempty"`
}

type HistoryResponse struct {
	ID         string `json:"id"`
	ActorID    string `json:"actor_id"`
	Action     string `json:"action"`
	FromStatus string `json:"from_status,omitempty"`
	ToStatus   string `json:"to_status"`
	Notes      string `json:"notes,omitempty"`
	CreatedAt  string `json:"created_at"`
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		RequestNumber:   l.RequestNumber,
		EmployeeID:      l.EmployeeID.String(),
		LeaveTypeID:     l.LeaveTypeID.String(),
		StartDate:       l.StartDate.Format(dateLayout),
		EndDate:         l.EndDate.Format(dateLayout),
		HalfDayStart:    l.HalfDayStart,
		HalfDayEnd:      l.HalfDayEnd,
		DaysRequested:   l.DaysRequested,
		Reason:          l.Reason,
		DocumentURL:     l.DocumentURL,
		Status:          l.Status,
		ApproverName:    l.ApproverName,
		SubmittedAt:     l.SubmittedAt.Format(time.RFC3339),
		ApprovedAt:      formatTime(l.ApprovedAt),
		RejectedAt:      formatTime(l.RejectedAt),
		RejectionReason: l.RejectionReason,
		CancelledAt:     formatTime(l.CancelledAt),
	}
	if l.CurrentApproverID != nil {
		s := l.CurrentApproverID.String()
		resp.CurrentApproverID = &s
	}
	if l.ApprovedBy != nil {
		s := l.ApprovedBy.String()
		resp.ApprovedBy = &s
	}
	if l.RejectedBy != nil {
		s := l.RejectedBy.String()
		resp.RejectedBy = &s
	}
	return resp
}

func mapToListResponse(rows []LeaveRequest) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(rows))
	for _, l := range rows {
		out = append(out, mapToResponse(l))
	}
	return out
}

func mapHistory(rows []ApprovalHistoryEntry) []HistoryResponse {
	out := make([]HistoryResponse, 0, len(rows))
	for _, h := range rows {
		out = append(out, HistoryResponse{
			ID:         h.ID.String(),
			ActorID:    h.ActorID.String(),
			Action:     h.Action,
			FromStatus: h.FromStatus,
			ToStatus:   h.ToStatus,
			Notes:      h.Notes,
			CreatedAt:  h.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}
