package attendance

type ListQuery struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	From       string `form:"from" binding:"required,datetime=2006-01-02"`
	To         string `form:"to" binding:"required,datetime=2006-01-02"`
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	AttendanceDate string  `json:"attendance_date"`
	ClockIn        *string `json:"clock_in,omitempty"`
	ClockOut       *string `json:"clock_out,omitempty"`
	Status         string  `json:"status"`
	Source         string  `json:"source"`
	LeaveRequestID *string `json:"leave_request_id,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}
