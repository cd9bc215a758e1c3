package attendance

import (
	"context"
	"time"

	attendanceerrors "starhr/internal/attendance/errors"
	"starhr/internal/domain"
	"starhr/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	MarkOnLeave(ctx context.Context, companyID, employeeID string, date time.Time, leaveRequestID string) error
	List(ctx context.Context, actor domain.Actor, query ListQuery) ([]AttendanceResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{repo: repo, logger: l}
}

// MarkOnLeave records the employee as on leave for date. Replaying the same
// request id for the same day leaves a single row.
func (s *service) MarkOnLeave(ctx context.Context, companyID, employeeID string, date time.Time, leaveRequestID string) error {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return apperror.InvalidField("company_id")
	}
	eid, err := uuid.Parse(employeeID)
	if err != nil {
		return apperror.InvalidField("employee_id")
	}
	if leaveRequestID == "" {
		return attendanceerrors.ErrLeaveRequestRequired
	}
	rid, err := uuid.Parse(leaveRequestID)
	if err != nil {
		return apperror.InvalidField("leave_request_id")
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	row := &Attendance{
		ID:             uuid.New(),
		CompanyID:      cid,
		EmployeeID:     eid,
		AttendanceDate: day,
		Status:         StatusOnLeave,
		Source:         SourceLeave,
		LeaveRequestID: &rid,
	}
	if err := s.repo.UpsertOnLeave(ctx, row); err != nil {
		s.logger.Error("mark on leave failed",
			zap.String("company_id", companyID),
			zap.String("employee_id", employeeID),
			zap.String("date", day.Format(dateLayout)),
			zap.Error(err),
		)
		return err
	}

	s.logger.Debug("attendance marked on leave",
		zap.String("employee_id", employeeID),
		zap.String("date", day.Format(dateLayout)),
		zap.String("leave_request_id", leaveRequestID),
	)
	return nil
}

func (s *service) List(ctx context.Context, actor domain.Actor, query ListQuery) ([]AttendanceResponse, error) {
	from, err := time.Parse(dateLayout, query.From)
	if err != nil {
		return nil, apperror.InvalidField("from")
	}
	to, err := time.Parse(dateLayout, query.To)
	if err != nil {
		return nil, apperror.InvalidField("to")
	}
	if from.After(to) {
		return nil, attendanceerrors.ErrInvalidPeriod
	}

	employeeID := query.EmployeeID
	if !domain.IsApprovalCapable(actor.Role) {
		employeeID = actor.EmployeeID
	}

	rows, err := s.repo.List(ctx, actor.CompanyID, employeeID, from, to)
	if err != nil {
		s.logger.Error("list attendance failed", zap.String("company_id", actor.CompanyID), zap.Error(err))
		return nil, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format(dateLayout),
		Status:         a.Status,
		Source:         a.Source,
		Notes:          a.Notes,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
	}
	if a.ClockIn != nil {
		v := a.ClockIn.Format(time.RFC3339)
		resp.ClockIn = &v
	}
	if a.ClockOut != nil {
		v := a.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	if a.LeaveRequestID != nil {
		v := a.LeaveRequestID.String()
		resp.LeaveRequestID = &v
	}
	return resp
}
