package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"starhr/internal/bootstrap"
	"starhr/internal/domain"
	"starhr/internal/entitlement"
	entitlementerrors "starhr/internal/entitlement/errors"
	"starhr/internal/events"
	leaveerrors "starhr/internal/leave/errors"
	"starhr/internal/leavebalance"
	"starhr/internal/messaging/kafka"
	"starhr/internal/orghierarchy"
	"starhr/internal/shared/apperror"
	"starhr/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const overrideNotePrefix = "[OVERRIDE] "

type LeaveTypeProvider interface {
	GetLeaveTypeByCode(ctx context.Context, companyID, code string) (*entitlement.LeaveType, error)
}

type ApproverResolver interface {
	Resolve(ctx context.Context, companyID, employeeID string) (orghierarchy.Approver, error)
}

// AttendanceMarker records approved leave on the attendance sheet.
type AttendanceMarker interface {
	MarkOnLeave(ctx context.Context, companyID, employeeID string, date time.Time, leaveRequestID string) error
}

// TransitionRecorder counts workflow transitions. Optional.
type TransitionRecorder interface {
	RecordTransition(flow, action string)
}

type Deps struct {
	DB         *sql.DB
	Repo       Repository
	Counter    counter.Repository
	Outbox     kafka.OutboxRepository
	LeaveTypes LeaveTypeProvider
	Ledger     leavebalance.Ledger
	Approvers  ApproverResolver
	Attendance AttendanceMarker
	Metrics    TransitionRecorder
	Audit      bootstrap.AuditLogger
	Now        func() time.Time
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actor domain.Actor, req SubmitLeaveRequest) (SubmitLeaveResponse, error)
	Approve(ctx context.Context, actor domain.Actor, id string, req DecisionRequest) (LeaveResponse, error)
	Reject(ctx context.Context, actor domain.Actor, id string, req DecisionRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error)
	Override(ctx context.Context, actor domain.Actor, id string, req OverrideRequest) (LeaveResponse, error)
	ListPending(ctx context.Context, actor domain.Actor) ([]LeaveResponse, error)
	ListMine(ctx context.Context, actor domain.Actor) ([]LeaveResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error)
	History(ctx context.Context, actor domain.Actor, id string) ([]HistoryResponse, error)
}

type service struct {
	Deps
	logger *zap.Logger
}

func NewService(deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Audit == nil {
		deps.Audit = bootstrap.NopAuditLogger{}
	}
	return &service{Deps: deps, logger: l}
}

// decision describes one terminal transition out of pending.
type decision struct {
	action    string
	toStatus  string
	eventType string
	notes     string
	audit     string
}

func (s *service) Submit(ctx context.Context, actor domain.Actor, req SubmitLeaveRequest) (SubmitLeaveResponse, error) {
	employeeID := req.EmployeeID
	if employeeID == "" {
		employeeID = actor.EmployeeID
	}
	s.logger.Debug("submit leave requested",
		zap.String("company_id", actor.CompanyID),
		zap.String("actor_id", actor.EmployeeID),
		zap.String("employee_id", employeeID),
		zap.String("leave_type", req.LeaveTypeCode),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	if employeeID != actor.EmployeeID && !domain.IsPrivileged(actor.Role) {
		return SubmitLeaveResponse{}, leaveerrors.ErrSubmitOnBehalf
	}

	startDate, endDate, err := validateRange(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("submit leave validation failed", zap.Error(err))
		return SubmitLeaveResponse{}, err
	}

	lt, err := s.LeaveTypes.GetLeaveTypeByCode(ctx, actor.CompanyID, req.LeaveTypeCode)
	if err != nil {
		return SubmitLeaveResponse{}, err
	}
	if !lt.IsActive {
		return SubmitLeaveResponse{}, entitlementerrors.ErrLeaveTypeInactive
	}

	days := WorkingDays(startDate, endDate, req.HalfDayStart, req.HalfDayEnd)
	if err := s.checkPolicy(lt, req, startDate, days); err != nil {
		s.logger.Warn("submit leave policy rejected",
			zap.String("employee_id", employeeID),
			zap.String("days", days.String()),
			zap.Error(err),
		)
		return SubmitLeaveResponse{}, err
	}

	approver, err := s.Approvers.Resolve(ctx, actor.CompanyID, employeeID)
	if err != nil {
		s.logger.Warn("submit leave routing failed", zap.String("employee_id", employeeID), zap.Error(err))
		return SubmitLeaveResponse{}, err
	}

	companyUUID, err := uuid.Parse(actor.CompanyID)
	if err != nil {
		return SubmitLeaveResponse{}, err
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return SubmitLeaveResponse{}, err
	}
	approverUUID, err := uuid.Parse(approver.ApproverID)
	if err != nil {
		return SubmitLeaveResponse{}, err
	}
	actorUUID, err := uuid.Parse(actor.EmployeeID)
	if err != nil {
		return SubmitLeaveResponse{}, err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return SubmitLeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.Repo.WithTx(tx)
	ledger := s.Ledger.WithTx(tx)

	if err := qtx.LockEmployee(ctx, actor.CompanyID, employeeID); err != nil {
		s.logger.Error("submit leave employee lock failed", zap.Error(err))
		return SubmitLeaveResponse{}, err
	}

	balance, err := ledger.GetOrCreate(ctx, actor.CompanyID, employeeID, lt.ID.String(), startDate.Year())
	if err != nil {
		return SubmitLeaveResponse{}, err
	}
	balance, err = ledger.LockForUpdate(ctx, actor.CompanyID, balance.ID.String())
	if err != nil {
		return SubmitLeaveResponse{}, err
	}
	if available := balance.Available(); available.LessThan(days) {
		s.logger.Warn("submit leave insufficient balance",
			zap.String("employee_id", employeeID),
			zap.String("available", available.String()),
			zap.String("requested", days.String()),
		)
		return SubmitLeaveResponse{}, leaveerrors.ErrInsufficientBalance.WithDetails(map[string]any{
			"available": available.String(),
			"requested": days.String(),
		})
	}

	overlap, err := qtx.HasOverlap(ctx, actor.CompanyID, employeeID, startDate, endDate)
	if err != nil {
		s.logger.Error("submit leave overlap check failed", zap.Error(err))
		return SubmitLeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("submit leave overlap detected",
			zap.String("employee_id", employeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return SubmitLeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	seq, err := s.Counter.WithTx(tx).GetNextValue(ctx, actor.CompanyID, counter.TypeLeaveRequest)
	if err != nil {
		s.logger.Error("submit leave counter failed", zap.Error(err))
		return SubmitLeaveResponse{}, err
	}

	now := s.Now()
	l := &LeaveRequest{
		ID:                uuid.New(),
		CompanyID:         companyUUID,
		RequestNumber:     counter.FormatLeaveNumber(startDate.Year(), seq),
		EmployeeID:        employeeUUID,
		LeaveTypeID:       lt.ID,
		BalanceID:         balance.ID,
		StartDate:         startDate,
		EndDate:           endDate,
		HalfDayStart:      req.HalfDayStart,
		HalfDayEnd:        req.HalfDayEnd,
		DaysRequested:     days,
		Reason:            req.Reason,
		DocumentURL:       req.DocumentURL,
		Status:            StatusPending,
		CurrentApproverID: &approverUUID,
		ApproverName:      approver.ApproverName,
		HierarchySnapshot: approver.Snapshot,
		SubmittedAt:       now,
	}
	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return SubmitLeaveResponse{}, err
	}

	if err := ledger.Reserve(ctx, actor.CompanyID, balance.ID.String(), days); err != nil {
		return SubmitLeaveResponse{}, err
	}

	if err := s.record(ctx, qtx, l, actorUUID, ActionSubmitted, "", StatusPending, req.Reason); err != nil {
		return SubmitLeaveResponse{}, err
	}
	if err := s.publish(ctx, tx, l, actor.EmployeeID, events.LeaveSubmitted, "", StatusPending); err != nil {
		return SubmitLeaveResponse{}, err
	}

	if !lt.RequiresApproval {
		if err := s.transition(ctx, tx, qtx, ledger, l, actorUUID, decision{
			action:    ActionApproved,
			toStatus:  StatusApproved,
			eventType: events.LeaveApproved,
			notes:     "approved automatically, leave type does not require approval",
		}); err != nil {
			return SubmitLeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return SubmitLeaveResponse{}, err
	}

	s.observe(ActionSubmitted)
	if l.Status == StatusApproved {
		s.observe(ActionApproved)
		s.audit(ctx, l, actor.EmployeeID, bootstrap.ActionLeaveAutoApproved, "")
		s.markAttendance(ctx, l)
	}

	s.logger.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("request_number", l.RequestNumber),
		zap.String("employee_id", employeeID),
		zap.String("approver_id", approver.ApproverID),
		zap.String("approver_source", approver.Source),
		zap.String("status", l.Status),
	)

	return SubmitLeaveResponse{
		RequestID:     l.ID.String(),
		RequestNumber: l.RequestNumber,
		DaysRequested: days,
		ApproverName:  approver.ApproverName,
		Status:        l.Status,
	}, nil
}

func validateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	endDate, err := parseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	if startDate.Year() != endDate.Year() {
		return time.Time{}, time.Time{}, leaveerrors.ErrCrossYear
	}
	return startDate, endDate, nil
}

func (s *service) checkPolicy(lt *entitlement.LeaveType, req SubmitLeaveRequest, startDate time.Time, days decimal.Decimal) error {
	if !days.IsPositive() {
		return leaveerrors.ErrNoWorkingDays
	}
	if lt.MaxConsecutiveDays > 0 && days.GreaterThan(decimal.NewFromInt(int64(lt.MaxConsecutiveDays))) {
		return leaveerrors.ErrExceedsMaxConsecutive.WithDetails(map[string]any{
			"max_consecutive_days": lt.MaxConsecutiveDays,
			"requested":            days.String(),
		})
	}
	if lt.MinNoticeDays > 0 {
		notice := int(startDate.Sub(truncateDay(s.Now())).Hours() / 24)
		if notice < lt.MinNoticeDays {
			return leaveerrors.ErrInsufficientNotice.WithDetails(map[string]any{
				"min_notice_days": lt.MinNoticeDays,
				"notice_days":     notice,
			})
		}
	}
	if lt.RequiresDocument && strings.TrimSpace(req.DocumentURL) == "" {
		return leaveerrors.ErrDocumentRequired
	}
	return nil
}

func (s *service) Approve(ctx context.Context, actor domain.Actor, id string, req DecisionRequest) (LeaveResponse, error) {
	return s.decide(ctx, actor, id, false, decision{
		action:    ActionApproved,
		toStatus:  StatusApproved,
		eventType: events.LeaveApproved,
		notes:     req.Notes,
		audit:     bootstrap.ActionLeaveApproved,
	})
}

// Reject notes are optional and land in rejection_reason as given.
func (s *service) Reject(ctx context.Context, actor domain.Actor, id string, req DecisionRequest) (LeaveResponse, error) {
	return s.decide(ctx, actor, id, false, decision{
		action:    ActionRejected,
		toStatus:  StatusRejected,
		eventType: events.LeaveRejected,
		notes:     req.Notes,
		audit:     bootstrap.ActionLeaveRejected,
	})
}

func (s *service) Override(ctx context.Context, actor domain.Actor, id string, req OverrideRequest) (LeaveResponse, error) {
	if !domain.IsPrivileged(actor.Role) {
		s.logger.Warn("override leave forbidden", zap.String("actor_id", actor.EmployeeID), zap.String("role", actor.Role))
		return LeaveResponse{}, leaveerrors.ErrOverrideRoleRequired
	}
	justification := strings.TrimSpace(req.Justification)
	if justification == "" {
		return LeaveResponse{}, leaveerrors.ErrJustificationRequired
	}

	d := decision{
		action:    ActionOverridden,
		toStatus:  StatusApproved,
		eventType: events.LeaveOverridden,
		notes:     overrideNotePrefix + justification,
		audit:     bootstrap.ActionLeaveOverridden,
	}
	switch strings.ToUpper(req.Decision) {
	case DecisionApprove:
	case DecisionReject:
		d.toStatus = StatusRejected
	default:
		return LeaveResponse{}, apperror.InvalidField("decision")
	}
	return s.decide(ctx, actor, id, true, d)
}

// decide runs approve, reject and override. override skips the assigned
// approver check but never the self check.
func (s *service) decide(ctx context.Context, actor domain.Actor, id string, override bool, d decision) (LeaveResponse, error) {
	s.logger.Debug("leave decision requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actor.EmployeeID),
		zap.String("role", actor.Role),
		zap.String("action", d.action),
		zap.String("to_status", d.toStatus),
	)

	if !domain.IsApprovalCapable(actor.Role) {
		return LeaveResponse{}, leaveerrors.ErrApproverRoleRequired
	}
	actorUUID, err := uuid.Parse(actor.EmployeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrApproverRoleRequired
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("leave decision begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.Repo.WithTx(tx)
	l, err := s.lockPending(ctx, qtx, actor.CompanyID, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	if l.EmployeeID == actorUUID {
		s.logger.Warn("leave self decision rejected", zap.String("leave_id", id), zap.String("actor_id", actor.EmployeeID))
		return LeaveResponse{}, leaveerrors.ErrSelfApproval
	}
	if !override && (l.CurrentApproverID == nil || *l.CurrentApproverID != actorUUID) {
		s.logger.Warn("leave decision by non assigned approver",
			zap.String("leave_id", id),
			zap.String("actor_id", actor.EmployeeID),
		)
		return LeaveResponse{}, leaveerrors.ErrNotAssignedApprover
	}

	if err := s.transition(ctx, tx, qtx, s.Ledger.WithTx(tx), l, actorUUID, d); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("leave decision commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.observe(d.action)
	s.audit(ctx, l, actor.EmployeeID, d.audit, d.notes)
	if l.Status == StatusApproved {
		s.markAttendance(ctx, l)
	}

	s.logger.Info("leave decision success",
		zap.String("leave_id", id),
		zap.String("actor_id", actor.EmployeeID),
		zap.String("action", d.action),
		zap.String("status", l.Status),
	)
	return mapToResponse(*l), nil
}

func (s *service) Cancel(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error) {
	s.logger.Debug("cancel leave requested", zap.String("leave_id", id), zap.String("actor_id", actor.EmployeeID))

	actorUUID, err := uuid.Parse(actor.EmployeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrNotRequester
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.Repo.WithTx(tx)
	l, err := s.lockPending(ctx, qtx, actor.CompanyID, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.EmployeeID != actorUUID {
		s.logger.Warn("cancel leave by non requester", zap.String("leave_id", id), zap.String("actor_id", actor.EmployeeID))
		return LeaveResponse{}, leaveerrors.ErrNotRequester
	}

	if err := s.transition(ctx, tx, qtx, s.Ledger.WithTx(tx), l, actorUUID, decision{
		action:    ActionCancelled,
		toStatus:  StatusWithdrawn,
		eventType: events.LeaveCancelled,
	}); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.observe(ActionCancelled)
	s.audit(ctx, l, actor.EmployeeID, bootstrap.ActionLeaveCancelled, "")
	s.logger.Info("cancel leave success", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

func (s *service) lockPending(ctx context.Context, qtx Repository, companyID, id string) (*LeaveRequest, error) {
	l, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("load leave failed", zap.String("leave_id", id), zap.Error(err))
		return nil, err
	}
	if l.Status != StatusPending {
		return nil, leaveerrors.ErrInvalidState.WithDetails(map[string]any{"status": l.Status})
	}
	return l, nil
}

// transition moves l out of pending, reconciles the balance and writes the
// history and outbox rows. l is updated in place.
func (s *service) transition(ctx context.Context, tx *sql.Tx, qtx Repository, ledger leavebalance.Ledger, l *LeaveRequest, actorID uuid.UUID, d decision) error {
	now := s.Now()
	changes := map[string]any{"status": d.toStatus}

	switch d.toStatus {
	case StatusApproved:
		changes["approved_by"] = actorID
		changes["approved_at"] = now
	case StatusRejected:
		changes["rejected_by"] = actorID
		changes["rejected_at"] = now
		changes["rejection_reason"] = d.notes
	case StatusWithdrawn:
		changes["cancelled_at"] = now
	}

	affected, err := qtx.UpdateStatus(ctx, l.CompanyID.String(), l.ID.String(), StatusPending, changes)
	if err != nil {
		s.logger.Error("leave status update failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return err
	}
	if affected == 0 {
		return leaveerrors.ErrInvalidState
	}

	companyID := l.CompanyID.String()
	balanceID := l.BalanceID.String()
	if d.toStatus == StatusApproved {
		err = ledger.Commit(ctx, companyID, balanceID, l.DaysRequested)
	} else {
		err = ledger.Release(ctx, companyID, balanceID, l.DaysRequested)
	}
	if err != nil {
		return err
	}

	l.Status = d.toStatus
	switch d.toStatus {
	case StatusApproved:
		l.ApprovedBy = &actorID
		l.ApprovedAt = &now
	case StatusRejected:
		notes := d.notes
		l.RejectedBy = &actorID
		l.RejectedAt = &now
		l.RejectionReason = &notes
	case StatusWithdrawn:
		l.CancelledAt = &now
	}

	if err := s.record(ctx, qtx, l, actorID, d.action, StatusPending, d.toStatus, d.notes); err != nil {
		return err
	}
	return s.publish(ctx, tx, l, actorID.String(), d.eventType, StatusPending, d.toStatus)
}

func (s *service) record(ctx context.Context, qtx Repository, l *LeaveRequest, actorID uuid.UUID, action, from, to, notes string) error {
	entry := &ApprovalHistoryEntry{
		ID:             uuid.New(),
		CompanyID:      l.CompanyID,
		LeaveRequestID: l.ID,
		ActorID:        actorID,
		Action:         action,
		FromStatus:     from,
		ToStatus:       to,
		Notes:          notes,
		CreatedAt:      s.Now(),
	}
	if err := qtx.AddHistory(ctx, entry); err != nil {
		s.logger.Error("leave history write failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) publish(ctx context.Context, tx *sql.Tx, l *LeaveRequest, actorID, eventType, from, to string) error {
	if s.Outbox == nil {
		return nil
	}
	event, err := kafka.NewOutboxEvent(ctx, l.CompanyID.String(), kafka.AggregateLeaveRequest, l.ID.String(), eventType, events.LeaveLifecycleTopic, events.LeaveLifecycleEvent{
		EventType:      eventType,
		LeaveRequestID: l.ID.String(),
		RequestNumber:  l.RequestNumber,
		CompanyID:      l.CompanyID.String(),
		EmployeeID:     l.EmployeeID.String(),
		LeaveTypeID:    l.LeaveTypeID.String(),
		ActorID:        actorID,
		FromStatus:     from,
		ToStatus:       to,
		StartDate:      l.StartDate.Format(dateLayout),
		EndDate:        l.EndDate.Format(dateLayout),
		Days:           l.DaysRequested.String(),
		OccurredAt:     s.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if err := s.Outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("leave outbox write failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return err
	}
	return nil
}

// markAttendance runs after commit; failures are logged only.
func (s *service) markAttendance(ctx context.Context, l *LeaveRequest) {
	if s.Attendance == nil {
		return
	}
	for _, day := range WorkingDates(l.StartDate, l.EndDate) {
		if err := s.Attendance.MarkOnLeave(ctx, l.CompanyID.String(), l.EmployeeID.String(), day, l.ID.String()); err != nil {
			s.logger.Error("mark attendance on leave failed",
				zap.String("leave_id", l.ID.String()),
				zap.String("date", day.Format(dateLayout)),
				zap.Error(err),
			)
		}
	}
}

// audit runs after commit.
func (s *service) audit(ctx context.Context, l *LeaveRequest, actorID, action, notes string) {
	meta := map[string]any{
		"request_number": l.RequestNumber,
		"employee_id":    l.EmployeeID.String(),
		"leave_type_id":  l.LeaveTypeID.String(),
		"status":         l.Status,
		"days":           l.DaysRequested.String(),
	}
	if notes != "" {
		meta["notes"] = notes
	}
	s.Audit.Log(ctx, bootstrap.AuditLog{
		Action:    action,
		Message:   "leave request " + strings.ToLower(l.Status),
		CompanyID: l.CompanyID.String(),
		ActorID:   actorID,
		Entity:    kafka.AggregateLeaveRequest,
		EntityID:  l.ID.String(),
		Meta:      meta,
	})
}

func (s *service) observe(action string) {
	if s.Metrics != nil {
		s.Metrics.RecordTransition("leave", action)
	}
}

func (s *service) ListPending(ctx context.Context, actor domain.Actor) ([]LeaveResponse, error) {
	var approverID *string
	if !domain.IsPrivileged(actor.Role) {
		approverID = &actor.EmployeeID
	}
	rows, err := s.Repo.ListPending(ctx, actor.CompanyID, approverID)
	if err != nil {
		s.logger.Error("list pending leave failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) ListMine(ctx context.Context, actor domain.Actor) ([]LeaveResponse, error) {
	rows, err := s.Repo.ListByEmployee(ctx, actor.CompanyID, actor.EmployeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error) {
	l, err := s.visible(ctx, actor, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) History(ctx context.Context, actor domain.Actor, id string) ([]HistoryResponse, error) {
	l, err := s.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.Repo.ListHistory(ctx, actor.CompanyID, l.ID.String())
	if err != nil {
		return nil, err
	}
	return mapHistory(rows), nil
}

// visible loads a request the actor may see: their own, one routed to them,
// or any request for HR and ADMIN.
func (s *service) visible(ctx context.Context, actor domain.Actor, id string) (*LeaveRequest, error) {
	l, err := s.Repo.FindByID(ctx, actor.CompanyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	if domain.IsPrivileged(actor.Role) || l.EmployeeID.String() == actor.EmployeeID {
		return l, nil
	}
	if l.CurrentApproverID != nil && l.CurrentApproverID.String() == actor.EmployeeID {
		return l, nil
	}
	return nil, leaveerrors.ErrLeaveForbidden
}
