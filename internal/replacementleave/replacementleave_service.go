package replacementleave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"starhr/internal/bootstrap"
	"starhr/internal/domain"
	"starhr/internal/employee"
	employeeerrors "starhr/internal/employee/errors"
	"starhr/internal/entitlement"
	"starhr/internal/events"
	"starhr/internal/leavebalance"
	"starhr/internal/messaging/kafka"
	replacementleaveerrors "starhr/internal/replacementleave/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dateLayout         = "2006-01-02"
	DefaultExpiryBatch = 200
)

type EmployeeReader interface {
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*employee.Employee, error)
}

type TransitionRecorder interface {
	RecordTransition(flow, action string)
}

type Deps struct {
	DB        *sql.DB
	Repo      Repository
	Employees EmployeeReader
	Ledger    leavebalance.Ledger
	Outbox    kafka.OutboxRepository
	Metrics   TransitionRecorder
	Audit     bootstrap.AuditLogger
	Now       func() time.Time
}

//go:generate mockgen -source=replacementleave_service.go -destination=mock/replacementleave_service_mock.go -package=mock
type Service interface {
	Credit(ctx context.Context, actor domain.Actor, req CreditRequest) (CreditResponse, error)
	Approve(ctx context.Context, actor domain.Actor, id string, req ApproveCreditRequest) (CreditResponse, error)
	Reject(ctx context.Context, actor domain.Actor, id string, req RejectCreditRequest) (CreditResponse, error)
	List(ctx context.Context, actor domain.Actor, query ListQuery) ([]CreditResponse, error)
	ExpireDue(ctx context.Context, now time.Time) (int, error)
}

type service struct {
	Deps
	logger *zap.Logger
}

func NewService(deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("replacementleave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("replacementleave.service")
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Audit == nil {
		deps.Audit = bootstrap.NopAuditLogger{}
	}
	return &service{Deps: deps, logger: l}
}

func actorUUID(actor domain.Actor) *uuid.UUID {
	id, err := uuid.Parse(actor.EmployeeID)
	if err != nil {
		return nil
	}
	return &id
}

func (s *service) Credit(ctx context.Context, actor domain.Actor, req CreditRequest) (CreditResponse, error) {
	s.logger.Debug("credit replacement leave requested",
		zap.String("company_id", actor.CompanyID),
		zap.String("actor_id", actor.EmployeeID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("trigger_type", req.TriggerType),
		zap.String("trigger_reference", req.TriggerReference),
	)

	if !domain.IsApprovalCapable(actor.Role) && actor.Role != domain.RoleSystem {
		return CreditResponse{}, replacementleaveerrors.ErrCreditForbidden
	}

	triggerDate, err := time.Parse(dateLayout, req.TriggerDate)
	if err != nil {
		return CreditResponse{}, replacementleaveerrors.ErrInvalidTriggerDate
	}
	triggerType := strings.ToUpper(strings.TrimSpace(req.TriggerType))

	existing, err := s.Repo.FindByTriggerReference(ctx, actor.CompanyID, req.TriggerReference)
	if err != nil {
		s.logger.Error("credit replacement leave duplicate check failed", zap.Error(err))
		return CreditResponse{}, err
	}
	if existing != nil {
		s.logger.Warn("credit replacement leave duplicate trigger",
			zap.String("trigger_reference", req.TriggerReference),
			zap.String("credit_id", existing.ID.String()),
		)
		return CreditResponse{}, replacementleaveerrors.ErrDuplicateTrigger
	}

	rule, err := s.Repo.FindActiveRule(ctx, actor.CompanyID, triggerType, triggerDate)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CreditResponse{}, replacementleaveerrors.ErrRuleNotFound
		}
		return CreditResponse{}, err
	}

	emp, err := s.Employees.FindByIDAndCompany(ctx, actor.CompanyID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CreditResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return CreditResponse{}, err
	}

	attrs := entitlement.EmployeeAttributes{
		TenureMonths: entitlement.TenureMonths(emp.JoinDate, triggerDate),
		Grade:        emp.Grade,
		DepartmentID: emp.DepartmentIDString(),
		Designation:  emp.Designation,
	}
	eligible, err := Eligible(*rule, attrs, triggerType)
	if err != nil {
		s.logger.Error("replacement rule eligibility failed", zap.String("rule_id", rule.ID.String()), zap.Error(err))
		return CreditResponse{}, replacementleaveerrors.ErrInvalidRule
	}
	if !eligible {
		s.logger.Warn("credit replacement leave not eligible",
			zap.String("employee_id", req.EmployeeID),
			zap.String("rule_id", rule.ID.String()),
		)
		return CreditResponse{}, replacementleaveerrors.ErrNotEligible
	}

	days, err := ComputeDays(*rule, req.HoursWorked, req.Days)
	if err != nil {
		return CreditResponse{}, err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("credit replacement leave begin tx failed", zap.Error(err))
		return CreditResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.Repo.WithTx(tx)

	monthFrom, monthTo := monthBounds(triggerDate)
	creditedMonth, err := qtx.SumCredited(ctx, actor.CompanyID, req.EmployeeID, monthFrom, monthTo)
	if err != nil {
		return CreditResponse{}, err
	}
	yearFrom, yearTo := yearBounds(triggerDate)
	creditedYear, err := qtx.SumCredited(ctx, actor.CompanyID, req.EmployeeID, yearFrom, yearTo)
	if err != nil {
		return CreditResponse{}, err
	}
	days, err = ApplyPeriodCaps(*rule, days, creditedMonth, creditedYear)
	if err != nil {
		s.logger.Warn("credit replacement leave cap reached",
			zap.String("employee_id", req.EmployeeID),
			zap.String("credited_month", creditedMonth.String()),
			zap.String("credited_year", creditedYear.String()),
		)
		return CreditResponse{}, err
	}

	credit := &ReplacementLeaveCredit{
		ID:                 uuid.New(),
		CompanyID:          emp.CompanyID,
		EmployeeID:         emp.ID,
		RuleID:             rule.ID,
		TriggerType:        triggerType,
		TriggerDate:        triggerDate,
		TriggerDescription: req.Description,
		TriggerReference:   req.TriggerReference,
		DaysCredited:       days,
		DaysUsed:           decimal.Zero,
		DaysRemaining:      days,
		Status:             StatusPending,
		ExpiryDate:         ExpiryDate(*rule, triggerDate),
		CreatedBy:          actorUUID(actor),
	}
	if req.HoursWorked != nil {
		credit.HoursWorked = decimal.NewNullDecimal(*req.HoursWorked)
	}
	if err := qtx.Create(ctx, credit); err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, replacementleaveerrors.ErrDuplicateTrigger) {
			s.logger.Warn("credit replacement leave lost duplicate race", zap.String("trigger_reference", req.TriggerReference))
		} else {
			s.logger.Error("credit replacement leave persist failed", zap.Error(err))
		}
		return CreditResponse{}, mapped
	}

	if err := s.record(ctx, qtx, credit, credit.CreatedBy, ActionCredited, "", StatusPending, days, req.Description); err != nil {
		return CreditResponse{}, err
	}
	if err := s.publish(ctx, tx, credit, actor.EmployeeID, events.ReplacementCredited); err != nil {
		return CreditResponse{}, err
	}

	autoApprove := !rule.RequiresApproval ||
		(domain.IsApprovalCapable(actor.Role) && actor.EmployeeID != req.EmployeeID)
	if autoApprove {
		if err := s.approveInTx(ctx, tx, qtx, credit, rule, actorUUID(actor), days, "approved on credit"); err != nil {
			return CreditResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("credit replacement leave commit failed", zap.Error(err))
		return CreditResponse{}, err
	}

	s.observe(ActionCredited)
	if autoApprove {
		s.observe(ActionApproved)
		s.audit(ctx, credit, actor.EmployeeID, bootstrap.ActionCreditApproved, "approved on credit")
	}
	s.logger.Info("credit replacement leave success",
		zap.String("credit_id", credit.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("days", days.String()),
		zap.String("status", credit.Status),
	)
	return mapToResponse(*credit), nil
}

func (s *service) Approve(ctx context.Context, actor domain.Actor, id string, req ApproveCreditRequest) (CreditResponse, error) {
	s.logger.Debug("approve replacement credit requested", zap.String("credit_id", id), zap.String("actor_id", actor.EmployeeID))

	if !domain.IsApprovalCapable(actor.Role) {
		return CreditResponse{}, replacementleaveerrors.ErrApproverRoleRequired
	}
	if req.AdjustedDays != nil && !req.AdjustedDays.IsPositive() {
		return CreditResponse{}, replacementleaveerrors.ErrInvalidDays
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve replacement credit begin tx failed", zap.Error(err))
		return CreditResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.Repo.WithTx(tx)
	credit, err := s.lockPending(ctx, qtx, actor, id)
	if err != nil {
		return CreditResponse{}, err
	}

	rule, err := qtx.FindRuleByID(ctx, actor.CompanyID, credit.RuleID.String())
	if err != nil {
		s.logger.Error("approve replacement credit rule lookup failed", zap.Error(err))
		return CreditResponse{}, err
	}

	days := credit.DaysCredited
	if req.AdjustedDays != nil {
		days, err = s.adjustedDays(ctx, qtx, credit, rule, *req.AdjustedDays)
		if err != nil {
			return CreditResponse{}, err
		}
	}
	if err := s.approveInTx(ctx, tx, qtx, credit, rule, actorUUID(actor), days, req.Notes); err != nil {
		return CreditResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve replacement credit commit failed", zap.Error(err))
		return CreditResponse{}, err
	}

	s.observe(ActionApproved)
	s.audit(ctx, credit, actor.EmployeeID, bootstrap.ActionCreditApproved, req.Notes)
	s.logger.Info("approve replacement credit success",
		zap.String("credit_id", id),
		zap.String("actor_id", actor.EmployeeID),
		zap.String("days", days.String()),
	)
	return mapToResponse(*credit), nil
}

func (s *service) Reject(ctx context.Context, actor domain.Actor, id string, req RejectCreditRequest) (CreditResponse, error) {
	s.logger.Debug("reject replacement credit requested", zap.String("credit_id", id), zap.String("actor_id", actor.EmployeeID))

	if !domain.IsApprovalCapable(actor.Role) {
		return CreditResponse{}, replacementleaveerrors.ErrApproverRoleRequired
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return CreditResponse{}, replacementleaveerrors.ErrReasonRequired
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reject replacement credit begin tx failed", zap.Error(err))
		return CreditResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.Repo.WithTx(tx)
	credit, err := s.lockPending(ctx, qtx, actor, id)
	if err != nil {
		return CreditResponse{}, err
	}

	now := s.Now()
	by := actorUUID(actor)
	affected, err := qtx.UpdateStatus(ctx, actor.CompanyID, id, StatusPending, map[string]any{
		"status":           StatusRejected,
		"rejected_by":      by,
		"rejected_at":      now,
		"rejection_reason": reason,
		"days_remaining":   decimal.Zero,
	})
	if err != nil {
		s.logger.Error("reject replacement credit update failed", zap.Error(err))
		return CreditResponse{}, err
	}
	if affected == 0 {
		return CreditResponse{}, replacementleaveerrors.ErrInvalidState
	}
	credit.Status = StatusRejected
	credit.RejectedBy = by
	credit.RejectedAt = &now
	credit.RejectionReason = &reason
	credit.DaysRemaining = decimal.Zero

	if err := s.record(ctx, qtx, credit, by, ActionRejected, StatusPending, StatusRejected, decimal.Zero, reason); err != nil {
		return CreditResponse{}, err
	}
	if err := s.publish(ctx, tx, credit, actor.EmployeeID, events.ReplacementRejected); err != nil {
		return CreditResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("reject replacement credit commit failed", zap.Error(err))
		return CreditResponse{}, err
	}

	s.observe(ActionRejected)
	s.audit(ctx, credit, actor.EmployeeID, bootstrap.ActionCreditRejected, reason)
	s.logger.Info("reject replacement credit success", zap.String("credit_id", id), zap.String("actor_id", actor.EmployeeID))
	return mapToResponse(*credit), nil
}

func (s *service) lockPending(ctx context.Context, qtx Repository, actor domain.Actor, id string) (*ReplacementLeaveCredit, error) {
	credit, err := qtx.FindByIDForUpdate(ctx, actor.CompanyID, id)
	if err != nil {
		mapped := mapRepositoryError(err)
		if mapped == err {
			s.logger.Error("load replacement credit failed", zap.String("credit_id", id), zap.Error(err))
		}
		return nil, mapped
	}
	if credit.Status != StatusPending {
		return nil, replacementleaveerrors.ErrInvalidState.WithDetails(map[string]any{"status": credit.Status})
	}
	if credit.EmployeeID.String() == actor.EmployeeID {
		s.logger.Warn("replacement credit self decision rejected", zap.String("credit_id", id))
		return nil, replacementleaveerrors.ErrSelfApproval
	}
	return credit, nil
}

// adjustedDays holds an approver's adjustment to the same limits as the
// original credit: the per event cap, then what is left of the monthly and
// yearly caps once this credit's own pending days are taken out.
func (s *service) adjustedDays(ctx context.Context, qtx Repository, credit *ReplacementLeaveCredit, rule *ReplacementLeaveRule, adjusted decimal.Decimal) (decimal.Decimal, error) {
	days, err := ComputeDays(*rule, nil, &adjusted)
	if err != nil {
		return decimal.Zero, err
	}

	companyID := credit.CompanyID.String()
	employeeID := credit.EmployeeID.String()
	monthFrom, monthTo := monthBounds(credit.TriggerDate)
	creditedMonth, err := qtx.SumCredited(ctx, companyID, employeeID, monthFrom, monthTo)
	if err != nil {
		return decimal.Zero, err
	}
	yearFrom, yearTo := yearBounds(credit.TriggerDate)
	creditedYear, err := qtx.SumCredited(ctx, companyID, employeeID, yearFrom, yearTo)
	if err != nil {
		return decimal.Zero, err
	}

	capped, err := ApplyPeriodCaps(*rule, days,
		decimal.Max(creditedMonth.Sub(credit.DaysCredited), decimal.Zero),
		decimal.Max(creditedYear.Sub(credit.DaysCredited), decimal.Zero),
	)
	if err != nil {
		s.logger.Warn("approve replacement credit cap reached",
			zap.String("credit_id", credit.ID.String()),
			zap.String("adjusted_days", adjusted.String()),
			zap.String("credited_month", creditedMonth.String()),
			zap.String("credited_year", creditedYear.String()),
		)
		return decimal.Zero, err
	}
	if !capped.Equal(adjusted) {
		s.logger.Info("approve replacement credit adjustment clamped",
			zap.String("credit_id", credit.ID.String()),
			zap.String("adjusted_days", adjusted.String()),
			zap.String("days", capped.String()),
		)
	}
	return capped, nil
}

// approveInTx moves a pending credit to approved and, when the rule feeds a
// TOIL leave type, grants the days onto that year's balance.
func (s *service) approveInTx(ctx context.Context, tx *sql.Tx, qtx Repository, credit *ReplacementLeaveCredit, rule *ReplacementLeaveRule, by *uuid.UUID, days decimal.Decimal, notes string) error {
	now := s.Now()
	changes := map[string]any{
		"status":         StatusApproved,
		"approved_by":    by,
		"approved_at":    now,
		"days_credited":  days,
		"days_remaining": days.Sub(credit.DaysUsed),
	}

	var balanceID *uuid.UUID
	if rule.AutoCreditOnApproval && rule.LeaveTypeID != nil {
		ledger := s.Ledger.WithTx(tx)
		companyID := credit.CompanyID.String()
		balance, err := ledger.GetOrCreate(ctx, companyID, credit.EmployeeID.String(), rule.LeaveTypeID.String(), credit.TriggerDate.Year())
		if err != nil {
			return err
		}
		if err := ledger.Grant(ctx, companyID, balance.ID.String(), days); err != nil {
			return err
		}
		balanceID = &balance.ID
		changes["balance_id"] = balance.ID
	}

	affected, err := qtx.UpdateStatus(ctx, credit.CompanyID.String(), credit.ID.String(), StatusPending, changes)
	if err != nil {
		s.logger.Error("approve replacement credit update failed", zap.String("credit_id", credit.ID.String()), zap.Error(err))
		return err
	}
	if affected == 0 {
		return replacementleaveerrors.ErrInvalidState
	}

	credit.Status = StatusApproved
	credit.ApprovedBy = by
	credit.ApprovedAt = &now
	credit.DaysCredited = days
	credit.DaysRemaining = days.Sub(credit.DaysUsed)
	if balanceID != nil {
		credit.BalanceID = balanceID
	}

	if err := s.record(ctx, qtx, credit, by, ActionApproved, StatusPending, StatusApproved, days, notes); err != nil {
		return err
	}
	actorID := ""
	if by != nil {
		actorID = by.String()
	}
	return s.publish(ctx, tx, credit, actorID, events.ReplacementApproved)
}

// ExpireDue expires approved credits whose expiry date has passed and takes
// the unused days back from the TOIL balance, never more than is still
// available there. A failing credit is logged and skipped.
func (s *service) ExpireDue(ctx context.Context, now time.Time) (int, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	due, err := s.Repo.ListExpirable(ctx, today, DefaultExpiryBatch)
	if err != nil {
		s.logger.Error("list expirable replacement credits failed", zap.Error(err))
		return 0, err
	}

	expired := 0
	for i := range due {
		if err := s.expireOne(ctx, due[i], now); err != nil {
			s.logger.Error("expire replacement credit failed",
				zap.String("credit_id", due[i].ID.String()),
				zap.Error(err),
			)
			continue
		}
		expired++
	}

	if expired > 0 {
		s.logger.Info("replacement credits expired", zap.Int("count", expired), zap.Int("due", len(due)))
	}
	return expired, nil
}

func (s *service) expireOne(ctx context.Context, candidate ReplacementLeaveCredit, now time.Time) error {
	companyID := candidate.CompanyID.String()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.Repo.WithTx(tx)
	credit, err := qtx.FindByIDForUpdate(ctx, companyID, candidate.ID.String())
	if err != nil {
		return err
	}
	if credit.Status != StatusApproved || !credit.DaysRemaining.IsPositive() {
		return nil
	}

	remaining := credit.DaysRemaining
	affected, err := qtx.UpdateStatus(ctx, companyID, credit.ID.String(), StatusApproved, map[string]any{
		"status":         StatusExpired,
		"days_remaining": decimal.Zero,
		"expired_at":     now,
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return nil
	}

	if credit.BalanceID != nil {
		ledger := s.Ledger.WithTx(tx)
		balance, err := ledger.LockForUpdate(ctx, companyID, credit.BalanceID.String())
		if err != nil {
			return err
		}
		if take := decimal.Min(remaining, balance.Available()); take.IsPositive() {
			if err := ledger.Revoke(ctx, companyID, balance.ID.String(), take); err != nil {
				return err
			}
		}
	}

	credit.Status = StatusExpired
	credit.DaysRemaining = decimal.Zero
	credit.ExpiredAt = &now

	if err := s.record(ctx, qtx, credit, nil, ActionExpired, StatusApproved, StatusExpired, remaining, "expired unused"); err != nil {
		return err
	}
	if err := s.publish(ctx, tx, credit, "", events.ReplacementExpired); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.observe(ActionExpired)
	s.audit(ctx, credit, "", bootstrap.ActionCreditExpired, "expired "+remaining.String()+" unused days")
	return nil
}

func (s *service) List(ctx context.Context, actor domain.Actor, query ListQuery) ([]CreditResponse, error) {
	filter := ListFilter{EmployeeID: query.EmployeeID, Status: query.Status}
	if !domain.IsApprovalCapable(actor.Role) {
		if filter.EmployeeID != "" && filter.EmployeeID != actor.EmployeeID {
			return nil, replacementleaveerrors.ErrCreditForbidden
		}
		filter.EmployeeID = actor.EmployeeID
	}

	rows, err := s.Repo.List(ctx, actor.CompanyID, filter)
	if err != nil {
		s.logger.Error("list replacement credits failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) record(ctx context.Context, qtx Repository, credit *ReplacementLeaveCredit, actorID *uuid.UUID, action, from, to string, days decimal.Decimal, notes string) error {
	entry := &ReplacementCreditHistory{
		ID:         uuid.New(),
		CompanyID:  credit.CompanyID,
		CreditID:   credit.ID,
		ActorID:    actorID,
		Action:     action,
		FromStatus: from,
		ToStatus:   to,
		Days:       days,
		Notes:      notes,
		CreatedAt:  s.Now(),
	}
	if err := qtx.AddHistory(ctx, entry); err != nil {
		s.logger.Error("replacement credit history write failed", zap.String("credit_id", credit.ID.String()), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) publish(ctx context.Context, tx *sql.Tx, credit *ReplacementLeaveCredit, actorID, eventType string) error {
	if s.Outbox == nil {
		return nil
	}
	event, err := kafka.NewOutboxEvent(ctx, credit.CompanyID.String(), kafka.AggregateReplacementCredit, credit.ID.String(), eventType, events.ReplacementCreditTopic, events.ReplacementCreditEvent{
		EventType:        eventType,
		CreditID:         credit.ID.String(),
		CompanyID:        credit.CompanyID.String(),
		EmployeeID:       credit.EmployeeID.String(),
		TriggerType:      credit.TriggerType,
		TriggerReference: credit.TriggerReference,
		Status:           credit.Status,
		Days:             credit.DaysCredited.String(),
		ActorID:          actorID,
		OccurredAt:       s.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if err := s.Outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("replacement credit outbox write failed", zap.String("credit_id", credit.ID.String()), zap.Error(err))
		return err
	}
	return nil
}

// audit runs after commit.
func (s *service) audit(ctx context.Context, credit *ReplacementLeaveCredit, actorID, action, notes string) {
	meta := map[string]any{
		"employee_id":       credit.EmployeeID.String(),
		"trigger_type":      credit.TriggerType,
		"trigger_reference": credit.TriggerReference,
		"status":            credit.Status,
		"days_credited":     credit.DaysCredited.String(),
		"days_remaining":    credit.DaysRemaining.String(),
	}
	if notes != "" {
		meta["notes"] = notes
	}
	s.Audit.Log(ctx, bootstrap.AuditLog{
		Action:    action,
		Message:   "replacement credit " + strings.ToLower(credit.Status),
		CompanyID: credit.CompanyID.String(),
		ActorID:   actorID,
		Entity:    kafka.AggregateReplacementCredit,
		EntityID:  credit.ID.String(),
		Meta:      meta,
	})
}

func (s *service) observe(action string) {
	if s.Metrics != nil {
		s.Metrics.RecordTransition("replacement", action)
	}
}
