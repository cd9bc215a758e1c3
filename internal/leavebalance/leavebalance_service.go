package leavebalance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"starhr/internal/domain"
	"starhr/internal/entitlement"
	leavebalanceerrors "starhr/internal/leavebalance/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EntitlementResolver is the part of entitlement.Service the ledger needs.
type EntitlementResolver interface {
	Resolve(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (entitlement.Entitlement, error)
	GetLeaveType(ctx context.Context, companyID, id string) (*entitlement.LeaveType, error)
	GetLeaveTypes(ctx context.Context, companyID string, includeInactive bool) ([]entitlement.LeaveTypeResponse, error)
}

// Ledger holds every balance mutation. Mutations are single guarded
// statements and must run inside the caller's transaction.
type Ledger interface {
	WithTx(tx *sql.Tx) Ledger
	GetOrCreate(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	LockForUpdate(ctx context.Context, companyID, balanceID string) (*LeaveBalance, error)
	Reserve(ctx context.Context, companyID, balanceID string, days decimal.Decimal) error
	Commit(ctx context.Context, companyID, balanceID string, days decimal.Decimal) error
	Release(ctx context.Context, companyID, balanceID string, days decimal.Decimal) error
	Grant(ctx context.Context, companyID, balanceID string, days decimal.Decimal) error
	Revoke(ctx context.Context, companyID, balanceID string, days decimal.Decimal) error
}

//go:generate mockgen -source=leavebalance_service.go -destination=mock/leavebalance_service_mock.go -package=mock
type Service interface {
	Ledger
	GetBalances(ctx context.Context, actor domain.Actor, query BalanceQuery) ([]BalanceResponse, error)
}

type service struct {
	repo         Repository
	entitlements EntitlementResolver
	now          func() time.Time
	logger       *zap.Logger
}

func NewService(repo Repository, entitlements EntitlementResolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavebalance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.service")
	}
	return &service{repo: repo, entitlements: entitlements, now: time.Now, logger: l}
}

func (s *service) WithTx(tx *sql.Tx) Ledger {
	cp := *s
	cp.repo = s.repo.WithTx(tx)
	return &cp
}

// GetOrCreate returns the balance for the key, materializing it from the
// current entitlement the first time it is asked for.
func (s *service) GetOrCreate(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	b, err := s.repo.Find(ctx, companyID, employeeID, leaveTypeID, year)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("get balance failed", zap.Error(err))
		return nil, err
	}

	lt, err := s.entitlements.GetLeaveType(ctx, companyID, leaveTypeID)
	if err != nil {
		return nil, err
	}
	ent, err := s.entitlements.Resolve(ctx, companyID, employeeID, leaveTypeID, year)
	if err != nil {
		return nil, err
	}
	breakdown, err := ent.BreakdownJSON()
	if err != nil {
		return nil, err
	}

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, err
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, err
	}

	row := &LeaveBalance{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		EmployeeID:    employeeUUID,
		LeaveTypeID:   lt.ID,
		Year:          year,
		AllocatedDays: ent.Days,
		RuleType:      ent.RuleType,
		RuleID:        ent.RuleID,
		Breakdown:     breakdown,
	}

	if lt.CarryForwardAllowed {
		carry, expires, err := s.carryForward(ctx, companyID, employeeID, lt, year)
		if err != nil {
			return nil, err
		}
		row.CarryForwardDays = carry
		row.CarryForwardExpiresAt = expires
	}

	if err := s.repo.CreateIfAbsent(ctx, row); err != nil {
		s.logger.Error("create balance failed", zap.Error(err))
		return nil, err
	}

	b, err = s.repo.Find(ctx, companyID, employeeID, leaveTypeID, year)
	if err != nil {
		s.logger.Error("reload balance failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("balance materialized",
		zap.String("balance_id", b.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("leave_type_id", leaveTypeID),
		zap.Int("year", year),
		zap.String("rule_type", b.RuleType),
	)
	return b, nil
}

// carryForward moves what was left of last year's balance, capped by the
// leave type. A zero cap carries everything that remains.
func (s *service) carryForward(ctx context.Context, companyID, employeeID string, lt *entitlement.LeaveType, year int) (decimal.Decimal, *time.Time, error) {
	prev, err := s.repo.Find(ctx, companyID, employeeID, lt.ID.String(), year-1)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil, nil
	}
	if err != nil {
		return decimal.Zero, nil, err
	}

	remaining := prev.Available()
	if !remaining.IsPositive() {
		return decimal.Zero, nil, nil
	}
	if lt.CarryForwardMaxDays.IsPositive() {
		remaining = decimal.Min(remaining, lt.CarryForwardMaxDays)
	}

	var expires *time.Time
	if lt.CarryForwardExpiryMonths > 0 {
		t := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, lt.CarryForwardExpiryMonths, 0)
		expires = &t
	}
	return remaining, expires, nil
}

func (s *service) LockForUpdate(ctx context.Context, companyID, balanceID string) (*LeaveBalance, error) {
	b, err := s.repo.LockForUpdate(ctx, companyID, balanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leavebalanceerrors.ErrBalanceNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *service) Reserve(ctx context.Context, companyID, balanceID string, days decimal.Decimal) error {
	return s.apply(ctx, "reserve", companyID, balanceID, days, s.repo.Reserve)
}

func (s *service) Commit(ctx context.Context, companyID, balanceID string, days decimal.Decimal) error {
	return s.apply(ctx, "commit", companyID, balanceID, days, s.repo.CommitPending)
}

func (s *service) Release(ctx context.Context, companyID, balanceID string, days decimal.Decimal) error {
	return s.apply(ctx, "release", companyID, balanceID, days, s.repo.ReleasePending)
}

func (s *service) Grant(ctx context.Context, companyID, balanceID string, days decimal.Decimal) error {
	return s.apply(ctx, "grant", companyID, balanceID, days, s.repo.Grant)
}

func (s *service) Revoke(ctx context.Context, companyID, balanceID string, days decimal.Decimal) error {
	return s.apply(ctx, "revoke", companyID, balanceID, days, s.repo.Revoke)
}

type mutation func(ctx context.Context, companyID, id string, days decimal.Decimal) (int64, error)

func (s *service) apply(ctx context.Context, op, companyID, balanceID string, days decimal.Decimal, fn mutation) error {
	if !days.IsPositive() {
		return leavebalanceerrors.ErrInvalidDays
	}
	affected, err := fn(ctx, companyID, balanceID, days)
	if err != nil {
		s.logger.Error("balance mutation failed", zap.String("op", op), zap.String("balance_id", balanceID), zap.Error(err))
		return err
	}
	if affected == 0 {
		s.logger.Warn("balance mutation rejected",
			zap.String("op", op),
			zap.String("balance_id", balanceID),
			zap.String("days", days.String()),
		)
		return leavebalanceerrors.ErrLedgerConflict
	}
	s.logger.Debug("balance mutated", zap.String("op", op), zap.String("balance_id", balanceID), zap.String("days", days.String()))
	return nil
}

func (s *service) GetBalances(ctx context.Context, actor domain.Actor, query BalanceQuery) ([]BalanceResponse, error) {
	employeeID := query.EmployeeID
	if employeeID == "" {
		employeeID = actor.EmployeeID
	}
	if employeeID != actor.EmployeeID && !domain.IsApprovalCapable(actor.Role) {
		s.logger.Warn("get balances forbidden",
			zap.String("actor_id", actor.EmployeeID),
			zap.String("employee_id", employeeID),
		)
		return nil, leavebalanceerrors.ErrBalanceForbidden
	}
	year := query.Year
	if year == 0 {
		year = s.now().Year()
	}

	types, err := s.entitlements.GetLeaveTypes(ctx, actor.CompanyID, false)
	if err != nil {
		return nil, err
	}

	out := make([]BalanceResponse, 0, len(types))
	for _, lt := range types {
		b, err := s.GetOrCreate(ctx, actor.CompanyID, employeeID, lt.ID, year)
		if err != nil {
			return nil, err
		}
		out = append(out, mapToResponse(*b, lt.Code, lt.Name))
	}
	return out, nil
}
