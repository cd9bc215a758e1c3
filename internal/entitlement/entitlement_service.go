package entitlement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"starhr/internal/domain"
	"starhr/internal/employee"
	entitlementerrors "starhr/internal/entitlement/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DefaultLeaveTypeCacheTTL = 10 * time.Minute

	minYear = 2000
	maxYear = 2100
)

// Breakdown explains how an entitlement was reached.
type Breakdown struct {
	TenureMonths      int    `json:"tenure_months"`
	Grade             string `json:"grade"`
	DepartmentID      string `json:"department_id"`
	Designation       string `json:"designation"`
	Band              string `json:"band"`
	Priority          *int   `json:"priority"`
	Score             int    `json:"score"`
	EffectivePriority *int   `json:"effective_priority,omitempty"`
	Reason            string `json:"reason,omitempty"`
}

type Entitlement struct {
	Days      decimal.Decimal
	RuleType  string
	RuleID    *uuid.UUID
	Breakdown Breakdown
}

func (e Entitlement) BreakdownJSON() (datatypes.JSON, error) {
	b, err := json.Marshal(e.Breakdown)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// EmployeeReader is the part of employee.Repository the rule engine reads.
type EmployeeReader interface {
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*employee.Employee, error)
}

//go:generate mockgen -source=entitlement_service.go -destination=mock/entitlement_service_mock.go -package=mock
type Service interface {
	Resolve(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (Entitlement, error)
	Preview(ctx context.Context, actor domain.Actor, query PreviewQuery) (EntitlementResponse, error)
	GetLeaveTypes(ctx context.Context, companyID string, includeInactive bool) ([]LeaveTypeResponse, error)
	GetLeaveType(ctx context.Context, companyID, id string) (*LeaveType, error)
	GetLeaveTypeByCode(ctx context.Context, companyID, code string) (*LeaveType, error)
}

type service struct {
	repo      Repository
	employees EmployeeReader
	rdb       *redis.Client
	cacheTTL  time.Duration
	group     singleflight.Group
	now       func() time.Time
	logger    *zap.Logger
}

// NewService builds the rule engine. rdb may be nil, in which case the leave
// type list is read from the database every time.
func NewService(repo Repository, employees EmployeeReader, rdb *redis.Client, cacheTTL time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("entitlement.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("entitlement.service")
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultLeaveTypeCacheTTL
	}
	return &service{
		repo:      repo,
		employees: employees,
		rdb:       rdb,
		cacheTTL:  cacheTTL,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Resolve(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (Entitlement, error) {
	s.logger.Debug("resolve entitlement requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
		zap.String("leave_type_id", leaveTypeID),
		zap.Int("year", year),
	)

	if year < minYear || year > maxYear {
		return Entitlement{}, entitlementerrors.ErrInvalidYear
	}

	lt, err := s.GetLeaveType(ctx, companyID, leaveTypeID)
	if err != nil {
		return Entitlement{}, err
	}

	emp, err := s.employees.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		return Entitlement{}, err
	}

	now := s.now()
	attrs := EmployeeAttributes{
		TenureMonths: TenureMonths(emp.JoinDate, now),
		Grade:        emp.Grade,
		DepartmentID: emp.DepartmentIDString(),
		Designation:  emp.Designation,
	}
	breakdown := Breakdown{
		TenureMonths: attrs.TenureMonths,
		Grade:        attrs.Grade,
		DepartmentID: attrs.DepartmentID,
		Designation:  attrs.Designation,
	}

	ex, err := s.repo.FindActiveException(ctx, companyID, employeeID, leaveTypeID, year)
	if err != nil {
		s.logger.Error("resolve entitlement exception lookup failed", zap.Error(err))
		return Entitlement{}, err
	}
	if ex != nil {
		breakdown.Band = "individual exception"
		breakdown.Reason = ex.Reason
		id := ex.ID
		return Entitlement{
			Days:      ex.AllocatedDays,
			RuleType:  RuleTypeException,
			RuleID:    &id,
			Breakdown: breakdown,
		}, nil
	}

	rules, err := s.repo.ListRules(ctx, companyID, leaveTypeID)
	if err != nil {
		s.logger.Error("resolve entitlement rule lookup failed", zap.Error(err))
		return Entitlement{}, err
	}

	best, ok := SelectRule(ActiveOn(rules, now), attrs)
	if !ok {
		breakdown.Band = fmt.Sprintf("leave type %s default", lt.Code)
		return Entitlement{
			Days:      lt.MaxDaysPerYear,
			RuleType:  RuleTypeDefault,
			Breakdown: breakdown,
		}, nil
	}

	priority := best.Rule.Priority
	effective := best.EffectivePriority
	breakdown.Band = best.Band
	breakdown.Priority = &priority
	breakdown.Score = best.Score
	breakdown.EffectivePriority = &effective
	id := best.Rule.ID

	s.logger.Debug("resolve entitlement matched rule",
		zap.String("rule_id", id.String()),
		zap.String("rule_type", best.RuleType),
		zap.Int("effective_priority", effective),
	)

	return Entitlement{
		Days:      best.Rule.AllocatedDays,
		RuleType:  best.RuleType,
		RuleID:    &id,
		Breakdown: breakdown,
	}, nil
}

func (s *service) Preview(ctx context.Context, actor domain.Actor, query PreviewQuery) (EntitlementResponse, error) {
	employeeID := query.EmployeeID
	if employeeID == "" {
		employeeID = actor.EmployeeID
	}
	if employeeID != actor.EmployeeID && !domain.IsApprovalCapable(actor.Role) {
		s.logger.Warn("preview entitlement forbidden",
			zap.String("actor_id", actor.EmployeeID),
			zap.String("employee_id", employeeID),
		)
		return EntitlementResponse{}, entitlementerrors.ErrPreviewForbidden
	}

	year := query.Year
	if year == 0 {
		year = s.now().Year()
	}

	e, err := s.Resolve(ctx, actor.CompanyID, employeeID, query.LeaveTypeID, year)
	if err != nil {
		return EntitlementResponse{}, err
	}
	return mapEntitlement(employeeID, query.LeaveTypeID, year, e), nil
}

func (s *service) GetLeaveTypes(ctx context.Context, companyID string, includeInactive bool) ([]LeaveTypeResponse, error) {
	if includeInactive {
		types, err := s.repo.ListLeaveTypes(ctx, companyID, true)
		if err != nil {
			return nil, err
		}
		return mapLeaveTypes(types), nil
	}

	key := LeaveTypeCacheKey(companyID)
	if cached, ok := s.readCache(ctx, key); ok {
		return cached, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		types, err := s.repo.ListLeaveTypes(ctx, companyID, false)
		if err != nil {
			return nil, err
		}
		resp := mapLeaveTypes(types)
		s.writeCache(ctx, key, resp)
		return resp, nil
	})
	if err != nil {
		s.logger.Error("list leave types failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}
	return v.([]LeaveTypeResponse), nil
}

func (s *service) GetLeaveType(ctx context.Context, companyID, id string) (*LeaveType, error) {
	lt, err := s.repo.FindLeaveTypeByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entitlementerrors.ErrLeaveTypeNotFound
		}
		return nil, err
	}
	return lt, nil
}

func (s *service) GetLeaveTypeByCode(ctx context.Context, companyID, code string) (*LeaveType, error) {
	lt, err := s.repo.FindLeaveTypeByCode(ctx, companyID, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entitlementerrors.ErrLeaveTypeNotFound
		}
		return nil, err
	}
	return lt, nil
}

const LeaveTypeCacheKeyPrefix = "leave_types:active:"

func LeaveTypeCacheKey(companyID string) string {
	return LeaveTypeCacheKeyPrefix + companyID
}

func (s *service) readCache(ctx context.Context, key string) ([]LeaveTypeResponse, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("leave type cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var out []LeaveTypeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		s.logger.Warn("leave type cache decode failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return out, true
}

func (s *service) writeCache(ctx context.Context, key string, value []LeaveTypeResponse) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Error("leave type cache write failed", zap.String("key", key), zap.Error(err))
	}
}
