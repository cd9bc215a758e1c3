package entitlement

import (
	"context"
	"errors"
	"strings"

	"starhr/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=entitlement_repo.go -destination=mock/entitlement_repo_mock.go -package=mock
type Repository interface {
	ListLeaveTypes(ctx context.Context, companyID string, includeInactive bool) ([]LeaveType, error)
	FindLeaveTypeByID(ctx context.Context, companyID, id string) (*LeaveType, error)
	FindLeaveTypeByCode(ctx context.Context, companyID, code string) (*LeaveType, error)
	ListRules(ctx context.Context, companyID, leaveTypeID string) ([]EntitlementRule, error)
	FindActiveException(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*EntitlementException, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListLeaveTypes(ctx context.Context, companyID string, includeInactive bool) ([]LeaveType, error) {
	var types []LeaveType
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if !includeInactive {
		q = q.Scopes(tenant.Active())
	}
	if err := q.Order("code ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *repository) FindLeaveTypeByID(ctx context.Context, companyID, id string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&lt).Error
	if err != nil {
		return nil, err
	}
	return &lt, nil
}

func (r *repository) FindLeaveTypeByCode(ctx context.Context, companyID, code string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("code = ?", strings.ToUpper(code)).
		First(&lt).Error
	if err != nil {
		return nil, err
	}
	return &lt, nil
}

// ListRules returns the active rules of a leave type in candidate order.
// Validity windows are applied by ActiveOn so preview dates stay testable.
func (r *repository) ListRules(ctx context.Context, companyID, leaveTypeID string) ([]EntitlementRule, error) {
	var rules []EntitlementRule
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), tenant.Active()).
		Where("leave_type_id = ?", leaveTypeID).
		Order("priority ASC").
		Order("effective_from DESC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *repository) FindActiveException(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*EntitlementException, error) {
	var ex EntitlementException
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), tenant.Active()).
		Where("employee_id = ? AND leave_type_id = ? AND year = ?", employeeID, leaveTypeID, year).
		Order("created_at DESC").
		First(&ex).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ex, nil
}
