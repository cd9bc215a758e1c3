package entitlement_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"starhr/internal/domain"
	"starhr/internal/employee"
	employeeerrors "starhr/internal/employee/errors"
	"starhr/internal/entitlement"
	entitlementerrors "starhr/internal/entitlement/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepository struct {
	listLeaveTypesFn      func(ctx context.Context, companyID string, includeInactive bool) ([]entitlement.LeaveType, error)
	findLeaveTypeByIDFn   func(ctx context.Context, companyID, id string) (*entitlement.LeaveType, error)
	findLeaveTypeByCodeFn func(ctx context.Context, companyID, code string) (*entitlement.LeaveType, error)
	listRulesFn           func(ctx context.Context, companyID, leaveTypeID string) ([]entitlement.EntitlementRule, error)
	findExceptionFn       func(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*entitlement.EntitlementException, error)
	listLeaveTypeCalls    int
}

func (f *fakeRepository) ListLeaveTypes(ctx context.Context, companyID string, includeInactive bool) ([]entitlement.LeaveType, error) {
	f.listLeaveTypeCalls++
	if f.listLeaveTypesFn != nil {
		return f.listLeaveTypesFn(ctx, companyID, includeInactive)
	}
	return nil, nil
}

func (f *fakeRepository) FindLeaveTypeByID(ctx context.Context, companyID, id string) (*entitlement.LeaveType, error) {
	if f.findLeaveTypeByIDFn != nil {
		return f.findLeaveTypeByIDFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) FindLeaveTypeByCode(ctx context.Context, companyID, code string) (*entitlement.LeaveType, error) {
	if f.findLeaveTypeByCodeFn != nil {
		return f.findLeaveTypeByCodeFn(ctx, companyID, code)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) ListRules(ctx context.Context, companyID, leaveTypeID string) ([]entitlement.EntitlementRule, error) {
	if f.listRulesFn != nil {
		return f.listRulesFn(ctx, companyID, leaveTypeID)
	}
	return nil, nil
}

func (f *fakeRepository) FindActiveException(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*entitlement.EntitlementException, error) {
	if f.findExceptionFn != nil {
		return f.findExceptionFn(ctx, companyID, employeeID, leaveTypeID, year)
	}
	return nil, nil
}

type fakeEmployees struct {
	emp *employee.Employee
	err error
}

func (f *fakeEmployees) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*employee.Employee, error) {
	return f.emp, f.err
}

type resolveFixture struct {
	companyID   string
	employee    *employee.Employee
	leaveType   *entitlement.LeaveType
	repo        *fakeRepository
	employeeSrc *fakeEmployees
}

func newResolveFixture(tenureYears int, grade string) *resolveFixture {
	companyID := uuid.New()
	emp := &employee.Employee{
		ID:        uuid.New(),
		CompanyID: companyID,
		FullName:  "Rina",
		JoinDate:  time.Now().AddDate(-tenureYears, 0, -3),
		Grade:     grade,
	}
	lt := &entitlement.LeaveType{
		ID:             uuid.New(),
		CompanyID:      companyID,
		Code:           "AL",
		Name:           "Annual Leave",
		MaxDaysPerYear: decimal.NewFromInt(14),
		IsActive:       true,
	}
	f := &resolveFixture{
		companyID:   companyID.String(),
		employee:    emp,
		leaveType:   lt,
		employeeSrc: &fakeEmployees{emp: emp},
	}
	f.repo = &fakeRepository{
		findLeaveTypeByIDFn: func(ctx context.Context, companyID, id string) (*entitlement.LeaveType, error) {
			if id != lt.ID.String() {
				return nil, gorm.ErrRecordNotFound
			}
			return lt, nil
		},
	}
	return f
}

func (f *resolveFixture) service() entitlement.Service {
	return entitlement.NewService(f.repo, f.employeeSrc, nil, 0)
}

func activeRule(f *resolveFixture, days int64, priority int) entitlement.EntitlementRule {
	return entitlement.EntitlementRule{
		ID:            uuid.New(),
		LeaveTypeID:   f.leaveType.ID,
		AllocatedDays: decimal.NewFromInt(days),
		Priority:      priority,
		EffectiveFrom: time.Now().AddDate(-1, 0, 0),
		IsActive:      true,
	}
}

func TestEntitlementService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("default when nothing matches", func(t *testing.T) {
		f := newResolveFixture(1, "G1")

		got, err := f.service().Resolve(ctx, f.companyID, f.employee.ID.String(), f.leaveType.ID.String(), 2025)

		require.NoError(t, err)
		assert.Equal(t, entitlement.RuleTypeDefault, got.RuleType)
		assert.True(t, decimal.NewFromInt(14).Equal(got.Days))
		assert.Nil(t, got.RuleID)
		assert.Nil(t, got.Breakdown.Priority)
		assert.Equal(t, 12, got.Breakdown.TenureMonths)
	})

	t.Run("tenure rule beats grade rule", func(t *testing.T) {
		f := newResolveFixture(4, "G3")
		tenure := activeRule(f, 18, 50)
		tenure.MinTenureMonths = 36
		grade := activeRule(f, 16, 50)
		grade.EmployeeGrade = "G3"
		f.repo.listRulesFn = func(ctx context.Context, companyID, leaveTypeID string) ([]entitlement.EntitlementRule, error) {
			return []entitlement.EntitlementRule{grade, tenure}, nil
		}

		got, err := f.service().Resolve(ctx, f.companyID, f.employee.ID.String(), f.leaveType.ID.String(), 2025)

		require.NoError(t, err)
		assert.Equal(t, "TENURE", got.RuleType)
		assert.True(t, decimal.NewFromInt(18).Equal(got.Days))
		require.NotNil(t, got.RuleID)
		assert.Equal(t, tenure.ID, *got.RuleID)
		require.NotNil(t, got.Breakdown.Priority)
		assert.Equal(t, 50, *got.Breakdown.Priority)
		assert.Equal(t, "G3", got.Breakdown.Grade)
		assert.Equal(t, "tenure 36+ months", got.Breakdown.Band)
	})

	t.Run("exception wins over matching rules", func(t *testing.T) {
		f := newResolveFixture(4, "G3")
		f.repo.listRulesFn = func(ctx context.Context, companyID, leaveTypeID string) ([]entitlement.EntitlementRule, error) {
			t.Fatal("rules must not be read when an exception exists")
			return nil, nil
		}
		ex := &entitlement.EntitlementException{
			ID:            uuid.New(),
			AllocatedDays: decimal.RequireFromString("21.5"),
			Reason:        "relocation agreement",
			IsActive:      true,
		}
		f.repo.findExceptionFn = func(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*entitlement.EntitlementException, error) {
			assert.Equal(t, 2025, year)
			return ex, nil
		}

		got, err := f.service().Resolve(ctx, f.companyID, f.employee.ID.String(), f.leaveType.ID.String(), 2025)

		require.NoError(t, err)
		assert.Equal(t, entitlement.RuleTypeException, got.RuleType)
		assert.Equal(t, "21.5", got.Days.String())
		assert.Equal(t, "relocation agreement", got.Breakdown.Reason)
		assert.Equal(t, ex.ID, *got.RuleID)
	})

	t.Run("rule outside validity window is ignored", func(t *testing.T) {
		f := newResolveFixture(4, "G3")
		expired := activeRule(f, 30, 1)
		end := time.Now().AddDate(0, -1, 0)
		expired.EffectiveTo = &end
		f.repo.listRulesFn = func(ctx context.Context, companyID, leaveTypeID string) ([]entitlement.EntitlementRule, error) {
			return []entitlement.EntitlementRule{expired}, nil
		}

		got, err := f.service().Resolve(ctx, f.companyID, f.employee.ID.String(), f.leaveType.ID.String(), 2025)

		require.NoError(t, err)
		assert.Equal(t, entitlement.RuleTypeDefault, got.RuleType)
	})

	t.Run("unknown leave type", func(t *testing.T) {
		f := newResolveFixture(1, "G1")

		_, err := f.service().Resolve(ctx, f.companyID, f.employee.ID.String(), uuid.NewString(), 2025)

		assert.ErrorIs(t, err, entitlementerrors.ErrLeaveTypeNotFound)
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newResolveFixture(1, "G1")
		f.employeeSrc.err = employeeerrors.ErrEmployeeNotFound

		_, err := f.service().Resolve(ctx, f.companyID, uuid.NewString(), f.leaveType.ID.String(), 2025)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("year out of range", func(t *testing.T) {
		f := newResolveFixture(1, "G1")

		_, err := f.service().Resolve(ctx, f.companyID, f.employee.ID.String(), f.leaveType.ID.String(), 1999)

		assert.ErrorIs(t, err, entitlementerrors.ErrInvalidYear)
	})

	t.Run("exception lookup error", func(t *testing.T) {
		f := newResolveFixture(1, "G1")
		f.repo.findExceptionFn = func(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*entitlement.EntitlementException, error) {
			return nil, errors.New("db down")
		}

		_, err := f.service().Resolve(ctx, f.companyID, f.employee.ID.String(), f.leaveType.ID.String(), 2025)

		assert.EqualError(t, err, "db down")
	})

	t.Run("repeated calls are stable", func(t *testing.T) {
		f := newResolveFixture(4, "G3")
		grade := activeRule(f, 16, 50)
		grade.EmployeeGrade = "G3"
		f.repo.listRulesFn = func(ctx context.Context, companyID, leaveTypeID string) ([]entitlement.EntitlementRule, error) {
			return []entitlement.EntitlementRule{grade}, nil
		}
		svc := f.service()

		first, err := svc.Resolve(ctx, f.companyID, f.employee.ID.String(), f.leaveType.ID.String(), 2025)
		require.NoError(t, err)
		second, err := svc.Resolve(ctx, f.companyID, f.employee.ID.String(), f.leaveType.ID.String(), 2025)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestEntitlementService_Preview(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to the caller", func(t *testing.T) {
		f := newResolveFixture(1, "G1")
		actor := domain.Actor{CompanyID: f.companyID, EmployeeID: f.employee.ID.String(), Role: domain.RoleEmployee}

		resp, err := f.service().Preview(ctx, actor, entitlement.PreviewQuery{LeaveTypeID: f.leaveType.ID.String(), Year: 2025})

		require.NoError(t, err)
		assert.Equal(t, f.employee.ID.String(), resp.EmployeeID)
		assert.Equal(t, 2025, resp.Year)
		assert.Equal(t, "14", resp.Days.String())
		assert.Equal(t, entitlement.RuleTypeDefault, resp.RuleType)
	})

	t.Run("employee cannot preview someone else", func(t *testing.T) {
		f := newResolveFixture(1, "G1")
		actor := domain.Actor{CompanyID: f.companyID, EmployeeID: uuid.NewString(), Role: domain.RoleEmployee}

		_, err := f.service().Preview(ctx, actor, entitlement.PreviewQuery{
			EmployeeID:  f.employee.ID.String(),
			LeaveTypeID: f.leaveType.ID.String(),
		})

		assert.ErrorIs(t, err, entitlementerrors.ErrPreviewForbidden)
	})

	t.Run("manager previews a report with current year", func(t *testing.T) {
		f := newResolveFixture(1, "G1")
		actor := domain.Actor{CompanyID: f.companyID, EmployeeID: uuid.NewString(), Role: domain.RoleManager}

		resp, err := f.service().Preview(ctx, actor, entitlement.PreviewQuery{
			EmployeeID:  f.employee.ID.String(),
			LeaveTypeID: f.leaveType.ID.String(),
		})

		require.NoError(t, err)
		assert.Equal(t, time.Now().Year(), resp.Year)
	})
}

func TestEntitlementService_GetLeaveTypes(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	key := entitlement.LeaveTypeCacheKey(companyID)
	types := []entitlement.LeaveType{
		{ID: uuid.New(), Code: "AL", Name: "Annual Leave", MaxDaysPerYear: decimal.NewFromInt(14), RequiresApproval: true, IsActive: true},
		{ID: uuid.New(), Code: "SL", Name: "Sick Leave", MaxDaysPerYear: decimal.NewFromInt(12), RequiresDocument: true, IsActive: true},
	}

	t.Run("cache miss reads repository and stores", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		repo := &fakeRepository{
			listLeaveTypesFn: func(ctx context.Context, cid string, includeInactive bool) ([]entitlement.LeaveType, error) {
				assert.Equal(t, companyID, cid)
				assert.False(t, includeInactive)
				return types, nil
			},
		}
		svc := entitlement.NewService(repo, &fakeEmployees{}, rdb, time.Minute)

		uncached, err := entitlement.NewService(repo, &fakeEmployees{}, nil, time.Minute).GetLeaveTypes(ctx, companyID, false)
		require.NoError(t, err)
		raw, err := json.Marshal(uncached)
		require.NoError(t, err)

		mock.ExpectGet(key).RedisNil()
		mock.ExpectSet(key, raw, time.Minute).SetVal("OK")

		resp, err := svc.GetLeaveTypes(ctx, companyID, false)

		require.NoError(t, err)
		require.Len(t, resp, 2)
		assert.Equal(t, "AL", resp[0].Code)
		assert.True(t, resp[1].RequiresDocument)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		repo := &fakeRepository{}
		svc := entitlement.NewService(repo, &fakeEmployees{}, rdb, time.Minute)

		cached, _ := json.Marshal([]entitlement.LeaveTypeResponse{{ID: uuid.NewString(), Code: "AL", Name: "Annual Leave", IsActive: true}})
		mock.ExpectGet(key).SetVal(string(cached))

		resp, err := svc.GetLeaveTypes(ctx, companyID, false)

		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "AL", resp[0].Code)
		assert.Equal(t, 0, repo.listLeaveTypeCalls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("include inactive bypasses cache", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		repo := &fakeRepository{
			listLeaveTypesFn: func(ctx context.Context, cid string, includeInactive bool) ([]entitlement.LeaveType, error) {
				assert.True(t, includeInactive)
				return append(types, entitlement.LeaveType{ID: uuid.New(), Code: "OLD"}), nil
			},
		}
		svc := entitlement.NewService(repo, &fakeEmployees{}, rdb, time.Minute)

		resp, err := svc.GetLeaveTypes(ctx, companyID, true)

		require.NoError(t, err)
		assert.Len(t, resp, 3)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repository error", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(key).RedisNil()
		repo := &fakeRepository{
			listLeaveTypesFn: func(ctx context.Context, cid string, includeInactive bool) ([]entitlement.LeaveType, error) {
				return nil, errors.New("db down")
			},
		}
		svc := entitlement.NewService(repo, &fakeEmployees{}, rdb, time.Minute)

		_, err := svc.GetLeaveTypes(ctx, companyID, false)

		assert.EqualError(t, err, "db down")
	})
}

func TestEntitlementService_GetLeaveTypeByCode(t *testing.T) {
	repo := &fakeRepository{
		findLeaveTypeByCodeFn: func(ctx context.Context, companyID, code string) (*entitlement.LeaveType, error) {
			if code == "AL" {
				return &entitlement.LeaveType{Code: "AL"}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := entitlement.NewService(repo, &fakeEmployees{}, nil, 0)

	lt, err := svc.GetLeaveTypeByCode(context.Background(), uuid.NewString(), "AL")
	require.NoError(t, err)
	assert.Equal(t, "AL", lt.Code)

	_, err = svc.GetLeaveTypeByCode(context.Background(), uuid.NewString(), "XX")
	assert.ErrorIs(t, err, entitlementerrors.ErrLeaveTypeNotFound)
}
