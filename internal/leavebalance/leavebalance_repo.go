package leavebalance

import (
	"context"
	"database/sql"
	"time"

	"starhr/internal/tenant"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const availableGuard = "allocated_days + carry_forward_days - taken_days - pending_days >= ?"

//go:generate mockgen -source=leavebalance_repo.go -destination=mock/leavebalance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Find(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	ListByEmployee(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error)
	CreateIfAbsent(ctx context.Context, b *LeaveBalance) error
	LockForUpdate(ctx context.Context, companyID, id string) (*LeaveBalance, error)
	Reserve(ctx context.Context, companyID, id string, days decimal.Decimal) (int64, error)
	CommitPending(ctx context.Context, companyID, id string, days decimal.Decimal) (int64, error)
	ReleasePending(ctx context.Context, companyID, id string, days decimal.Decimal) (int64, error)
	Grant(ctx context.Context, companyID, id string, days decimal.Decimal) (int64, error)
	Revoke(ctx context.Context, companyID, id string, days decimal.Decimal) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Find(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND leave_type_id = ? AND year = ?", employeeID, leaveTypeID, year).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) ListByEmployee(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error) {
	var rows []LeaveBalance
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND year = ?", employeeID, year).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateIfAbsent inserts b unless a row for the same key already exists.
func (r *repository) CreateIfAbsent(ctx context.Context, b *LeaveBalance) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "company_id"},
				{Name: "employee_id"},
				{Name: "leave_type_id"},
				{Name: "year"},
			},
			DoNothing: true,
		}).
		Create(b).Error
}

func (r *repository) LockForUpdate(ctx context.Context, companyID, id string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) update(ctx context.Context, companyID, id string, set map[string]any, guard string, guardArgs ...any) (int64, error) {
	set["updated_at"] = time.Now()
	q := r.conn(ctx).
		Model(&LeaveBalance{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id)
	if guard != "" {
		q = q.Where(guard, guardArgs...)
	}
	res := q.Updates(set)
	return res.RowsAffected, res.Error
}

// Reserve moves days into pending when enough is available.
func (r *repository) Reserve(ctx context.Context, companyID, id string, days decimal.Decimal) (int64, error) {
	return r.update(ctx, companyID, id, map[string]any{
		"pending_days": gorm.Expr("pending_days + ?", days),
	}, availableGuard, days)
}

func (r *repository) CommitPending(ctx context.Context, companyID, id string, days decimal.Decimal) (int64, error) {
	return r.update(ctx, companyID, id, map[string]any{
		"pending_days": gorm.Expr("pending_days - ?", days),
		"taken_days":   gorm.Expr("taken_days + ?", days),
	}, "pending_days >= ?", days)
}

func (r *repository) ReleasePending(ctx context.Context, companyID, id string, days decimal.Decimal) (int64, error) {
	return r.update(ctx, companyID, id, map[string]any{
		"pending_days": gorm.Expr("pending_days - ?", days),
	}, "pending_days >= ?", days)
}

func (r *repository) Grant(ctx context.Context, companyID, id string, days decimal.Decimal) (int64, error) {
	return r.update(ctx, companyID, id, map[string]any{
		"allocated_days": gorm.Expr("allocated_days + ?", days),
	}, "")
}

// Revoke takes days back from allocated without dipping below what is
// already taken or pending.
func (r *repository) Revoke(ctx context.Context, companyID, id string, days decimal.Decimal) (int64, error) {
	return r.update(ctx, companyID, id, map[string]any{
		"allocated_days": gorm.Expr("allocated_days - ?", days),
	}, availableGuard, days)
}
