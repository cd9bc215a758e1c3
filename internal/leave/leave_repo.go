package leave

import (
	"context"
	"database/sql"
	"time"

	"starhr/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, companyID, id string) (*LeaveRequest, error)
	FindByIDForUpdate(ctx context.Context, companyID, id string) (*LeaveRequest, error)
	ListByEmployee(ctx context.Context, companyID, employeeID string) ([]LeaveRequest, error)
	ListPending(ctx context.Context, companyID string, approverID *string) ([]LeaveRequest, error)
	LockEmployee(ctx context.Context, companyID, employeeID string) error
	HasOverlap(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time) (bool, error)
	UpdateStatus(ctx context.Context, companyID, id, fromStatus string, changes map[string]any) (int64, error)
	AddHistory(ctx context.Context, entry *ApprovalHistoryEntry) error
	ListHistory(ctx context.Context, companyID, leaveRequestID string) ([]ApprovalHistoryEntry, error)
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, companyID, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) ListByEmployee(ctx context.Context, companyID, employeeID string) ([]LeaveRequest, error) {
	var rows []LeaveRequest
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&rows).Error
	return rows, err
}

// ListPending returns pending requests, optionally only those routed to
// approverID, oldest first.
func (r *repository) ListPending(ctx context.Context, companyID string, approverID *string) ([]LeaveRequest, error) {
	var rows []LeaveRequest
	q := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", StatusPending)
	if approverID != nil {
		q = q.Where("current_approver_id = ?", *approverID)
	}
	err := q.Order("submitted_at ASC").Find(&rows).Error
	return rows, err
}

// LockEmployee takes a transaction scoped advisory lock on the employee so
// concurrent submissions run their overlap check one at a time, whatever
// leave type they draw from. It only holds inside a transaction.
func (r *repository) LockEmployee(ctx context.Context, companyID, employeeID string) error {
	return r.conn(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", employeeLockKey(companyID, employeeID)).Error
}

func employeeLockKey(companyID, employeeID string) string {
	return "leave_request:" + companyID + ":" + employeeID
}

func (r *repository) HasOverlap(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&LeaveRequest{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("start_date <= ? AND end_date >= ?", endDate, startDate).
		Count(&count).Error
	return count > 0, err
}

// UpdateStatus applies changes only while the row is still in fromStatus.
// Zero rows affected means another transition won.
func (r *repository) UpdateStatus(ctx context.Context, companyID, id, fromStatus string, changes map[string]any) (int64, error) {
	changes["updated_at"] = time.Now()
	res := r.conn(ctx).
		Model(&LeaveRequest{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(changes)
	return res.RowsAffected, res.Error
}

func (r *repository) AddHistory(ctx context.Context, entry *ApprovalHistoryEntry) error {
	return r.conn(ctx).Create(entry).Error
}

func (r *repository) ListHistory(ctx context.Context, companyID, leaveRequestID string) ([]ApprovalHistoryEntry, error) {
	var rows []ApprovalHistoryEntry
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("leave_request_id = ?", leaveRequestID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}
