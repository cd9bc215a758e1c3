package replacementleave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"starhr/internal/tenant"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListFilter struct {
	EmployeeID string
	Status     string
}

//go:generate mockgen -source=replacementleave_repo.go -destination=mock/replacementleave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindActiveRule(ctx context.Context, companyID, triggerType string, on time.Time) (*ReplacementLeaveRule, error)
	FindRuleByID(ctx context.Context, companyID, id string) (*ReplacementLeaveRule, error)
	FindByTriggerReference(ctx context.Context, companyID, reference string) (*ReplacementLeaveCredit, error)
	SumCredited(ctx context.Context, companyID, employeeID string, from, to time.Time) (decimal.Decimal, error)
	Create(ctx context.Context, credit *ReplacementLeaveCredit) error
	FindByID(ctx context.Context, companyID, id string) (*ReplacementLeaveCredit, error)
	FindByIDForUpdate(ctx context.Context, companyID, id string) (*ReplacementLeaveCredit, error)
	List(ctx context.Context, companyID string, filter ListFilter) ([]ReplacementLeaveCredit, error)
	ListExpirable(ctx context.Context, today time.Time, limit int) ([]ReplacementLeaveCredit, error)
	UpdateStatus(ctx context.Context, companyID, id, fromStatus string, changes map[string]any) (int64, error)
	AddHistory(ctx context.Context, entry *ReplacementCreditHistory) error
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

// FindActiveRule returns the most recently effective rule covering on.
func (r *repository) FindActiveRule(ctx context.Context, companyID, triggerType string, on time.Time) (*ReplacementLeaveRule, error) {
	var rule ReplacementLeaveRule
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID), tenant.Active()).
		Where("trigger_type = ?", triggerType).
		Where("effective_from <= ?", on).
		Where("(effective_to IS NULL OR effective_to >= ?)", on).
		Order("effective_from DESC").
		First(&rule).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *repository) FindRuleByID(ctx context.Context, companyID, id string) (*ReplacementLeaveRule, error) {
	var rule ReplacementLeaveRule
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&rule).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// FindByTriggerReference returns nil, nil when the reference is unused.
func (r *repository) FindByTriggerReference(ctx context.Context, companyID, reference string) (*ReplacementLeaveCredit, error) {
	var credit ReplacementLeaveCredit
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("trigger_reference = ?", reference).
		First(&credit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &credit, nil
}

// SumCredited totals non-rejected credits with a trigger date in [from, to).
func (r *repository) SumCredited(ctx context.Context, companyID, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.conn(ctx).
		Model(&ReplacementLeaveCredit{}).
		Scopes(tenant.Scope(companyID)).
		Select("COALESCE(SUM(days_credited), 0)").
		Where("employee_id = ?", employeeID).
		Where("status <> ?", StatusRejected).
		Where("trigger_date >= ? AND trigger_date < ?", from, to).
		Row().
		Scan(&total)
	return total, err
}

func (r *repository) Create(ctx context.Context, credit *ReplacementLeaveCredit) error {
	return r.conn(ctx).Create(credit).Error
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*ReplacementLeaveCredit, error) {
	var credit ReplacementLeaveCredit
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&credit).Error
	if err != nil {
		return nil, err
	}
	return &credit, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, companyID, id string) (*ReplacementLeaveCredit, error) {
	var credit ReplacementLeaveCredit
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&credit).Error
	if err != nil {
		return nil, err
	}
	return &credit, nil
}

func (r *repository) List(ctx context.Context, companyID string, filter ListFilter) ([]ReplacementLeaveCredit, error) {
	var rows []ReplacementLeaveCredit
	q := r.conn(ctx).Scopes(tenant.Scope(companyID))
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	err := q.Order("trigger_date DESC").Find(&rows).Error
	return rows, err
}

// ListExpirable spans every company; it backs the expiry job only.
func (r *repository) ListExpirable(ctx context.Context, today time.Time, limit int) ([]ReplacementLeaveCredit, error) {
	var rows []ReplacementLeaveCredit
	err := r.conn(ctx).
		Where("status = ?", StatusApproved).
		Where("expiry_date IS NOT NULL AND expiry_date < ?", today).
		Where("days_remaining > 0").
		Order("expiry_date ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateStatus(ctx context.Context, companyID, id, fromStatus string, changes map[string]any) (int64, error) {
	changes["updated_at"] = time.Now()
	res := r.conn(ctx).
		Model(&ReplacementLeaveCredit{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(changes)
	return res.RowsAffected, res.Error
}

func (r *repository) AddHistory(ctx context.Context, entry *ReplacementCreditHistory) error {
	return r.conn(ctx).Create(entry).Error
}
