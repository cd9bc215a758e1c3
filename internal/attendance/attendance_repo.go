package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	UpsertOnLeave(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	List(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Attendance, error)
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

// UpsertOnLeave inserts the day or, when a row already exists for the
// employee and date, flips it to the leave status. Clock times are kept.
func (r *repository) UpsertOnLeave(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_id"}, {Name: "employee_id"}, {Name: "attendance_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "source", "leave_request_id", "updated_at"}),
		}).
		Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.conn(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) List(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Attendance, error) {
	var rows []Attendance
	q := r.conn(ctx).
		Preload("Employee").
		Where("company_id = ?", companyID).
		Where("attendance_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02"))
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}
	err := q.Order("attendance_date DESC").Find(&rows).Error
	return rows, err
}
