package employee

import (
	"context"

	"starhr/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error)
	FindNamesByIDs(ctx context.Context, companyID string, ids []string) (map[string]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &empl, nil
}

func (r *repository) FindNamesByIDs(ctx context.Context, companyID string, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []Employee
	err := r.db.WithContext(ctx).
		Select("id", "full_name").
		Scopes(tenant.Scope(companyID)).
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[row.ID.String()] = row.FullName
	}
	return names, nil
}
