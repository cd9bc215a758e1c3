package orghierarchy

import (
	"context"

	"starhr/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=orghierarchy_repo.go -destination=mock/orghierarchy_repo_mock.go -package=mock
type Repository interface {
	FindByEmployee(ctx context.Context, companyID, employeeID string) (*OrgHierarchyNode, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByEmployee(ctx context.Context, companyID, employeeID string) (*OrgHierarchyNode, error) {
	var node OrgHierarchyNode
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		First(&node).Error
	if err != nil {
		return nil, err
	}
	return &node, nil
}
