package orghierarchy

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"starhr/internal/department"
	departmenterrors "starhr/internal/department/errors"
	orghierarchyerrors "starhr/internal/orghierarchy/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SourceSupervisor         = "SUPERVISOR"
	SourceDepartmentFallback = "DEPARTMENT_FALLBACK"
)

type Approver struct {
	ApproverID     string
	ApproverName   string
	HierarchyLevel int
	Source         string
	Snapshot       datatypes.JSON
}

// Snapshot is frozen onto the leave request so later reorganisations do not
// change who was accountable at submission time.
type Snapshot struct {
	EmployeeID         string    `json:"employee_id"`
	NodeID             string    `json:"node_id"`
	ReportsToID        *string   `json:"reports_to_id"`
	DepartmentID       *string   `json:"department_id"`
	HierarchyLevel     int       `json:"hierarchy_level"`
	FallbackApproverID *string   `json:"fallback_approver_id"`
	SelfReport         bool      `json:"self_report"`
	Source             string    `json:"source"`
	ApproverID         string    `json:"approver_id"`
	ResolvedAt         time.Time `json:"resolved_at"`
}

type DepartmentReader interface {
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*department.Department, error)
}

type EmployeeNameReader interface {
	FindNamesByIDs(ctx context.Context, companyID string, ids []string) (map[string]string, error)
}

//go:generate mockgen -source=orghierarchy_resolver.go -destination=mock/orghierarchy_resolver_mock.go -package=mock
type Resolver interface {
	Resolve(ctx context.Context, companyID, employeeID string) (Approver, error)
}

type resolver struct {
	repo        Repository
	departments DepartmentReader
	employees   EmployeeNameReader
	now         func() time.Time
	logger      *zap.Logger
}

func NewResolver(repo Repository, departments DepartmentReader, employees EmployeeNameReader, logger ...*zap.Logger) Resolver {
	l := zap.L().Named("orghierarchy.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("orghierarchy.resolver")
	}
	return &resolver{
		repo:        repo,
		departments: departments,
		employees:   employees,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      l,
	}
}

func (r *resolver) Resolve(ctx context.Context, companyID, employeeID string) (Approver, error) {
	node, err := r.repo.FindByEmployee(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Warn("approver resolution failed: no hierarchy",
				zap.String("company_id", companyID),
				zap.String("employee_id", employeeID),
			)
			return Approver{}, orghierarchyerrors.ErrNoHierarchy
		}
		r.logger.Error("load hierarchy node failed", zap.Error(err))
		return Approver{}, err
	}

	snap := Snapshot{
		EmployeeID:     employeeID,
		NodeID:         node.ID.String(),
		ReportsToID:    uuidString(node.ReportsToID),
		DepartmentID:   uuidString(node.DepartmentID),
		HierarchyLevel: node.HierarchyLevel,
	}

	// Nodes are unique per employee, so a self-report has no further link
	// to follow and counts as a cycle.
	var approverID, source string
	cyclic := false
	if node.ReportsToID != nil {
		if node.ReportsToID.String() != employeeID {
			approverID, source = node.ReportsToID.String(), SourceSupervisor
		} else {
			snap.SelfReport = true
			cyclic = true
		}
	}

	if approverID == "" {
		fallback, err := r.fallbackApprover(ctx, companyID, node)
		if err != nil {
			return Approver{}, err
		}
		snap.FallbackApproverID = uuidString(fallback)
		if fallback != nil && fallback.String() != employeeID {
			approverID = fallback.String()
			source = SourceDepartmentFallback
		}
	}

	if approverID == "" {
		failure := orghierarchyerrors.ErrNoApprover
		if cyclic {
			failure = orghierarchyerrors.ErrHierarchyCycle
		}
		r.logger.Warn("approver resolution failed",
			zap.String("company_id", companyID),
			zap.String("employee_id", employeeID),
			zap.String("reason", failure.Reason),
		)
		return Approver{}, failure
	}

	approver := Approver{ApproverID: approverID, Source: source}
	if approverNode, err := r.repo.FindByEmployee(ctx, companyID, approverID); err == nil {
		approver.HierarchyLevel = approverNode.HierarchyLevel
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Approver{}, err
	}

	names, err := r.employees.FindNamesByIDs(ctx, companyID, []string{approverID})
	if err != nil {
		return Approver{}, err
	}
	approver.ApproverName = names[approverID]

	snap.Source = source
	snap.ApproverID = approverID
	snap.ResolvedAt = r.now()
	raw, err := json.Marshal(snap)
	if err != nil {
		return Approver{}, err
	}
	approver.Snapshot = datatypes.JSON(raw)

	r.logger.Debug("approver resolved",
		zap.String("employee_id", employeeID),
		zap.String("approver_id", approverID),
		zap.String("source", source),
	)
	return approver, nil
}

func (r *resolver) fallbackApprover(ctx context.Context, companyID string, node *OrgHierarchyNode) (*uuid.UUID, error) {
	if node.DepartmentID == nil {
		return nil, nil
	}
	dept, err := r.departments.FindByIDAndCompany(ctx, companyID, node.DepartmentID.String())
	if err != nil {
		if errors.Is(err, departmenterrors.ErrDepartmentNotFound) {
			return nil, nil
		}
		r.logger.Error("load department failed", zap.Error(err))
		return nil, err
	}
	return dept.FallbackApproverID, nil
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
