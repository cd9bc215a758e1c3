package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req EnforceRequest) (bool, error)
	Roles() ([]RolePermissionsResponse, error)
}

type service struct {
	enforcer *casbin.Enforcer
	policy   Policy
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewService loads policy into enforcer. The enforcer only ever holds the
// role tiers, so it is safe to share across tenants.
func NewService(enforcer *casbin.Enforcer, policy Policy, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	s := &service{enforcer: enforcer, policy: policy, logger: l}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()
	for _, role := range s.policy.RoleNames() {
		rp := s.policy.Roles[role]
		for _, parent := range rp.Inherits {
			if _, err := s.enforcer.AddGroupingPolicy(role, parent); err != nil {
				return err
			}
		}
		for _, perm := range rp.Permissions {
			resource, action, err := splitPermission(perm)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddPolicy(role, resource, action); err != nil {
				return err
			}
		}
	}
	s.logger.Info("rbac policy loaded", zap.Int("roles", len(s.policy.Roles)))
	return nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("company_id", req.CompanyID),
			zap.String("role", req.Role),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("employee_id", req.EmployeeID),
		zap.String("company_id", req.CompanyID),
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) Roles() ([]RolePermissionsResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp := make([]RolePermissionsResponse, 0, len(s.policy.Roles))
	for _, role := range s.policy.RoleNames() {
		perms, err := s.enforcer.GetImplicitPermissionsForUser(role)
		if err != nil {
			return nil, err
		}
		flat := make([]string, 0, len(perms))
		for _, p := range perms {
			if len(p) >= 3 {
				flat = append(flat, p[1]+":"+p[2])
			}
		}
		inherits := s.policy.Roles[role].Inherits
		if inherits == nil {
			inherits = []string{}
		}
		resp = append(resp, RolePermissionsResponse{
			Role:        role,
			Inherits:    inherits,
			Permissions: flat,
		})
	}
	return resp, nil
}
