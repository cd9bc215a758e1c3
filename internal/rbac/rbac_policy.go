package rbac

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed policy.yaml
var defaultPolicy []byte

type rolePolicy struct {
	Inherits    []string `yaml:"inherits"`
	Permissions []string `yaml:"permissions"`
}

type Policy struct {
	Roles map[string]rolePolicy `yaml:"roles"`
}

// DefaultPolicy returns the role policy shipped with the binary.
func DefaultPolicy() (Policy, error) {
	return ParsePolicy(defaultPolicy)
}

func ParsePolicy(raw []byte) (Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Policy{}, fmt.Errorf("parse role policy: %w", err)
	}
	if len(p.Roles) == 0 {
		return Policy{}, fmt.Errorf("parse role policy: no roles defined")
	}
	for role, rp := range p.Roles {
		for _, parent := range rp.Inherits {
			if _, ok := p.Roles[parent]; !ok {
				return Policy{}, fmt.Errorf("role %s inherits unknown role %s", role, parent)
			}
		}
		for _, perm := range rp.Permissions {
			if _, _, err := splitPermission(perm); err != nil {
				return Policy{}, fmt.Errorf("role %s: %w", role, err)
			}
		}
	}
	return p, nil
}

// RoleNames returns the configured roles in a stable order.
func (p Policy) RoleNames() []string {
	names := make([]string, 0, len(p.Roles))
	for name := range p.Roles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func splitPermission(perm string) (string, string, error) {
	resource, action, ok := strings.Cut(perm, ":")
	if !ok || resource == "" || action == "" {
		return "", "", fmt.Errorf("invalid permission %q, expected resource:action", perm)
	}
	return resource, action, nil
}
