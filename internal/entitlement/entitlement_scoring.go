package entitlement

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

const (
	RuleTypeException = "EXCEPTION"
	RuleTypeDefault   = "DEFAULT"
	RuleTypeGeneral   = "GENERAL"

	dimensionTenure     = "TENURE"
	dimensionGrade      = "GRADE"
	dimensionDepartment = "DEPT"

	scoreTenure     = 100
	scoreGrade      = 50
	scoreDepartment = 25

	daysPerMonth = 30.44
)

// EmployeeAttributes is the attribute vector rules are scored against.
type EmployeeAttributes struct {
	TenureMonths int
	Grade        string
	DepartmentID string
	Designation  string
}

type RankedRule struct {
	Rule              EntitlementRule
	Score             int
	EffectivePriority int
	RuleType          string
	Band              string
}

// TenureMonths counts whole months of 30.44 days between join and now.
func TenureMonths(joinDate, now time.Time) int {
	if now.Before(joinDate) {
		return 0
	}
	days := now.Sub(joinDate).Hours() / 24
	return int(math.Floor(days / daysPerMonth))
}

// ActiveOn keeps rules whose validity window covers day, ordered by priority
// ascending then effective date descending.
func ActiveOn(rules []EntitlementRule, day time.Time) []EntitlementRule {
	out := make([]EntitlementRule, 0, len(rules))
	for _, r := range rules {
		if !r.IsActive || r.EffectiveFrom.After(day) {
			continue
		}
		if r.EffectiveTo != nil && r.EffectiveTo.Before(day) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].EffectiveFrom.After(out[j].EffectiveFrom)
	})
	return out
}

// MatchRule scores a single rule. The second result is false when any filter
// the rule sets is not satisfied by attrs.
func MatchRule(rule EntitlementRule, attrs EmployeeAttributes) (RankedRule, bool) {
	score := 0
	var dims []string

	if rule.MinTenureMonths > 0 {
		if attrs.TenureMonths < rule.MinTenureMonths {
			return RankedRule{}, false
		}
		if rule.MaxTenureMonths != nil && attrs.TenureMonths >= *rule.MaxTenureMonths {
			return RankedRule{}, false
		}
		score += scoreTenure
		dims = append(dims, dimensionTenure)
	}
	if rule.EmployeeGrade != "" {
		if rule.EmployeeGrade != attrs.Grade {
			return RankedRule{}, false
		}
		score += scoreGrade
		dims = append(dims, dimensionGrade)
	}
	if rule.DepartmentID != nil {
		if rule.DepartmentID.String() != attrs.DepartmentID {
			return RankedRule{}, false
		}
		score += scoreDepartment
		dims = append(dims, dimensionDepartment)
	}
	if rule.Designation != "" && rule.Designation != attrs.Designation {
		return RankedRule{}, false
	}

	ruleType := RuleTypeGeneral
	if len(dims) > 0 {
		ruleType = strings.Join(dims, "_")
	}

	return RankedRule{
		Rule:              rule,
		Score:             score,
		EffectivePriority: rule.Priority - score,
		RuleType:          ruleType,
		Band:              describeBand(rule),
	}, true
}

// RankRules returns the matching rules best first. Rules are expected in
// candidate order (see ActiveOn); equal effective priorities keep that order.
func RankRules(rules []EntitlementRule, attrs EmployeeAttributes) []RankedRule {
	ranked := make([]RankedRule, 0, len(rules))
	for _, r := range rules {
		if m, ok := MatchRule(r, attrs); ok {
			ranked = append(ranked, m)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EffectivePriority < ranked[j].EffectivePriority
	})
	return ranked
}

func SelectRule(rules []EntitlementRule, attrs EmployeeAttributes) (RankedRule, bool) {
	ranked := RankRules(rules, attrs)
	if len(ranked) == 0 {
		return RankedRule{}, false
	}
	return ranked[0], true
}

func describeBand(rule EntitlementRule) string {
	var parts []string
	if rule.MinTenureMonths > 0 {
		if rule.MaxTenureMonths != nil {
			parts = append(parts, fmt.Sprintf("tenure %d-%d months", rule.MinTenureMonths, *rule.MaxTenureMonths))
		} else {
			parts = append(parts, fmt.Sprintf("tenure %d+ months", rule.MinTenureMonths))
		}
	}
	if rule.EmployeeGrade != "" {
		parts = append(parts, "grade "+rule.EmployeeGrade)
	}
	if rule.DepartmentID != nil {
		parts = append(parts, "department "+rule.DepartmentID.String())
	}
	if rule.Designation != "" {
		parts = append(parts, "designation "+rule.Designation)
	}
	if len(parts) == 0 {
		if rule.Description != "" {
			return rule.Description
		}
		return "all employees"
	}
	return strings.Join(parts, ", ")
}
