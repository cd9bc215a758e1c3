package replacementleave

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"starhr/internal/entitlement"
	replacementleaveerrors "starhr/internal/replacementleave/errors"

	"github.com/google/cel-go/cel"
	"github.com/shopspring/decimal"
)

var eligibilityPrograms sync.Map

var newEligibilityEnv = func() (*cel.Env, error) {
	return cel.NewEnv(cel.Variable("emp", cel.MapType(cel.StringType, cel.StringType)))
}

// Eligible applies the rule's structured filters, then its CEL expression.
// The expression sees emp.grade, emp.department, emp.designation,
// emp.tenure_months and emp.trigger_type, all as strings.
func Eligible(rule ReplacementLeaveRule, attrs entitlement.EmployeeAttributes, triggerType string) (bool, error) {
	if rule.MinTenureMonths > 0 && attrs.TenureMonths < rule.MinTenureMonths {
		return false, nil
	}
	if rule.EmployeeGrade != "" && rule.EmployeeGrade != attrs.Grade {
		return false, nil
	}
	if rule.DepartmentID != nil && rule.DepartmentID.String() != attrs.DepartmentID {
		return false, nil
	}
	if rule.Designation != "" && rule.Designation != attrs.Designation {
		return false, nil
	}
	if strings.TrimSpace(rule.EligibilityExpr) == "" {
		return true, nil
	}
	return evalEligibility(rule.EligibilityExpr, map[string]string{
		"grade":         attrs.Grade,
		"department":    attrs.DepartmentID,
		"designation":   attrs.Designation,
		"tenure_months": strconv.Itoa(attrs.TenureMonths),
		"trigger_type":  triggerType,
	})
}

func evalEligibility(expr string, emp map[string]string) (bool, error) {
	program, err := loadProgram(expr)
	if err != nil {
		return false, err
	}
	out, _, err := program.Eval(map[string]any{"emp": emp})
	if err != nil {
		return false, fmt.Errorf("eval eligibility: %w", err)
	}
	v, ok := out.Value().(bool)
	if !ok {
		return false, errors.New("eligibility expression did not return a bool")
	}
	return v, nil
}

func loadProgram(expr string) (cel.Program, error) {
	expr = strings.TrimSpace(expr)
	if cached, ok := eligibilityPrograms.Load(expr); ok {
		return cached.(cel.Program), nil
	}
	env, err := newEligibilityEnv()
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, errors.New("eligibility expression must return bool")
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, err
	}
	eligibilityPrograms.Store(expr, program)
	return program, nil
}

// ComputeDays returns the days a single trigger earns before period caps.
// explicit wins over the rule's credit type.
func ComputeDays(rule ReplacementLeaveRule, hoursWorked, explicit *decimal.Decimal) (decimal.Decimal, error) {
	var days decimal.Decimal
	switch {
	case explicit != nil:
		days = *explicit
	case strings.EqualFold(rule.CreditType, CreditTypeRatio):
		if hoursWorked == nil || !hoursWorked.IsPositive() {
			return decimal.Zero, replacementleaveerrors.ErrHoursRequired
		}
		if !rule.HoursPerDay.IsPositive() {
			return decimal.Zero, replacementleaveerrors.ErrInvalidRule
		}
		days = hoursWorked.Div(rule.HoursPerDay).Mul(rule.CreditDays).Round(2)
	default:
		days = rule.CreditDays
	}

	if rule.MaxDaysPerEvent.IsPositive() && days.GreaterThan(rule.MaxDaysPerEvent) {
		days = rule.MaxDaysPerEvent
	}
	if !days.IsPositive() {
		return decimal.Zero, replacementleaveerrors.ErrInvalidDays
	}
	return days, nil
}

// ApplyPeriodCaps clamps days to what is left under the monthly and yearly
// caps given the days already credited in those periods.
func ApplyPeriodCaps(rule ReplacementLeaveRule, days, creditedMonth, creditedYear decimal.Decimal) (decimal.Decimal, error) {
	if rule.MaxDaysPerMonth.IsPositive() {
		days = decimal.Min(days, rule.MaxDaysPerMonth.Sub(creditedMonth))
	}
	if rule.MaxDaysPerYear.IsPositive() {
		days = decimal.Min(days, rule.MaxDaysPerYear.Sub(creditedYear))
	}
	if !days.IsPositive() {
		return decimal.Zero, replacementleaveerrors.ErrCapReached
	}
	return days, nil
}

func ExpiryDate(rule ReplacementLeaveRule, triggerDate time.Time) *time.Time {
	if rule.ExpiryDays <= 0 {
		return nil
	}
	d := triggerDate.AddDate(0, 0, rule.ExpiryDays)
	return &d
}

func monthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func yearBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}
