package orghierarchyerrors

import (
	"net/http"

	"starhr/internal/shared/apperror"
)

const (
	ReasonNoHierarchy    = "NO_HIERARCHY"
	ReasonNoApprover     = "NO_APPROVER"
	ReasonHierarchyCycle = "HIERARCHY_CYCLE"
)

var (
	ErrNoHierarchy = apperror.NewWithReason(
		apperror.CodeRoutingFailure,
		ReasonNoHierarchy,
		"employee has no organization hierarchy record",
		http.StatusConflict,
	)
	ErrNoApprover = apperror.NewWithReason(
		apperror.CodeRoutingFailure,
		ReasonNoApprover,
		"no approver is configured for this employee",
		http.StatusConflict,
	)
	ErrHierarchyCycle = apperror.NewWithReason(
		apperror.CodeRoutingFailure,
		ReasonHierarchyCycle,
		"reporting line loops back to the employee and no fallback approver is configured",
		http.StatusConflict,
	)
)
