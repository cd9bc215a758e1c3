package replacementleaveerrors

import (
	"net/http"

	"starhr/internal/shared/apperror"
)

// Validation
var (
	ErrInvalidTriggerDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid trigger_date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrHoursRequired = apperror.New(
		apperror.CodeInvalidInput,
		"hours_worked is required for ratio based credits",
		http.StatusBadRequest,
	)
	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"days must be greater than zero",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection reason is required",
		http.StatusBadRequest,
	)
)

// Policy
var (
	ErrRuleNotFound = apperror.New(
		apperror.CodePolicyViolation,
		"no active replacement leave rule for this trigger",
		http.StatusUnprocessableEntity,
	)
	ErrNotEligible = apperror.New(
		apperror.CodePolicyViolation,
		"employee is not eligible for replacement leave",
		http.StatusUnprocessableEntity,
	)
	ErrCapReached = apperror.New(
		apperror.CodePolicyViolation,
		"replacement leave cap reached",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidRule = apperror.New(
		apperror.CodePolicyViolation,
		"replacement leave rule is misconfigured",
		http.StatusUnprocessableEntity,
	)
)

// State and authorization
var (
	ErrDuplicateTrigger = apperror.New(
		apperror.CodeConflict,
		"trigger reference already credited",
		http.StatusConflict,
	)
	ErrCreditNotFound = apperror.New(
		apperror.CodeNotFound,
		"replacement credit not found",
		http.StatusNotFound,
	)
	ErrInvalidState = apperror.New(
		apperror.CodeInvalidState,
		"replacement credit is no longer pending",
		http.StatusConflict,
	)
	ErrApproverRoleRequired = apperror.New(
		apperror.CodeForbidden,
		"role is not allowed to decide replacement credits",
		http.StatusForbidden,
	)
	ErrSelfApproval = apperror.New(
		apperror.CodeForbidden,
		"cannot decide your own replacement credit",
		http.StatusForbidden,
	)
	ErrCreditForbidden = apperror.New(
		apperror.CodeForbidden,
		"not allowed to access these replacement credits",
		http.StatusForbidden,
	)
)
