package leaveerrors

import (
	"net/http"

	"starhr/internal/shared/apperror"
)

// Validation
var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrCrossYear = apperror.New(
		apperror.CodeInvalidInput,
		"leave must not span two calendar years",
		http.StatusBadRequest,
	)
	ErrNoWorkingDays = apperror.New(
		apperror.CodeInvalidInput,
		"requested range contains no working days",
		http.StatusBadRequest,
	)
	ErrJustificationRequired = apperror.New(
		apperror.CodeInvalidInput,
		"justification is required for an override",
		http.StatusBadRequest,
	)
)

// Policy
var (
	ErrInsufficientBalance = apperror.New(
		apperror.CodePolicyViolation,
		"insufficient balance",
		http.StatusUnprocessableEntity,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodePolicyViolation,
		"leave period overlaps with an existing request",
		http.StatusUnprocessableEntity,
	)
	ErrInsufficientNotice = apperror.New(
		apperror.CodePolicyViolation,
		"below minimum notice period",
		http.StatusUnprocessableEntity,
	)
	ErrExceedsMaxConsecutive = apperror.New(
		apperror.CodePolicyViolation,
		"exceeds maximum consecutive days",
		http.StatusUnprocessableEntity,
	)
	ErrDocumentRequired = apperror.New(
		apperror.CodePolicyViolation,
		"supporting document is required for this leave type",
		http.StatusUnprocessableEntity,
	)
)

// State and authorization
var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidState = apperror.New(
		apperror.CodeInvalidState,
		"leave request is no longer pending",
		http.StatusConflict,
	)
	ErrApproverRoleRequired = apperror.New(
		apperror.CodeForbidden,
		"role is not allowed to decide leave requests",
		http.StatusForbidden,
	)
	ErrOverrideRoleRequired = apperror.New(
		apperror.CodeForbidden,
		"only HR or ADMIN may override a leave decision",
		http.StatusForbidden,
	)
	ErrSelfApproval = apperror.New(
		apperror.CodeForbidden,
		"cannot decide your own leave request",
		http.StatusForbidden,
	)
	ErrNotAssignedApprover = apperror.New(
		apperror.CodeForbidden,
		"leave request is routed to another approver",
		http.StatusForbidden,
	)
	ErrNotRequester = apperror.New(
		apperror.CodeForbidden,
		"only the requester may cancel a leave request",
		http.StatusForbidden,
	)
	ErrSubmitOnBehalf = apperror.New(
		apperror.CodeForbidden,
		"not allowed to submit leave for another employee",
		http.StatusForbidden,
	)
	ErrLeaveForbidden = apperror.New(
		apperror.CodeForbidden,
		"not allowed to view this leave request",
		http.StatusForbidden,
	)
)
