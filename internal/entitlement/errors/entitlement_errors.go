package entitlementerrors

import (
	"net/http"

	"starhr/internal/shared/apperror"
)

var (
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found",
		http.StatusNotFound,
	)
	ErrLeaveTypeInactive = apperror.New(
		apperror.CodePolicyViolation,
		"leave type is not active",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"year is out of range",
		http.StatusBadRequest,
	)
	ErrPreviewForbidden = apperror.New(
		apperror.CodeForbidden,
		"not allowed to preview another employee's entitlement",
		http.StatusForbidden,
	)
)
