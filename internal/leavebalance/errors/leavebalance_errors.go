package leavebalanceerrors

import (
	"net/http"

	"starhr/internal/shared/apperror"
)

var (
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found",
		http.StatusNotFound,
	)
	ErrLedgerConflict = apperror.New(
		apperror.CodeInvalidState,
		"leave balance changed or would become negative",
		http.StatusConflict,
	)
	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"days must be greater than zero",
		http.StatusBadRequest,
	)
	ErrBalanceForbidden = apperror.New(
		apperror.CodeForbidden,
		"not allowed to view another employee's balance",
		http.StatusForbidden,
	)
)
