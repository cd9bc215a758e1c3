package attendanceerrors

import (
	"net/http"

	"starhr/internal/shared/apperror"
)

var (
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"from must not be after to",
		http.StatusBadRequest,
	)
	ErrLeaveRequestRequired = apperror.New(
		apperror.CodeInvalidInput,
		"leave request id is required",
		http.StatusBadRequest,
	)
)
