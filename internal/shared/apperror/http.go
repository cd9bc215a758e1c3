package apperror

import (
	"errors"
	"net/http"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP converts any error to the transport shape. Errors that are not an
// AppError never leak their message.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		var details any
		switch {
		case len(appErr.Details) > 0:
			d := make(map[string]any, len(appErr.Details)+1)
			for k, v := range appErr.Details {
				d[k] = v
			}
			if appErr.Reason != "" {
				d["reason"] = appErr.Reason
			}
			details = d
		case appErr.Reason != "":
			details = map[string]any{"reason": appErr.Reason}
		}
		return HTTPError{
			Status:  status,
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: details,
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: "Internal server error",
	}
}
