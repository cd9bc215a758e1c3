package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// formatFieldName turns a json field name into a label: half_day_start -> Half Day Start
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError converts the first binding failure into an AppError.
// Field names come from json tags, see Init.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		humanReadableField := formatFieldName(e.Field())

		switch e.Tag() {
		case "required":
			return RequiredField(humanReadableField)
		case "oneof":
			return New(
				CodeInvalidInput,
				fmt.Sprintf("%s must be one of [%s]", humanReadableField, e.Param()),
				http.StatusBadRequest,
			)
		case CalendarDateTag, "datetime":
			return New(
				CodeInvalidInput,
				fmt.Sprintf("%s must be a date in YYYY-MM-DD format", humanReadableField),
				http.StatusBadRequest,
			)
		case "uuid":
			return New(
				CodeInvalidInput,
				fmt.Sprintf("%s must be a valid uuid", humanReadableField),
				http.StatusBadRequest,
			)
		default:
			return InvalidField(humanReadableField)
		}
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
}
