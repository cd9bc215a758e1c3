package apperror

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// CalendarDateTag validates a YYYY-MM-DD date inside the years the ledger
// accepts. Leave and replacement credit payloads bind their dates with it.
const CalendarDateTag = "calendar_date"

const (
	MinCalendarYear = 2000
	MaxCalendarYear = 2100
)

// Init points gin's validator at json (or form) field names so
// MapValidationError reports leave_type_code instead of LeaveTypeCode, and
// registers the calendar_date tag. Call it once before serving.
func Init() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("apperror: binding engine is not go-playground/validator")
	}
	v.RegisterTagNameFunc(fieldName)
	return v.RegisterValidation(CalendarDateTag, isCalendarDate)
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return ""
}

func isCalendarDate(fl validator.FieldLevel) bool {
	d, err := time.Parse("2006-01-02", fl.Field().String())
	if err != nil {
		return false
	}
	return d.Year() >= MinCalendarYear && d.Year() <= MaxCalendarYear
}
