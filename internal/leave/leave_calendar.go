package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

var half = decimal.RequireFromString("0.5")

func IsWorkingDay(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// WorkingDates lists the weekdays in [start, end].
func WorkingDates(start, end time.Time) []time.Time {
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d) {
			out = append(out, d)
		}
	}
	return out
}

// WorkingDays counts weekdays in [start, end]. A half-day flag only takes
// 0.5 off when its edge falls on a working day.
func WorkingDays(start, end time.Time, halfDayStart, halfDayEnd bool) decimal.Decimal {
	days := decimal.NewFromInt(int64(len(WorkingDates(start, end))))
	if halfDayStart && IsWorkingDay(start) {
		days = days.Sub(half)
	}
	if halfDayEnd && IsWorkingDay(end) {
		days = days.Sub(half)
	}
	return days
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
