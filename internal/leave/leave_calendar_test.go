package leave_test

import (
	"testing"
	"time"

	"starhr/internal/leave"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWorkingDays(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		halfStart bool
		halfEnd   bool
		want      string
	}{
		{name: "full week", start: "2025-03-10", end: "2025-03-14", want: "5"},
		{name: "half day end", start: "2025-03-10", end: "2025-03-14", halfEnd: true, want: "4.5"},
		{name: "both halves", start: "2025-03-10", end: "2025-03-14", halfStart: true, halfEnd: true, want: "4"},
		{name: "single half day", start: "2025-03-12", end: "2025-03-12", halfStart: true, want: "0.5"},
		{name: "spans weekend", start: "2025-03-13", end: "2025-03-18", want: "4"},
		{name: "weekend only", start: "2025-03-15", end: "2025-03-16", want: "0"},
		{name: "half flag on weekend edge ignored", start: "2025-03-15", end: "2025-03-17", halfStart: true, want: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := leave.WorkingDays(day(tt.start), day(tt.end), tt.halfStart, tt.halfEnd)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestWorkingDates(t *testing.T) {
	dates := leave.WorkingDates(day("2025-03-14"), day("2025-03-17"))

	assert.Equal(t, []time.Time{day("2025-03-14"), day("2025-03-17")}, dates)
	assert.False(t, leave.IsWorkingDay(day("2025-03-15")))
	assert.True(t, leave.IsWorkingDay(day("2025-03-17")))
}
