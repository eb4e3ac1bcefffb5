package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLeaveDays_SickCountsCalendarDays(t *testing.T) {
	// Friday through Monday: four calendar days.
	start := date(2026, time.January, 9)
	end := date(2026, time.January, 12)

	assert.Equal(t, 4, LeaveDays(start, end, LeaveSick))
}

func TestLeaveDays_AnnualSkipsWeekends(t *testing.T) {
	// Friday through Monday: weekend excluded.
	start := date(2026, time.January, 9)
	end := date(2026, time.January, 12)

	assert.Equal(t, 2, LeaveDays(start, end, LeaveAnnual))
}

func TestLeaveDays_SingleDay(t *testing.T) {
	d := date(2026, time.January, 7) // a Wednesday

	assert.Equal(t, 1, LeaveDays(d, d, LeaveCasual))
	assert.Equal(t, 1, LeaveDays(d, d, LeaveSick))
}

func TestLeaveDays_WeekendOnlyAnnualIsZero(t *testing.T) {
	start := date(2026, time.January, 10) // Saturday
	end := date(2026, time.January, 11)   // Sunday

	assert.Equal(t, 0, LeaveDays(start, end, LeaveAnnual))
	assert.Equal(t, 2, LeaveDays(start, end, LeaveSick))
}

func TestLeaveDays_EndBeforeStart(t *testing.T) {
	start := date(2026, time.January, 12)
	end := date(2026, time.January, 9)

	assert.Equal(t, 0, LeaveDays(start, end, LeaveAnnual))
}
