package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/meenmo/bondlib/calendar"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestIsBusinessDay(t *testing.T) {
	t.Parallel()

	assert.True(t, calendar.IsBusinessDay(calendar.US, d(2025, time.June, 30)))  // Monday
	assert.False(t, calendar.IsBusinessDay(calendar.US, d(2026, time.August, 15))) // Saturday
	assert.False(t, calendar.IsBusinessDay(calendar.US, d(2025, time.July, 4)))  // Independence Day
	// NONE ignores holidays, only weekends count.
	assert.True(t, calendar.IsBusinessDay(calendar.NONE, d(2025, time.July, 4)))
}

func TestAdjust(t *testing.T) {
	t.Parallel()

	sat := d(2026, time.August, 15)
	assert.Equal(t, d(2026, time.August, 17), calendar.Adjust(calendar.US, sat, calendar.Following))
	assert.Equal(t, d(2026, time.August, 14), calendar.Adjust(calendar.US, sat, calendar.Preceding))
	assert.Equal(t, sat, calendar.Adjust(calendar.US, sat, calendar.Unadjusted))

	// 2025-05-31 is a Saturday; MODIFIED_FOLLOWING would cross into June, so
	// it rolls back to Friday the 30th instead.
	monthEndSat := d(2025, time.May, 31)
	assert.Equal(t, d(2025, time.June, 2), calendar.Adjust(calendar.US, monthEndSat, calendar.Following))
	assert.Equal(t, d(2025, time.May, 30), calendar.Adjust(calendar.US, monthEndSat, calendar.ModifiedFollowing))
}

func TestAddBusinessDays(t *testing.T) {
	t.Parallel()

	// Thursday 2025-07-03 +1 skips the July 4 holiday and the weekend.
	assert.Equal(t, d(2025, time.July, 7), calendar.AddBusinessDays(calendar.US, d(2025, time.July, 3), 1))
	assert.Equal(t, d(2025, time.July, 3), calendar.AddBusinessDays(calendar.US, d(2025, time.July, 7), -1))
	assert.Equal(t, d(2025, time.July, 1), calendar.AddBusinessDays(calendar.US, d(2025, time.June, 30), 1))
}

func TestMonthEnd(t *testing.T) {
	t.Parallel()

	assert.True(t, calendar.IsMonthEnd(d(2024, time.February, 29)))
	assert.False(t, calendar.IsMonthEnd(d(2023, time.February, 27)))
	assert.Equal(t, d(2024, time.February, 29), calendar.MonthEnd(d(2024, time.February, 10)))
	assert.Equal(t, d(2025, time.April, 30), calendar.MonthEnd(d(2025, time.April, 1)))
}

func TestLastBusinessDayOfMonth(t *testing.T) {
	t.Parallel()

	// May 2025 ends on a Saturday.
	assert.Equal(t, d(2025, time.May, 30), calendar.LastBusinessDayOfMonth(calendar.US, d(2025, time.May, 10)))
}
