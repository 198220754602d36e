package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/meenmo/bondlib/utils"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestYearFraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		start, end time.Time
		convention string
		want       float64
	}{
		{"30/360 half year", d(2025, time.January, 15), d(2025, time.July, 15), "30/360", 0.5},
		{"30/360 month-end cap", d(2025, time.January, 31), d(2025, time.July, 31), "30/360", 0.5},
		{"30E/360 full year", d(2024, time.March, 1), d(2025, time.March, 1), "30E/360", 1.0},
		{"ACT/360", d(2025, time.January, 1), d(2025, time.January, 31), "ACT/360", 30.0 / 360.0},
		{"ACT/365F full year", d(2025, time.January, 1), d(2026, time.January, 1), "ACT/365F", 1.0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, utils.YearFraction(tc.start, tc.end, tc.convention), 1e-12)
		})
	}
}

func TestYearFraction_ActActLeapSplit(t *testing.T) {
	t.Parallel()

	// One day in 2023 (365-day year) plus one in 2024 (366-day year).
	got := utils.YearFraction(d(2023, time.December, 31), d(2024, time.January, 2), "ACT/ACT")
	assert.InDelta(t, 1.0/365.0+1.0/366.0, got, 1e-12)

	// A full non-leap year is exactly 1.
	assert.InDelta(t, 1.0, utils.YearFraction(d(2025, time.January, 1), d(2026, time.January, 1), "ACT/ACT"), 1e-12)
}

func TestPeriodFraction(t *testing.T) {
	t.Parallel()

	start := d(2025, time.February, 15)
	end := d(2025, time.August, 15)

	// Clamped at the boundaries.
	assert.Zero(t, utils.PeriodFraction(start, start, end, "ACT/ACT"))
	assert.Zero(t, utils.PeriodFraction(start, d(2025, time.January, 1), end, "ACT/ACT"))
	assert.Equal(t, 1.0, utils.PeriodFraction(start, end, end, "ACT/ACT"))

	// Actual/actual-in-period: 135 elapsed of 181 days.
	got := utils.PeriodFraction(start, d(2025, time.June, 30), end, "ACT/ACT")
	assert.InDelta(t, 135.0/181.0, got, 1e-12)
}

func TestPeriodFraction_Thirty360MonthEnd(t *testing.T) {
	t.Parallel()

	// Under 30/360 the Jan 31 start counts as the 30th, so Feb 28 sits at
	// 28/180 of the half-year period.
	got := utils.PeriodFraction(d(2025, time.January, 31), d(2025, time.February, 28), d(2025, time.July, 31), "30/360")
	assert.InDelta(t, 28.0/180.0, got, 1e-12)
}
