package bond

import "github.com/meenmo/bondlib/calendar"

// DayCount identifies a day count convention for accrual and discounting.
type DayCount string

const (
	DC30360   DayCount = "30/360"
	DC30E360  DayCount = "30E/360"
	DCActAct  DayCount = "ACT/ACT"
	DCAct360  DayCount = "ACT/360"
	DCAct365F DayCount = "ACT/365F"
)

// Frequency is the number of coupon payments per year.
type Frequency int

const (
	Annual     Frequency = 1
	Semiannual Frequency = 2
	Quarterly  Frequency = 4
)

// MonthsPerPeriod returns the length of one coupon period in months.
func (f Frequency) MonthsPerPeriod() int {
	if f <= 0 {
		return 0
	}
	return 12 / int(f)
}

// ConventionSet is the full set of market conventions a bond calculation needs.
//
// The resolver guarantees every field is populated; there is no partially
// resolved state. A ConventionSet obtained from the lowest resolution tier is
// still total (30/360, semiannual, following).
type ConventionSet struct {
	DayCount        DayCount
	Frequency       Frequency
	BusinessDayRule calendar.Rule
	Calendar        calendar.CalendarID
	EndOfMonth      bool
}

// DefaultConventions is the tier-5 fallback applied when nothing better is
// known about a bond.
func DefaultConventions() ConventionSet {
	return ConventionSet{
		DayCount:        DC30360,
		Frequency:       Semiannual,
		BusinessDayRule: calendar.Following,
		Calendar:        calendar.NONE,
		EndOfMonth:      false,
	}
}
