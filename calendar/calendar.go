package calendar

import "time"

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	// NONE treats only weekends as non-business days.
	NONE   CalendarID = "NONE"
	US     CalendarID = "US"
	TARGET CalendarID = "TARGET"
	GB     CalendarID = "GB"
	JP     CalendarID = "JP"
)

// Rule selects how a date falling on a non-business day rolls.
type Rule string

const (
	Following         Rule = "FOLLOWING"
	ModifiedFollowing Rule = "MODIFIED_FOLLOWING"
	Preceding         Rule = "PRECEDING"
	Unadjusted        Rule = "UNADJUSTED"
)

var targetHolidays = map[string]struct{}{}
var gbHolidays = map[string]struct{}{}
var jpHolidays = map[string]struct{}{}
var usHolidays = map[string]struct{}{}

func init() {
	usHolidays = make(map[string]struct{}, len(usHolidayList))
	for _, h := range usHolidayList {
		usHolidays[h] = struct{}{}
	}
}

func isHoliday(cal CalendarID, t time.Time) bool {
	key := t.Format("2006-01-02")
	switch cal {
	case US:
		_, ok := usHolidays[key]
		return ok
	case TARGET:
		_, ok := targetHolidays[key]
		return ok
	case GB:
		_, ok := gbHolidays[key]
		return ok
	case JP:
		_, ok := jpHolidays[key]
		return ok
	default:
		return false
	}
}

// IsBusinessDay checks weekends and holiday sets.
func IsBusinessDay(cal CalendarID, t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(cal, t)
}

// Adjust rolls t onto a business day per the given rule.
func Adjust(cal CalendarID, t time.Time, rule Rule) time.Time {
	switch rule {
	case Unadjusted:
		return t
	case Preceding:
		for !IsBusinessDay(cal, t) {
			t = t.AddDate(0, 0, -1)
		}
		return t
	case ModifiedFollowing:
		origMonth := t.Month()
		adj := t
		for !IsBusinessDay(cal, adj) {
			adj = adj.AddDate(0, 0, 1)
		}
		if adj.Month() != origMonth {
			adj = t
			for !IsBusinessDay(cal, adj) {
				adj = adj.AddDate(0, 0, -1)
			}
		}
		return adj
	default: // Following
		for !IsBusinessDay(cal, t) {
			t = t.AddDate(0, 0, 1)
		}
		return t
	}
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal CalendarID, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(cal, t) {
			n -= step
		}
	}
	return t
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsMonthEnd reports whether t is the last calendar day of its month.
func IsMonthEnd(t time.Time) bool {
	return t.Day() == daysInMonth(t.Year(), t.Month())
}

// MonthEnd returns the last calendar day of the month containing t.
func MonthEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

// LastBusinessDayOfMonth returns the last business day of the month containing t.
func LastBusinessDayOfMonth(cal CalendarID, t time.Time) time.Time {
	nextMonth := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return AddBusinessDays(cal, nextMonth, -1)
}
