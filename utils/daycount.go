package utils

import (
	"time"
)

// YearFraction computes year fraction between two dates using the specified day count convention.
// Supported conventions: ACT/360, ACT/365F, 30E/360, 30/360, ACT/ACT
func YearFraction(start, end time.Time, convention string) float64 {
	switch convention {
	case "ACT/360":
		days := end.Sub(start).Hours() / 24
		return days / 360.0
	case "ACT/365F":
		days := end.Sub(start).Hours() / 24
		return days / 365.0
	case "ACT/ACT":
		// ACT/ACT ISDA: split at year boundaries, actual days over actual
		// year length.
		if end.Before(start) {
			return -YearFraction(end, start, convention)
		}
		frac := 0.0
		cur := start
		for cur.Year() < end.Year() {
			boy := time.Date(cur.Year()+1, 1, 1, 0, 0, 0, 0, time.UTC)
			frac += boy.Sub(cur).Hours() / 24 / yearDays(cur.Year())
			cur = boy
		}
		frac += end.Sub(cur).Hours() / 24 / yearDays(end.Year())
		return frac
	case "30E/360", "30/360":
		// 30E/360 ISDA (Eurobond basis)
		// D1 and D2 are capped at 30
		d1 := start.Day()
		if d1 > 30 {
			d1 = 30
		}
		d2 := end.Day()
		if d2 > 30 {
			d2 = 30
		}
		y1, m1 := start.Year(), int(start.Month())
		y2, m2 := end.Year(), int(end.Month())
		return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
	default:
		days := end.Sub(start).Hours() / 24
		return days / 365.0
	}
}

func yearDays(year int) float64 {
	if (year%4 == 0 && year%100 != 0) || year%400 == 0 {
		return 366.0
	}
	return 365.0
}

// PeriodFraction returns the elapsed share of a coupon period [start, end] at
// date t, in [0, 1], under the given convention.
//
// For ACT conventions this is the ICMA ratio actual/actual-in-period; for the
// 30/360 family it is the ratio of 30/360 year fractions, which differs at
// month ends.
func PeriodFraction(start, t, end time.Time, convention string) float64 {
	if !t.After(start) {
		return 0
	}
	if !t.Before(end) {
		return 1
	}
	switch convention {
	case "30/360", "30E/360":
		full := YearFraction(start, end, convention)
		if full == 0 {
			return 0
		}
		return YearFraction(start, t, convention) / full
	default:
		full := Days(start, end)
		if full == 0 {
			return 0
		}
		return Days(start, t) / full
	}
}
