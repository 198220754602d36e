// Package schedule builds coupon payment schedules backward from maturity and
// locates the period bracketing settlement.
package schedule

import (
	"fmt"
	"time"

	"github.com/meenmo/bondlib/bond"
	"github.com/meenmo/bondlib/calendar"
	"github.com/meenmo/bondlib/config"
	"github.com/meenmo/bondlib/utils"
)

// Period is one coupon accrual period. Start and End are unadjusted accrual
// dates; Pay is the business-day-adjusted payment date.
type Period struct {
	Start time.Time
	End   time.Time
	Pay   time.Time
}

// Schedule holds the remaining periods of a bond as of a settlement date.
//
// Periods and Cashflows are aligned and ascending; the first period brackets
// settlement (Start <= settlement < End) and the last cashflow carries the
// principal. Matured schedules have no periods: a settlement on or after
// maturity is a normal terminal state, not an error.
type Schedule struct {
	Matured    bool
	PrevCoupon time.Time
	NextCoupon time.Time
	Periods    []Period
	Cashflows  []bond.Cashflow
}

// Generate builds the schedule for a model at a settlement date.
func Generate(m bond.Model, settlement time.Time) (Schedule, error) {
	if m.Maturity.IsZero() {
		return Schedule{}, fmt.Errorf("Generate: maturity unknown: %w", bond.ErrScheduleGeneration)
	}
	if m.IssueDate != nil && !m.IssueDate.Before(m.Maturity) {
		return Schedule{}, fmt.Errorf("Generate: issue date %s not before maturity %s: %w",
			m.IssueDate.Format("2006-01-02"), m.Maturity.Format("2006-01-02"), bond.ErrScheduleGeneration)
	}
	months := m.Conventions.Frequency.MonthsPerPeriod()
	if months == 0 {
		return Schedule{}, fmt.Errorf("Generate: invalid frequency %d: %w", m.Conventions.Frequency, bond.ErrScheduleGeneration)
	}

	if !settlement.Before(m.Maturity) {
		return Schedule{Matured: true}, nil
	}

	eomRoll := m.Conventions.EndOfMonth && calendar.IsMonthEnd(m.Maturity)

	// Walk backward from maturity until a coupon date at or before settlement.
	var unadjusted []time.Time
	for i := 0; ; i++ {
		if i > config.GetConfig().MaxPaymentDates {
			return Schedule{}, fmt.Errorf("Generate: more than %d periods between settlement and maturity: %w",
				config.GetConfig().MaxPaymentDates, bond.ErrScheduleGeneration)
		}
		d := utils.AddMonth(m.Maturity, -i*months)
		if eomRoll {
			d = calendar.MonthEnd(d)
		}
		unadjusted = append([]time.Time{d}, unadjusted...)
		if !d.After(settlement) {
			break
		}
		if m.IssueDate != nil && !d.After(*m.IssueDate) {
			break
		}
	}

	sched := Schedule{
		PrevCoupon: unadjusted[0],
		NextCoupon: unadjusted[1],
	}

	couponPerPeriod := m.CouponPct / float64(m.Conventions.Frequency)
	for k := 1; k < len(unadjusted); k++ {
		p := Period{
			Start: unadjusted[k-1],
			End:   unadjusted[k],
			Pay:   calendar.Adjust(m.Conventions.Calendar, unadjusted[k], m.Conventions.BusinessDayRule),
		}
		cf := bond.Cashflow{Date: p.Pay, Coupon: couponPerPeriod}
		if k == len(unadjusted)-1 {
			cf.Principal = 100
		}
		sched.Periods = append(sched.Periods, p)
		sched.Cashflows = append(sched.Cashflows, cf)
	}

	return sched, nil
}
