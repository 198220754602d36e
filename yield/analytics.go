// Package yield solves yield to maturity and derives the standard risk
// measures from a bond's remaining cashflows.
package yield

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/meenmo/bondlib/bond"
	"github.com/meenmo/bondlib/config"
	"github.com/meenmo/bondlib/curve"
	"github.com/meenmo/bondlib/schedule"
	"github.com/meenmo/bondlib/utils"
)

// PVBPNotional is the face value PVBP is scaled to.
const PVBPNotional = 1_000_000.0

// Input carries everything Calculate needs. Curve is optional; without it the
// result simply has no spread.
type Input struct {
	Model      bond.Model
	Schedule   schedule.Schedule
	CleanPrice float64
	Settlement time.Time
	Curve      curve.Source
}

// Calculate prices the bond's remaining cashflows against the quoted clean
// price and solves for yield, then derives duration, convexity, PVBP, and
// basis-converted equivalents analytically from the same discount structure.
//
// The solver runs once with the standard bracket and, on non-convergence
// only, once more with the widened bracket before giving up.
func Calculate(ctx context.Context, in Input) (bond.CalculationResult, error) {
	m := in.Model
	freq := float64(m.Conventions.Frequency)
	if in.Schedule.Matured || len(in.Schedule.Cashflows) == 0 {
		return bond.CalculationResult{}, fmt.Errorf("Calculate: no remaining cashflows")
	}
	if in.CleanPrice <= 0 {
		return bond.CalculationResult{}, fmt.Errorf("Calculate: price %.4f must be positive: %w",
			in.CleanPrice, bond.ErrInputUnrecognized)
	}

	dc := string(m.Conventions.DayCount)
	accruedFrac := utils.PeriodFraction(in.Schedule.PrevCoupon, in.Settlement, in.Schedule.NextCoupon, dc)
	accrued := (m.CouponPct / freq) * accruedFrac
	dirty := in.CleanPrice + accrued

	// Street convention: the first cashflow discounts over the unelapsed
	// share of the current period, every later one a whole period more.
	t1 := 1.0 - accruedFrac

	cfg := config.GetConfig()
	y, _, err := solve(ctx, in.Schedule.Cashflows, t1, dirty, cfg.BracketLow, cfg.BracketHigh)
	if errors.Is(err, bond.ErrNonConvergence) {
		y, _, err = solve(ctx, in.Schedule.Cashflows, t1, dirty, cfg.WideBracketLow, cfg.WideBracketHigh)
	}
	if err != nil {
		return bond.CalculationResult{}, fmt.Errorf("Calculate: %w", err)
	}

	_, dp, d2p := priceDerivs(y, t1, in.Schedule.Cashflows)

	// y is the periodic rate; nominal annual yield compounds it freq times.
	yAnnual := math.Pow(1.0+y, freq) - 1.0

	modDur := -dp / (freq * dirty)
	macaulay := modDur * (1.0 + y)
	convexity := d2p / (freq * freq * dirty)

	yearsToMat := utils.YearFraction(in.Settlement, m.Maturity, "ACT/365F")

	res := bond.CalculationResult{
		YTM:              y * freq * 100.0,
		YTMAnnual:        yAnnual * 100.0,
		ModifiedDuration: modDur,
		DurationAnnual:   macaulay / (1.0 + yAnnual),
		MacaulayDuration: macaulay,
		Convexity:        convexity,
		AccruedInterest:  accrued,
		CleanPrice:       in.CleanPrice,
		DirtyPrice:       dirty,
		PVBP:             modDur * dirty * 1e-4 * PVBPNotional / 100.0,
		CurrentYield:     m.CouponPct / in.CleanPrice * 100.0,
		Settlement:       in.Settlement,
		Validation:       m.Validation,
	}
	if yearsToMat > 0 {
		res.SimpleYield = (m.CouponPct + (100.0-in.CleanPrice)/yearsToMat) / in.CleanPrice * 100.0
	}

	if in.Curve != nil {
		if ref, ok := in.Curve.Rate(m.Currency, yearsToMat); ok {
			spread := (res.YTM - ref) * 100.0 // percent -> bp
			res.SpreadBP = &spread
		}
	}

	return res, nil
}
