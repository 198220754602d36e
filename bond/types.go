package bond

import "time"

// Cashflow is a single dated cash payment for a bond.
//
// Amounts are per 100 face value. The final cashflow of a schedule carries the
// principal redemption.
type Cashflow struct {
	Date      time.Time
	Coupon    float64
	Principal float64
}

func (c Cashflow) Amount() float64 {
	return c.Coupon + c.Principal
}

// CalculationResult is an immutable snapshot of the analytics for one
// (model, price, settlement) triple.
//
// Yields are annualised percent in the bond's native compounding basis; the
// *Annual fields restate them with annual compounding. Prices and accrued are
// per 100 face.
type CalculationResult struct {
	YTM       float64
	YTMAnnual float64

	ModifiedDuration float64
	DurationAnnual   float64
	MacaulayDuration float64
	Convexity        float64

	AccruedInterest float64
	CleanPrice      float64
	DirtyPrice      float64

	// PVBP is the price change for a one-basis-point yield shift, in currency
	// units per 1,000,000 face value.
	PVBP float64

	CurrentYield float64
	SimpleYield  float64

	// SpreadBP is the yield pickup over the reference curve in basis points.
	// Nil when no curve is available; that is not an error.
	SpreadBP *float64

	Settlement time.Time
	Validation ValidationRecord
}
