// Package curve supplies the reference curve collaborator used for spread
// calculation. A curve is a static set of (tenor, rate) points per currency;
// interpolation is linear in tenor, flat beyond the quoted range.
package curve

import (
	"fmt"
	"sort"
)

// Source answers rate queries for a currency and tenor. An unavailable rate
// is signalled with ok=false, never an error: spread is optional everywhere.
type Source interface {
	Rate(currency string, tenorYears float64) (float64, bool)
}

// Point is a single quoted tenor on a curve. Rate is annualised percent.
type Point struct {
	TenorYears float64
	Rate       float64
}

// Curve is a sorted, immutable set of points for one currency.
type Curve struct {
	currency string
	points   []Point
}

// New builds a curve from quotes keyed by tenor string ("3M", "10Y").
func New(currency string, quotes map[string]float64) (*Curve, error) {
	if len(quotes) == 0 {
		return nil, fmt.Errorf("curve.New: no quotes for %s", currency)
	}
	points := make([]Point, 0, len(quotes))
	for tenor, rate := range quotes {
		years := tenorToYears(tenor)
		if years <= 0 {
			return nil, fmt.Errorf("curve.New: bad tenor %q", tenor)
		}
		points = append(points, Point{TenorYears: years, Rate: rate})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].TenorYears < points[j].TenorYears })
	return &Curve{currency: currency, points: points}, nil
}

func (c *Curve) Currency() string { return c.currency }

// Rate interpolates linearly between the two quoted tenors bracketing the
// target, extrapolating flat past either end.
func (c *Curve) Rate(currency string, tenorYears float64) (float64, bool) {
	if c == nil || currency != c.currency || len(c.points) == 0 {
		return 0, false
	}
	pts := c.points
	if tenorYears <= pts[0].TenorYears {
		return pts[0].Rate, true
	}
	if tenorYears >= pts[len(pts)-1].TenorYears {
		return pts[len(pts)-1].Rate, true
	}
	i := sort.Search(len(pts), func(i int) bool { return pts[i].TenorYears >= tenorYears })
	lo, hi := pts[i-1], pts[i]
	w := (tenorYears - lo.TenorYears) / (hi.TenorYears - lo.TenorYears)
	return lo.Rate + w*(hi.Rate-lo.Rate), true
}

// Set is a Source over several single-currency curves.
type Set map[string]*Curve

func (s Set) Rate(currency string, tenorYears float64) (float64, bool) {
	c, ok := s[currency]
	if !ok {
		return 0, false
	}
	return c.Rate(currency, tenorYears)
}
