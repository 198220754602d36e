package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/meenmo/bondlib/bond"
)

var (
	tickerPattern   = regexp.MustCompile(`^[A-Za-z]{1,6}$`)
	couponPattern   = regexp.MustCompile(`^(\d{1,2}(?:\.\d+)?)%?$`)
	fractionPattern = regexp.MustCompile(`^(\d)/(\d{1,2})$`)
	datePattern     = regexp.MustCompile(`^(\d{1,4})[./-](\d{1,2})[./-](\d{1,4})$`)
)

// tokenize pulls an issuer ticker, a coupon percentage, and a maturity date
// out of a description like "T 3 15/08/52" or "AAPL 4.65 02/23/2046".
//
// Coupons written as vulgar fractions ("T 3 1/2 08/15/52") are folded into the
// preceding whole number, Bloomberg-ticket style.
func tokenize(text string) bond.Tokens {
	var tokens bond.Tokens

	for _, field := range strings.Fields(text) {
		switch {
		case tokens.Ticker == "" && tickerPattern.MatchString(field):
			tokens.Ticker = strings.ToUpper(field)

		case tokens.Maturity == nil && datePattern.MatchString(field):
			if d, ok := parseMaturity(field); ok {
				tokens.Maturity = &d
			}

		case tokens.CouponPct != nil && fractionPattern.MatchString(field):
			if add, ok := parseFraction(field); ok {
				v := *tokens.CouponPct + add
				tokens.CouponPct = &v
			}

		case tokens.CouponPct == nil && couponPattern.MatchString(field):
			m := couponPattern.FindStringSubmatch(field)
			if v, err := strconv.ParseFloat(m[1], 64); err == nil && v < 30 {
				tokens.CouponPct = &v
			}
		}
	}
	return tokens
}

func parseFraction(field string) (float64, bool) {
	m := fractionPattern.FindStringSubmatch(field)
	if m == nil {
		return 0, false
	}
	num, _ := strconv.Atoi(m[1])
	den, _ := strconv.Atoi(m[2])
	if den == 0 || num >= den {
		return 0, false
	}
	return float64(num) / float64(den), true
}

// parseMaturity accepts ISO (2052-08-15), US (08/15/52), and day-first
// (15/08/52) numeric layouts. When both leading parts could be a month, the
// US month-first reading wins.
func parseMaturity(field string) (time.Time, bool) {
	m := datePattern.FindStringSubmatch(field)
	if m == nil {
		return time.Time{}, false
	}
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	c, _ := strconv.Atoi(m[3])

	// ISO: year leads.
	if len(m[1]) == 4 {
		return makeDate(a, b, c)
	}

	year := expandYear(c)
	switch {
	case a > 12 && b <= 12:
		return makeDate(year, b, a) // day-first
	case b > 12 && a <= 12:
		return makeDate(year, a, b) // month-first
	case a <= 12 && b <= 12:
		return makeDate(year, a, b) // ambiguous: month-first
	default:
		return time.Time{}, false
	}
}

func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1900 || year > 2200 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day {
		return time.Time{}, false // e.g. Feb 30 normalized away
	}
	return d, true
}

// expandYear maps two-digit years with a pivot of 80: 52 -> 2052, 95 -> 1995.
// Bonds overwhelmingly mature in the future.
func expandYear(y int) int {
	if y >= 100 {
		return y
	}
	if y < 80 {
		return 2000 + y
	}
	return 1900 + y
}
