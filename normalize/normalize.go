// Package normalize classifies raw bond input as an identifier or a free-text
// description and extracts the tokens the resolver works from.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/meenmo/bondlib/bond"
)

var isinPattern = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// Normalize classifies text and extracts candidate tokens.
//
// It fails with bond.ErrInputUnrecognized only when the input is empty or
// contains no extractable token of any kind. Partial extraction (say, a ticker
// with no maturity) is not an error; the resolver decides what to do with it.
func Normalize(text string) (bond.RawInput, error) {
	raw := bond.RawInput{Original: text, Kind: bond.KindUnrecognized}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return raw, fmt.Errorf("Normalize: empty input: %w", bond.ErrInputUnrecognized)
	}

	candidate := strings.ToUpper(trimmed)
	if isinPattern.MatchString(candidate) && ValidISIN(candidate) {
		raw.Kind = bond.KindIdentifier
		raw.ISIN = candidate
		return raw, nil
	}

	tokens := tokenize(trimmed)
	if tokens.Ticker == "" && tokens.CouponPct == nil && tokens.Maturity == nil {
		return raw, fmt.Errorf("Normalize: no extractable tokens in %q: %w", trimmed, bond.ErrInputUnrecognized)
	}

	raw.Kind = bond.KindDescription
	raw.Tokens = tokens
	return raw, nil
}

// ValidISIN verifies the ISIN check digit (Luhn over the letter-expanded
// digit string).
func ValidISIN(isin string) bool {
	if !isinPattern.MatchString(isin) {
		return false
	}

	var digits []int
	for _, r := range isin {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, int(r-'0'))
		case r >= 'A' && r <= 'Z':
			v := int(r-'A') + 10
			digits = append(digits, v/10, v%10)
		default:
			return false
		}
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i]
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
