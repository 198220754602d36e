// Package resolve turns normalized input into a fully specified bond model.
//
// Resolution is an ordered list of strategies tried until the first success:
// primary store, secondary store, description parse, identifier heuristic,
// generic default. The final tier is total, so Resolve always produces a
// model; callers judge trust through the attached ValidationRecord.
package resolve

import (
	"github.com/meenmo/bondlib/bond"
	"github.com/meenmo/bondlib/refdata"
)

// Strategy is one resolution tier.
type Strategy interface {
	Source() bond.Source
	Resolve(raw bond.RawInput) (bond.Model, bool)
}

// Resolver iterates its strategies in declaration order.
type Resolver struct {
	strategies []Strategy
}

// New builds the standard five-tier resolver. Either store may be nil, in
// which case its tier never matches.
func New(primary, secondary refdata.Store) *Resolver {
	return &Resolver{strategies: []Strategy{
		storeLookup{store: primary, source: bond.SourcePrimaryStore, confidence: bond.ConfidenceHigh},
		storeLookup{store: secondary, source: bond.SourceSecondaryStore, confidence: bond.ConfidenceMedium},
		descriptionParse{},
		identifierHeuristic{},
		defaultStrategy{},
	}}
}

// Resolve never fails: the default tier always matches. The returned model's
// validation record names the tier that produced it.
func (r *Resolver) Resolve(raw bond.RawInput) bond.Model {
	for _, s := range r.strategies {
		if m, ok := s.Resolve(raw); ok {
			return m
		}
	}
	// Unreachable: defaultStrategy is total.
	m, _ := defaultStrategy{}.Resolve(raw)
	return m
}

type storeLookup struct {
	store      refdata.Store
	source     bond.Source
	confidence bond.Confidence
}

func (s storeLookup) Source() bond.Source { return s.source }

func (s storeLookup) Resolve(raw bond.RawInput) (bond.Model, bool) {
	if s.store == nil || raw.Kind != bond.KindIdentifier {
		return bond.Model{}, false
	}
	ref, ok := s.store.Lookup(raw.ISIN)
	if !ok {
		return bond.Model{}, false
	}
	return bond.Model{
		Issuer:      ref.Issuer,
		Ticker:      ref.Ticker,
		Currency:    ref.Currency,
		CouponPct:   ref.CouponPct,
		Maturity:    ref.Maturity,
		IssueDate:   ref.IssueDate,
		Conventions: ref.Conventions,
		Validation: bond.ValidationRecord{
			Status:          bond.StatusValidated,
			Confidence:      s.confidence,
			Source:          s.source,
			ValidatedFields: []string{"issuer", "coupon", "maturity", "conventions"},
		},
	}, true
}

type descriptionParse struct{}

func (descriptionParse) Source() bond.Source { return bond.SourceDescriptionParse }

// Resolve succeeds only when the normalizer extracted issuer, coupon, and
// maturity. Conventions come from issuer-class heuristics: known sovereign
// tickers get their market's conventions, everything else the corporate
// default.
func (descriptionParse) Resolve(raw bond.RawInput) (bond.Model, bool) {
	t := raw.Tokens
	if raw.Kind != bond.KindDescription || t.Ticker == "" || t.CouponPct == nil || t.Maturity == nil {
		return bond.Model{}, false
	}

	p, sovereign := sovereignProfiles[t.Ticker]
	if !sovereign {
		p = corporateProfile(t.Ticker)
	}

	return bond.Model{
		Issuer:      p.issuer,
		Ticker:      t.Ticker,
		Currency:    p.currency,
		CouponPct:   *t.CouponPct,
		Maturity:    *t.Maturity,
		Conventions: p.conventions,
		Validation: bond.ValidationRecord{
			Status:          bond.StatusParsed,
			Confidence:      bond.ConfidenceMedium,
			Source:          bond.SourceDescriptionParse,
			ValidatedFields: []string{"coupon", "maturity"},
			EstimatedFields: []string{"issuer", "conventions"},
		},
	}, true
}

type identifierHeuristic struct{}

func (identifierHeuristic) Source() bond.Source { return bond.SourceIdentifierHeuristic }

// Resolve infers a country/sector default convention set from the ISIN
// prefix when an identifier missed both stores. Coupon and maturity stay
// unknown; downstream stages will report the schedule as uncomputable.
func (identifierHeuristic) Resolve(raw bond.RawInput) (bond.Model, bool) {
	if raw.Kind != bond.KindIdentifier || len(raw.ISIN) < 2 {
		return bond.Model{}, false
	}
	p, ok := prefixProfiles[raw.ISIN[:2]]
	if !ok {
		return bond.Model{}, false
	}
	return bond.Model{
		Issuer:      p.issuer,
		Currency:    p.currency,
		Conventions: p.conventions,
		Validation: bond.ValidationRecord{
			Status:          bond.StatusEstimated,
			Confidence:      bond.ConfidenceLow,
			Source:          bond.SourceIdentifierHeuristic,
			EstimatedFields: []string{"issuer", "conventions"},
		},
	}, true
}

type defaultStrategy struct{}

func (defaultStrategy) Source() bond.Source { return bond.SourceDefault }

// Resolve is total: it applies the fixed 30/360 semiannual fallback and keeps
// whatever tokens the normalizer did extract.
func (defaultStrategy) Resolve(raw bond.RawInput) (bond.Model, bool) {
	m := bond.Model{
		Ticker:      raw.Tokens.Ticker,
		Issuer:      raw.Tokens.Ticker,
		Currency:    "USD",
		Conventions: bond.DefaultConventions(),
		Validation: bond.ValidationRecord{
			Status:          bond.StatusUnknown,
			Confidence:      bond.ConfidenceLow,
			Source:          bond.SourceDefault,
			EstimatedFields: []string{"issuer", "coupon", "maturity", "conventions"},
		},
	}
	if raw.Tokens.CouponPct != nil {
		m.CouponPct = *raw.Tokens.CouponPct
	}
	if raw.Tokens.Maturity != nil {
		m.Maturity = *raw.Tokens.Maturity
	}
	return m, true
}
