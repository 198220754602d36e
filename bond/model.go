package bond

import "time"

// InputKind classifies what the normalizer made of the raw text.
type InputKind string

const (
	KindIdentifier   InputKind = "IDENTIFIER"
	KindDescription  InputKind = "DESCRIPTION"
	KindUnrecognized InputKind = "UNRECOGNIZED"
)

// Tokens are the fragments extracted from a free-text description.
// Any of them may be missing; partial extraction is allowed and flows to the
// resolver as-is.
type Tokens struct {
	Ticker    string
	CouponPct *float64
	Maturity  *time.Time
}

// RawInput is the normalizer's immutable output, consumed once by the resolver.
type RawInput struct {
	Original string
	Kind     InputKind
	ISIN     string
	Tokens   Tokens
}

// ValidationStatus describes how the bond's identity was established.
type ValidationStatus string

const (
	StatusValidated ValidationStatus = "VALIDATED"
	StatusParsed    ValidationStatus = "PARSED"
	StatusEstimated ValidationStatus = "ESTIMATED"
	StatusUnknown   ValidationStatus = "UNKNOWN"
)

// Confidence grades how much a downstream consumer should trust the numbers.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Source names the resolution tier that produced the model.
type Source string

const (
	SourcePrimaryStore        Source = "PRIMARY_STORE"
	SourceSecondaryStore      Source = "SECONDARY_STORE"
	SourceDescriptionParse    Source = "DESCRIPTION_PARSE"
	SourceIdentifierHeuristic Source = "IDENTIFIER_HEURISTIC"
	SourceDefault             Source = "DEFAULT"
)

// ValidationRecord travels with every model and result so that callers can
// judge trust. Confidence is monotonically non-increasing as resolution tiers
// are exhausted: the resolver never upgrades a record.
type ValidationRecord struct {
	Status          ValidationStatus
	Confidence      Confidence
	Source          Source
	ValidatedFields []string
	EstimatedFields []string
}

// Model is a fully specified bond: identity, economics, and conventions.
//
// A Model is owned by exactly one calculation request and is never mutated
// after the resolver returns it.
type Model struct {
	Issuer      string
	Ticker      string
	Currency    string
	CouponPct   float64
	Maturity    time.Time
	IssueDate   *time.Time
	Conventions ConventionSet
	Validation  ValidationRecord
}
