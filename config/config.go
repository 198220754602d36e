package config

import "time"

// Config holds solver and engine parameters.
type Config struct {
	// ConvergenceTolerance is the relative price tolerance for yield solver
	// convergence.
	ConvergenceTolerance float64

	// MaxSolverIterations caps the Newton/bisection loop so a pathological
	// input cannot stall a batch.
	MaxSolverIterations int

	// BracketLow/BracketHigh bound the periodic yield on the first solve
	// attempt.
	BracketLow  float64
	BracketHigh float64

	// WideBracketLow/WideBracketHigh are used for the single retry after a
	// non-convergence.
	WideBracketLow  float64
	WideBracketHigh float64

	// DerivativeThreshold is the minimum derivative magnitude for a Newton
	// step; below it the solver bisects instead.
	DerivativeThreshold float64

	// MaxPaymentDates is the maximum number of coupon periods to generate.
	// 600 supports up to 50Y with monthly frequency.
	MaxPaymentDates int

	// CacheCapacity and CacheTTL size the in-process result cache.
	CacheCapacity int
	CacheTTL      time.Duration

	// Workers bounds portfolio fan-out concurrency.
	Workers int
}

// DefaultConfig provides production-ready default values.
var DefaultConfig = Config{
	ConvergenceTolerance: 1e-9,
	MaxSolverIterations:  100,
	BracketLow:           -0.05,
	BracketHigh:          0.50,
	WideBracketLow:       -0.20,
	WideBracketHigh:      2.00,
	DerivativeThreshold:  1e-15,
	MaxPaymentDates:      600,
	CacheCapacity:        4096,
	CacheTTL:             15 * time.Minute,
	Workers:              8,
}

// cfg is the active configuration. Defaults to DefaultConfig.
var cfg = DefaultConfig

// SetConfig replaces the active configuration.
func SetConfig(c Config) {
	cfg = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	return cfg
}
