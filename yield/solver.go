package yield

import (
	"context"
	"fmt"
	"math"

	"github.com/meenmo/bondlib/bond"
	"github.com/meenmo/bondlib/config"
)

// priceDerivs returns the dirty price and its first two derivatives with
// respect to the periodic yield y.
//
//	t_k   = t1 + k                       (coupon-period exponents)
//	P     = Σ CF_k (1+y)^-t_k
//	dP/dy = Σ -t_k CF_k (1+y)^-(t_k+1)
//	d²P/dy² = Σ t_k (t_k+1) CF_k (1+y)^-(t_k+2)
func priceDerivs(y, t1 float64, cfs []bond.Cashflow) (price, dp, d2p float64) {
	for k, cf := range cfs {
		t := t1 + float64(k)
		amt := cf.Amount()
		disc := math.Pow(1.0+y, t)
		price += amt / disc
		dp += -t * amt / math.Pow(1.0+y, t+1)
		d2p += t * (t + 1) * amt / math.Pow(1.0+y, t+2)
	}
	return price, dp, d2p
}

// solve finds the periodic yield y in [lo, hi] such that the discounted
// cashflow value equals target (the dirty price).
//
// Newton steps with the analytic derivative are taken while they stay inside
// the bracket and the derivative is well-conditioned; otherwise the step
// bisects. The bracket shrinks every iteration, so the iteration cap bounds
// worst-case latency. ctx is checked each iteration so a batch can cancel a
// pathological position.
func solve(ctx context.Context, cfs []bond.Cashflow, t1, target, lo, hi float64) (float64, int, error) {
	cfg := config.GetConfig()

	fLo, _, _ := priceDerivs(lo, t1, cfs)
	fHi, _, _ := priceDerivs(hi, t1, cfs)
	// Price is strictly decreasing in yield: a root requires
	// price(lo) >= target >= price(hi).
	if fLo-target < 0 || fHi-target > 0 {
		return 0, 0, fmt.Errorf("solve: no root in bracket [%.4f, %.4f]: %w", lo, hi, bond.ErrNonConvergence)
	}

	tol := cfg.ConvergenceTolerance * math.Max(1.0, math.Abs(target))
	y := (lo + hi) / 2

	for iter := 0; iter < cfg.MaxSolverIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return 0, iter, fmt.Errorf("solve: cancelled: %w", err)
		}

		price, dp, _ := priceDerivs(y, t1, cfs)
		f := price - target
		if math.Abs(f) < tol {
			return y, iter + 1, nil
		}

		if f > 0 {
			lo = y
		} else {
			hi = y
		}

		next := y - f/dp
		if math.Abs(dp) < cfg.DerivativeThreshold || next <= lo || next >= hi {
			next = (lo + hi) / 2
		}
		y = next
	}

	return y, cfg.MaxSolverIterations, fmt.Errorf("solve: no convergence after %d iterations: %w",
		cfg.MaxSolverIterations, bond.ErrNonConvergence)
}
