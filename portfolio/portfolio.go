// Package portfolio fans independent per-bond pipelines out over a worker
// pool and folds the terminal outcomes into weight-normalized portfolio
// metrics with a data-quality summary.
package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/meenmo/bondlib/bond"
	"github.com/meenmo/bondlib/config"
	"github.com/meenmo/bondlib/pipeline"
)

// Position is one portfolio line: an identifier or description, a clean
// price, and a weight. Zero weights across the whole portfolio mean equal
// weighting.
type Position struct {
	Input      string
	Price      float64
	Weight     float64
	Settlement *time.Time
}

// PositionResult pairs a position with its terminal pipeline outcome.
type PositionResult struct {
	Position Position
	Outcome  pipeline.Outcome
}

// Summary is the data-quality distribution across a batch.
type Summary struct {
	ByStatus     map[bond.ValidationStatus]int
	ByConfidence map[bond.Confidence]int
	BySource     map[bond.Source]int
	Failures     map[bond.FailureKind]int
	Matured      int
}

// Result is the batch-level aggregate. Per-position failures ride along in
// Positions; they reduce SuccessRate but never abort the batch.
type Result struct {
	BatchID   string
	Positions []PositionResult

	PortfolioYield    float64
	PortfolioDuration float64
	PortfolioSpreadBP *float64

	SuccessRate float64
	DataQuality Summary
}

// Evaluator runs one request to a terminal outcome. *pipeline.Engine
// satisfies it; tests substitute stubs.
type Evaluator interface {
	Evaluate(ctx context.Context, req pipeline.Request) pipeline.Outcome
}

// Aggregate evaluates every position concurrently, waits for all of them to
// reach a terminal state, and computes the weighted aggregates over the
// successful ones (weights renormalized to sum to 1 across successes).
func Aggregate(ctx context.Context, ev Evaluator, positions []Position) (Result, error) {
	if len(positions) == 0 {
		return Result{}, fmt.Errorf("Aggregate: no positions")
	}

	batchID := uuid.NewString()
	outcomes := make([]pipeline.Outcome, len(positions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.GetConfig().Workers)
	for i, pos := range positions {
		i, pos := i, pos
		g.Go(func() error {
			outcomes[i] = ev.Evaluate(gctx, pipeline.Request{
				Input:      pos.Input,
				Price:      pos.Price,
				Settlement: pos.Settlement,
			})
			return nil
		})
	}
	// Evaluators never return errors; the join point only waits.
	_ = g.Wait()

	res := combine(batchID, positions, outcomes)

	log.Info().
		Str("batch_id", batchID).
		Int("positions", len(positions)).
		Float64("success_rate", res.SuccessRate).
		Float64("portfolio_yield", res.PortfolioYield).
		Msg("portfolio aggregated")
	return res, nil
}

// combine folds terminal outcomes into the batch result. Split from Aggregate
// so the weighting arithmetic is testable without an engine.
func combine(batchID string, positions []Position, outcomes []pipeline.Outcome) Result {
	res := Result{
		BatchID: batchID,
		DataQuality: Summary{
			ByStatus:     make(map[bond.ValidationStatus]int),
			ByConfidence: make(map[bond.Confidence]int),
			BySource:     make(map[bond.Source]int),
			Failures:     make(map[bond.FailureKind]int),
		},
	}

	equalWeights := true
	for _, p := range positions {
		if p.Weight != 0 {
			equalWeights = false
			break
		}
	}

	var sumW, wYield, wDur float64
	var sumWSpread, wSpread float64
	successes := 0

	for i, o := range outcomes {
		res.Positions = append(res.Positions, PositionResult{Position: positions[i], Outcome: o})

		if o.Model != nil {
			v := o.Model.Validation
			res.DataQuality.ByStatus[v.Status]++
			res.DataQuality.ByConfidence[v.Confidence]++
			res.DataQuality.BySource[v.Source]++
		}

		switch o.State {
		case pipeline.StateMatured:
			res.DataQuality.Matured++
		case pipeline.StateFailed:
			if o.Failure != nil {
				res.DataQuality.Failures[o.Failure.Kind]++
			}
		case pipeline.StateSuccess:
			successes++
			w := positions[i].Weight
			if equalWeights {
				w = 1
			}
			sumW += w
			wYield += w * o.Result.YTM
			wDur += w * o.Result.ModifiedDuration
			if o.Result.SpreadBP != nil {
				sumWSpread += w
				wSpread += w * *o.Result.SpreadBP
			}
		}
	}

	res.SuccessRate = float64(successes) / float64(len(positions))
	if sumW > 0 {
		res.PortfolioYield = wYield / sumW
		res.PortfolioDuration = wDur / sumW
	}
	if sumWSpread > 0 {
		spread := wSpread / sumWSpread
		res.PortfolioSpreadBP = &spread
	}
	return res
}
