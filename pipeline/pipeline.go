// Package pipeline runs the per-bond calculation state machine:
//
//	Received -> Normalized -> Resolved -> Scheduled -> Calculated
//	         -> {Success | Failed | Matured}
//
// Failed and Matured are terminal, reportable outcomes, not escaping errors.
// Each run is a pure function of its request plus the engine's immutable
// reference snapshot, so concurrent runs need no synchronization.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/meenmo/bondlib/bond"
	"github.com/meenmo/bondlib/calendar"
	"github.com/meenmo/bondlib/curve"
	"github.com/meenmo/bondlib/normalize"
	"github.com/meenmo/bondlib/refdata"
	"github.com/meenmo/bondlib/resolve"
	"github.com/meenmo/bondlib/schedule"
	"github.com/meenmo/bondlib/yield"
)

// State tracks how far a request travelled through the pipeline.
type State string

const (
	StateReceived   State = "RECEIVED"
	StateNormalized State = "NORMALIZED"
	StateResolved   State = "RESOLVED"
	StateScheduled  State = "SCHEDULED"
	StateCalculated State = "CALCULATED"
	StateSuccess    State = "SUCCESS"
	StateFailed     State = "FAILED"
	StateMatured    State = "MATURED"
)

// Request identifies one bond calculation.
type Request struct {
	Input string
	Price float64

	// Settlement is optional; when nil it defaults to one business day after
	// AsOf on the resolved calendar.
	Settlement *time.Time

	// AsOf is the evaluation date; zero means today (UTC).
	AsOf time.Time
}

// Outcome is the terminal record for one request. Exactly one of Result and
// Failure is set for Success and Failed respectively; Matured carries neither
// beyond the model.
type Outcome struct {
	State   State
	Model   *bond.Model
	Result  *bond.CalculationResult
	Failure *bond.FailureRecord
}

// Engine wires the pipeline stages to a reference snapshot and optional
// collaborators.
type Engine struct {
	mu       sync.RWMutex
	resolver *resolve.Resolver
	curves   curve.Source
	cache    *Cache
	log      zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCurves attaches the reference curve source used for spread.
func WithCurves(src curve.Source) Option {
	return func(e *Engine) { e.curves = src }
}

// WithCache attaches a result cache. Without one the engine always computes.
func WithCache(c *Cache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// NewEngine builds an engine over the given reference stores. Either store
// may be nil.
func NewEngine(primary, secondary refdata.Store, opts ...Option) *Engine {
	e := &Engine{
		resolver: resolve.New(primary, secondary),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetSnapshot swaps the reference data between batches and purges the cache.
// This is the explicit reload boundary: a running batch keeps the resolver it
// started with.
func (e *Engine) SetSnapshot(primary, secondary refdata.Store) {
	e.mu.Lock()
	e.resolver = resolve.New(primary, secondary)
	e.mu.Unlock()
	e.cache.Purge()
}

// Evaluate runs one request to a terminal state. It never returns an error:
// failures are terminal outcomes carried in the return value.
func (e *Engine) Evaluate(ctx context.Context, req Request) Outcome {
	log := e.log.With().Str("input", req.Input).Logger()

	raw, err := normalize.Normalize(req.Input)
	if err != nil {
		log.Debug().Err(err).Msg("normalize failed")
		return failed(nil, err)
	}
	log.Debug().Str("kind", string(raw.Kind)).Msg("normalized")

	e.mu.RLock()
	resolver := e.resolver
	e.mu.RUnlock()

	model := resolver.Resolve(raw)
	log.Debug().
		Str("source", string(model.Validation.Source)).
		Str("confidence", string(model.Validation.Confidence)).
		Msg("resolved")

	settlement := e.settlementFor(req, model)
	key := cacheKey(raw, req.Price, settlement)
	if cached, ok := e.cache.Get(key); ok {
		log.Debug().Msg("cache hit")
		return cached
	}

	outcome := e.run(ctx, model, req.Price, settlement, log)
	if outcome.State == StateSuccess || outcome.State == StateMatured {
		e.cache.Put(key, outcome)
	}
	return outcome
}

func (e *Engine) run(ctx context.Context, model bond.Model, price float64, settlement time.Time, log zerolog.Logger) Outcome {
	sched, err := schedule.Generate(model, settlement)
	if err != nil {
		log.Debug().Err(err).Msg("schedule failed")
		return failed(&model, err)
	}
	if sched.Matured {
		log.Debug().Msg("bond matured")
		return Outcome{State: StateMatured, Model: &model}
	}

	result, err := yield.Calculate(ctx, yield.Input{
		Model:      model,
		Schedule:   sched,
		CleanPrice: price,
		Settlement: settlement,
		Curve:      e.curves,
	})
	if err != nil {
		log.Debug().Err(err).Msg("calculation failed")
		return failed(&model, err)
	}

	log.Debug().
		Float64("ytm", result.YTM).
		Float64("mod_duration", result.ModifiedDuration).
		Msg("calculated")
	return Outcome{State: StateSuccess, Model: &model, Result: &result}
}

func (e *Engine) settlementFor(req Request, model bond.Model) time.Time {
	if req.Settlement != nil {
		return *req.Settlement
	}
	asOf := req.AsOf
	if asOf.IsZero() {
		now := time.Now().UTC()
		asOf = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	return calendar.AddBusinessDays(model.Conventions.Calendar, asOf, 1)
}

func failed(model *bond.Model, err error) Outcome {
	rec := bond.ClassifyFailure(err)
	return Outcome{State: StateFailed, Model: model, Failure: &rec}
}

func cacheKey(raw bond.RawInput, price float64, settlement time.Time) string {
	canon := raw.ISIN
	if canon == "" {
		canon = strings.ToUpper(strings.Join(strings.Fields(raw.Original), " "))
	}
	return fmt.Sprintf("%s|%.6f|%s", canon, price, settlement.Format("2006-01-02"))
}
