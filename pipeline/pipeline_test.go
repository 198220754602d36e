package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/bondlib/bond"
	"github.com/meenmo/bondlib/calendar"
	"github.com/meenmo/bondlib/pipeline"
	"github.com/meenmo/bondlib/refdata"
)

func settlementOf(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestEvaluate_DescriptionEndToEnd(t *testing.T) {
	t.Parallel()

	engine := pipeline.NewEngine(nil, nil)
	out := engine.Evaluate(context.Background(), pipeline.Request{
		Input:      "T 3 15/08/52",
		Price:      71.66,
		Settlement: settlementOf(2025, time.June, 30),
	})

	require.Equal(t, pipeline.StateSuccess, out.State)
	require.NotNil(t, out.Result)
	assert.InDelta(t, 4.90, out.Result.YTM, 0.1)
	assert.InDelta(t, 16.3, out.Result.ModifiedDuration, 0.1)
	assert.Equal(t, bond.SourceDescriptionParse, out.Result.Validation.Source)
	assert.Nil(t, out.Result.SpreadBP)
}

func TestEvaluate_PrimaryStoreValidated(t *testing.T) {
	t.Parallel()

	snap := refdata.NewSnapshot("primary", time.Now(), []refdata.Reference{{
		ISIN:      "US912810RN00",
		Issuer:    "US Treasury",
		Ticker:    "T",
		Currency:  "USD",
		CouponPct: 3,
		Maturity:  time.Date(2052, 8, 15, 0, 0, 0, 0, time.UTC),
		Conventions: bond.ConventionSet{
			DayCount: bond.DCActAct, Frequency: bond.Semiannual,
			BusinessDayRule: calendar.Following, Calendar: calendar.US,
		},
	}})

	engine := pipeline.NewEngine(snap, nil)
	out := engine.Evaluate(context.Background(), pipeline.Request{
		Input:      "US912810RN00",
		Price:      71.66,
		Settlement: settlementOf(2025, time.June, 30),
	})

	require.Equal(t, pipeline.StateSuccess, out.State)
	assert.Equal(t, bond.StatusValidated, out.Result.Validation.Status)
	assert.Equal(t, bond.ConfidenceHigh, out.Result.Validation.Confidence)
}

func TestEvaluate_MaturedIsTerminalNotError(t *testing.T) {
	t.Parallel()

	engine := pipeline.NewEngine(nil, nil)
	out := engine.Evaluate(context.Background(), pipeline.Request{
		Input:      "T 4 15/05/20",
		Price:      100,
		Settlement: settlementOf(2025, time.June, 30),
	})

	assert.Equal(t, pipeline.StateMatured, out.State)
	assert.Nil(t, out.Result)
	assert.Nil(t, out.Failure)
}

func TestEvaluate_BlankInput(t *testing.T) {
	t.Parallel()

	engine := pipeline.NewEngine(nil, nil)
	out := engine.Evaluate(context.Background(), pipeline.Request{Input: "   ", Price: 100})

	require.Equal(t, pipeline.StateFailed, out.State)
	require.NotNil(t, out.Failure)
	assert.Equal(t, bond.FailInputUnrecognized, out.Failure.Kind)
}

func TestEvaluate_UnresolvableEconomicsFailSchedule(t *testing.T) {
	t.Parallel()

	// Valid identifier missing from both stores: conventions resolve via the
	// prefix heuristic but coupon/maturity stay unknown, so the schedule is
	// uncomputable.
	engine := pipeline.NewEngine(nil, nil)
	out := engine.Evaluate(context.Background(), pipeline.Request{
		Input:      "US91282CJK80",
		Price:      99.5,
		Settlement: settlementOf(2025, time.June, 30),
	})

	require.Equal(t, pipeline.StateFailed, out.State)
	assert.Equal(t, bond.FailSchedule, out.Failure.Kind)
	require.NotNil(t, out.Model)
	assert.Equal(t, bond.SourceIdentifierHeuristic, out.Model.Validation.Source)
}

func TestEvaluate_CacheReturnsIdenticalOutcome(t *testing.T) {
	t.Parallel()

	cached := pipeline.NewEngine(nil, nil, pipeline.WithCache(pipeline.NewCache(16, time.Minute)))
	cold := pipeline.NewEngine(nil, nil)

	req := pipeline.Request{
		Input:      "T 3 15/08/52",
		Price:      71.66,
		Settlement: settlementOf(2025, time.June, 30),
	}

	first := cached.Evaluate(context.Background(), req)
	second := cached.Evaluate(context.Background(), req)
	reference := cold.Evaluate(context.Background(), req)

	require.Equal(t, pipeline.StateSuccess, first.State)
	assert.Equal(t, first.Result, second.Result, "cache hit must be byte-identical")
	assert.InDelta(t, reference.Result.YTM, second.Result.YTM, 0,
		"cache must never change observable results")
}

func TestSetSnapshotIsAReloadBoundary(t *testing.T) {
	t.Parallel()

	engine := pipeline.NewEngine(nil, nil, pipeline.WithCache(pipeline.NewCache(16, time.Minute)))
	req := pipeline.Request{
		Input:      "US912810RN00",
		Price:      71.66,
		Settlement: settlementOf(2025, time.June, 30),
	}

	// Without reference data the identifier fails on schedule generation.
	before := engine.Evaluate(context.Background(), req)
	require.Equal(t, pipeline.StateFailed, before.State)

	snap := refdata.NewSnapshot("primary", time.Now(), []refdata.Reference{{
		ISIN:      "US912810RN00",
		Issuer:    "US Treasury",
		Ticker:    "T",
		Currency:  "USD",
		CouponPct: 3,
		Maturity:  time.Date(2052, 8, 15, 0, 0, 0, 0, time.UTC),
		Conventions: bond.ConventionSet{
			DayCount: bond.DCActAct, Frequency: bond.Semiannual,
			BusinessDayRule: calendar.Following, Calendar: calendar.US,
		},
	}})
	engine.SetSnapshot(snap, nil)

	after := engine.Evaluate(context.Background(), req)
	require.Equal(t, pipeline.StateSuccess, after.State)
	assert.Equal(t, bond.ConfidenceHigh, after.Result.Validation.Confidence)
}

func TestCacheEvictionAndStats(t *testing.T) {
	t.Parallel()

	c := pipeline.NewCache(2, time.Minute)
	o := pipeline.Outcome{State: pipeline.StateSuccess}

	c.Put("a", o)
	c.Put("b", o)
	c.Put("c", o) // evicts one entry

	hits := 0
	for _, k := range []string{"a", "b", "c"} {
		if _, ok := c.Get(k); ok {
			hits++
		}
	}
	assert.Equal(t, 2, hits)

	stats := c.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Evictions)
}
