package signals_test

import (
	"errors"
	"testing"

	"github.com/specialistvlad/signalgrid/internal/dag"
	"github.com/specialistvlad/signalgrid/internal/evaluator"
	"github.com/specialistvlad/signalgrid/internal/graph"
	"github.com/specialistvlad/signalgrid/internal/nodeid"
	"github.com/specialistvlad/signalgrid/internal/signals"
	"github.com/specialistvlad/signalgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func build(t *testing.T, b *testutil.StrategyBuilder) *graph.Graph {
	t.Helper()
	ctx, _ := testutil.Context(t)
	g, err := graph.Build(ctx, b.Build())
	require.NoError(t, err)
	return g
}

func crossover() *testutil.StrategyBuilder {
	return testutil.NewStrategy().
		Price("close", "close").
		Indicator("fast", "sma", map[string]float64{"period": 20}).
		Indicator("slow", "sma", map[string]float64{"period": 50}).
		Compare("golden", ">").
		Compare("death", "<").
		Entry("buy", "BUY").
		Exit("sell").
		Edge("close.value", "fast.source").
		Edge("close.value", "slow.source").
		Edge("fast.value", "golden.left").
		Edge("slow.value", "golden.right").
		Edge("fast.value", "death.left").
		Edge("slow.value", "death.right").
		Edge("golden.true", "buy.trigger").
		Edge("death.true", "sell.trigger")
}

func entryDirections(res *signals.Result) []int {
	out := make([]int, res.Len())
	for i, r := range res.Rows {
		out[i] = r.EntryDirection
	}
	return out
}

func TestCompile_Crossover(t *testing.T) {
	ctx, _ := testutil.Context(t)
	closes := testutil.RiseThenFall(100, 80, 80)
	table := testutil.TableFromCloses(t, closes...)
	g := build(t, crossover())

	res, err := signals.Compile(ctx, g, table)
	require.NoError(t, err)
	require.Equal(t, len(closes), res.Len())

	firstEntry, firstExit := -1, -1
	for i, r := range res.Rows {
		if r.EntrySignal && firstEntry < 0 {
			firstEntry = i
		}
		if r.ExitSignal && firstExit < 0 {
			firstExit = i
		}
		assert.False(t, r.EntrySignal && r.ExitSignal, "row %d", i)
		assert.Equal(t, closes[i], r.Bar.Close)
		assert.Equal(t, table.Time(i), r.Time)
	}

	// sma(50) is warm from row 49; on a rising series sma(20) is above it
	// from the first row both are defined.
	assert.Equal(t, 49, firstEntry)
	for i := 0; i < 49; i++ {
		assert.False(t, res.Rows[i].EntrySignal, "row %d", i)
		assert.False(t, res.Rows[i].ExitSignal, "row %d", i)
	}
	for i := 49; i <= 80; i++ {
		assert.True(t, res.Rows[i].EntrySignal, "row %d", i)
		assert.Equal(t, signals.Long, res.Rows[i].EntryDirection)
		assert.Equal(t, 1.0, res.Rows[i].EntrySize)
	}
	assert.Greater(t, firstExit, 80)
	assert.True(t, res.Rows[len(closes)-1].ExitSignal)
}

func TestCompile_IsDeterministic(t *testing.T) {
	ctx, _ := testutil.Context(t)
	table := testutil.TableFromCloses(t, testutil.RiseThenFall(10, 60, 60)...)
	g := build(t, crossover())

	first, err := signals.Compile(ctx, g, table)
	require.NoError(t, err)
	second, err := signals.Compile(ctx, g, table)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompile_ShortOverridesLong(t *testing.T) {
	ctx, _ := testutil.Context(t)
	table := testutil.TableFromCloses(t, 1, 2, 3, 4)
	g := build(t, testutil.NewStrategy().
		Price("close", "close").
		Node("comparison", "always", map[string]cty.Value{"operator": cty.StringVal(">"), "right": cty.NumberIntVal(0)}).
		Node("comparison", "high", map[string]cty.Value{"operator": cty.StringVal(">"), "right": cty.NumberIntVal(2)}).
		Node("action", "long", map[string]cty.Value{
			"actionType": cty.StringVal("marketEntry"),
			"side":       cty.StringVal("BUY"),
			"size":       cty.NumberIntVal(3),
		}).
		Node("action", "short", map[string]cty.Value{
			"actionType": cty.StringVal("marketEntry"),
			"side":       cty.StringVal("SELL"),
			"size":       cty.NumberIntVal(5),
		}).
		Edge("close.value", "always.left").
		Edge("close.value", "high.left").
		Edge("always.true", "long.trigger").
		Edge("high.true", "short.trigger"))

	res, err := signals.Compile(ctx, g, table)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 1, -1, -1}, entryDirections(res))
	for i, r := range res.Rows {
		assert.True(t, r.EntrySignal, "row %d", i)
		assert.False(t, r.ExitSignal, "row %d", i)
	}
	assert.Equal(t, 3.0, res.Rows[0].EntrySize)
	assert.Equal(t, 5.0, res.Rows[3].EntrySize)
}

func TestCompile_UnconnectedTriggersNeverFire(t *testing.T) {
	ctx, _ := testutil.Context(t)
	table := testutil.TableFromCloses(t, 1, 2, 3)
	g := build(t, testutil.NewStrategy().Entry("buy", "SELL").Exit("close"))

	res, err := signals.Compile(ctx, g, table)
	require.NoError(t, err)

	entries, exits := res.Counts()
	assert.Zero(t, entries)
	assert.Zero(t, exits)
	assert.Equal(t, []int{1, 1, 1}, entryDirections(res))
	assert.Zero(t, res.Rows[0].EntrySize)
}

func TestCompile_AnyExitFires(t *testing.T) {
	ctx, _ := testutil.Context(t)
	table := testutil.TableFromCloses(t, 1, 2, 3)
	g := build(t, testutil.NewStrategy().
		Price("close", "close").
		Node("comparison", "low", map[string]cty.Value{"operator": cty.StringVal("<"), "right": cty.NumberIntVal(2)}).
		Node("comparison", "high", map[string]cty.Value{"operator": cty.StringVal(">"), "right": cty.NumberIntVal(2)}).
		Exit("x1").
		Exit("x2").
		Edge("close.value", "low.left").
		Edge("close.value", "high.left").
		Edge("low.true", "x1.trigger").
		Edge("high.true", "x2.trigger"))

	res, err := signals.Compile(ctx, g, table)
	require.NoError(t, err)

	assert.True(t, res.Rows[0].ExitSignal)
	assert.False(t, res.Rows[1].ExitSignal)
	assert.True(t, res.Rows[2].ExitSignal)
}

func TestCompile_SharedNodesEvaluatedOnce(t *testing.T) {
	ctx, _ := testutil.Context(t)
	table := testutil.TableFromCloses(t, testutil.RiseThenFall(1, 60, 60)...)
	g := build(t, crossover())

	counts := map[nodeid.ID]int{}
	_, err := signals.Compile(ctx, g, table, signals.WithHook(func(n *graph.Node, _ evaluator.Outputs) {
		counts[n.ID]++
	}))
	require.NoError(t, err)

	for _, id := range []nodeid.ID{"close", "fast", "slow", "golden", "death", "buy", "sell"} {
		assert.Equal(t, 1, counts[id], "node %s", id)
	}
}

func TestCompile_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		strategy *testutil.StrategyBuilder
		check    func(t *testing.T, err error)
	}{
		{
			name: "missing indicator input",
			strategy: testutil.NewStrategy().
				Indicator("rsi", "rsi", nil).
				Compare("hot", ">").
				Entry("buy", "BUY").
				Edge("rsi.value", "hot.left").
				Edge("hot.true", "buy.trigger"),
			check: func(t *testing.T, err error) {
				var missing *evaluator.MissingInputError
				require.True(t, errors.As(err, &missing))
				assert.Equal(t, nodeid.ID("rsi"), missing.Node)
				assert.Equal(t, "source", missing.Port)
				assert.EqualError(t, err, "action 'buy': missing input 'source' for indicator node rsi")
			},
		},
		{
			name: "cycle in action subgraph",
			strategy: testutil.NewStrategy().
				Math("a", "+").
				Math("b", "+").
				Compare("c", ">").
				Exit("out").
				Edge("a.value", "b.left").
				Edge("b.value", "a.left").
				Edge("b.value", "c.left").
				Edge("c.true", "out.trigger"),
			check: func(t *testing.T, err error) {
				var cycleErr *dag.CycleError
				require.True(t, errors.As(err, &cycleErr))
				assert.Contains(t, err.Error(), "action 'out': cycle detected")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := testutil.Context(t)
			table := testutil.TableFromCloses(t, 1, 2, 3)
			g := build(t, tc.strategy)

			res, err := signals.Compile(ctx, g, table)

			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, signals.IsCompileError(err))
			tc.check(t, err)
		})
	}
}

func TestIsCompileError(t *testing.T) {
	assert.False(t, signals.IsCompileError(errors.New("connection refused")))
	assert.True(t, signals.IsCompileError(graph.ErrInvalidGraph))
	assert.True(t, signals.IsCompileError(&dag.CycleError{Nodes: []nodeid.ID{"a", "a"}}))
}
