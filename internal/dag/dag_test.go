package dag_test

import (
	"errors"
	"testing"

	"github.com/specialistvlad/signalgrid/internal/dag"
	"github.com/specialistvlad/signalgrid/internal/graph"
	"github.com/specialistvlad/signalgrid/internal/nodeid"
	"github.com/specialistvlad/signalgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, b *testutil.StrategyBuilder) *graph.Graph {
	t.Helper()
	ctx, _ := testutil.Context(t)
	g, err := graph.Build(ctx, b.Build())
	require.NoError(t, err)
	return g
}

func ids(nodes []*graph.Node) []nodeid.ID {
	out := make([]nodeid.ID, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

// twoActions builds an entry branch and an exit branch sharing one price.
func twoActions() *testutil.StrategyBuilder {
	return testutil.NewStrategy().
		Price("close", "close").
		Indicator("fast", "sma", map[string]float64{"period": 2}).
		Indicator("slow", "sma", map[string]float64{"period": 3}).
		Compare("above", ">").
		Compare("below", "<").
		Indicator("unused", "ema", nil).
		Entry("buy", "BUY").
		Exit("sell").
		Edge("close.value", "fast.source").
		Edge("close.value", "slow.source").
		Edge("close.value", "unused.source").
		Edge("fast.value", "above.left").
		Edge("slow.value", "above.right").
		Edge("fast.value", "below.left").
		Edge("slow.value", "below.right").
		Edge("above.true", "buy.trigger").
		Edge("below.true", "sell.trigger")
}

func TestExtractSubgraph_IsolatesActionBranch(t *testing.T) {
	g := build(t, twoActions())

	sub, err := dag.ExtractSubgraph(g, "buy")
	require.NoError(t, err)

	assert.Equal(t, []nodeid.ID{"close", "fast", "slow", "above", "buy"}, ids(sub.Nodes))
	assert.False(t, contains(sub, "below"))
	assert.False(t, contains(sub, "sell"))
	assert.False(t, contains(sub, "unused"))
	assert.Len(t, sub.Edges, 5)
	for _, e := range sub.Edges {
		assert.True(t, contains(sub, e.From.Node), "edge %v leaves the subgraph", e)
		assert.True(t, contains(sub, e.To.Node), "edge %v leaves the subgraph", e)
	}
}

func TestExtractSubgraph_UnconnectedTrigger(t *testing.T) {
	g := build(t, testutil.NewStrategy().
		Price("close", "close").
		Entry("buy", "BUY"))

	sub, err := dag.ExtractSubgraph(g, "buy")
	require.NoError(t, err)
	assert.Equal(t, []nodeid.ID{"buy"}, ids(sub.Nodes))
	assert.Empty(t, sub.Edges)
}

func TestExtractSubgraph_RejectsNonAction(t *testing.T) {
	g := build(t, twoActions())

	_, err := dag.ExtractSubgraph(g, "close")
	require.ErrorIs(t, err, graph.ErrInvalidGraph)
	assert.Contains(t, err.Error(), "not an action")

	_, err = dag.ExtractSubgraph(g, "ghost")
	require.ErrorIs(t, err, graph.ErrInvalidGraph)
}

func TestTopologicalSort_ProducerBeforeConsumer(t *testing.T) {
	g := build(t, twoActions())
	sub, err := dag.ExtractSubgraph(g, "sell")
	require.NoError(t, err)

	order, err := sub.Sort()
	require.NoError(t, err)

	pos := make(map[nodeid.ID]int)
	for i, n := range order {
		pos[n.ID] = i
	}
	for _, e := range sub.Edges {
		assert.Less(t, pos[e.From.Node], pos[e.To.Node], "edge %s -> %s out of order", e.From, e.To)
	}
	assert.Equal(t, []nodeid.ID{"close", "fast", "slow", "below", "sell"}, ids(order))
}

func TestTopologicalSort_TieBreakIsDefinitionOrder(t *testing.T) {
	// Independent branches defined in reverse alphabetical order.
	g := build(t, testutil.NewStrategy().
		Price("z", "close").
		Price("y", "open").
		Price("x", "high").
		Math("sum", "+").
		Math("total", "+").
		Edge("z.value", "sum.left").
		Edge("y.value", "sum.right").
		Edge("sum.value", "total.left").
		Edge("x.value", "total.right"))

	for i := 0; i < 20; i++ {
		order, err := dag.TopologicalSort(g.Nodes(), g.Edges())
		require.NoError(t, err)
		assert.Equal(t, []nodeid.ID{"z", "y", "x", "sum", "total"}, ids(order))
	}
}

func TestTopologicalSort_DetectsCycles(t *testing.T) {
	testCases := []struct {
		name     string
		strategy *testutil.StrategyBuilder
		action   nodeid.ID
		cycle    []nodeid.ID
	}{
		{
			name: "self loop",
			strategy: testutil.NewStrategy().
				Math("acc", "+").
				Compare("pos", ">").
				Exit("out").
				Edge("acc.value", "acc.left").
				Edge("acc.value", "pos.left").
				Edge("pos.true", "out.trigger"),
			action: "out",
			cycle:  []nodeid.ID{"acc", "acc"},
		},
		{
			name: "indirect loop",
			strategy: testutil.NewStrategy().
				Price("close", "close").
				Math("a", "+").
				Math("b", "*").
				Compare("c", ">").
				Entry("buy", "BUY").
				Edge("close.value", "a.left").
				Edge("b.value", "a.right").
				Edge("a.value", "b.left").
				Edge("a.value", "c.left").
				Edge("c.true", "buy.trigger"),
			action: "buy",
			cycle:  []nodeid.ID{"a", "b", "a"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := build(t, tc.strategy)

			sub, err := dag.ExtractSubgraph(g, tc.action)
			require.NoError(t, err, "extraction must terminate on cycles")

			order, err := sub.Sort()
			require.Error(t, err)
			assert.Nil(t, order)

			var cycleErr *dag.CycleError
			require.True(t, errors.As(err, &cycleErr))
			assert.Equal(t, tc.cycle, cycleErr.Nodes)
			assert.ErrorIs(t, err, graph.ErrInvalidGraph)
			assert.Contains(t, err.Error(), "cycle detected involving nodes")
		})
	}
}

func TestTopologicalSort_CycleOutsideActionIsIgnored(t *testing.T) {
	g := build(t, testutil.NewStrategy().
		Math("loop", "+").
		Edge("loop.value", "loop.left").
		Price("close", "close").
		Compare("up", ">").
		Entry("buy", "BUY").
		Edge("close.value", "up.left").
		Edge("up.true", "buy.trigger"))

	sub, err := dag.ExtractSubgraph(g, "buy")
	require.NoError(t, err)

	order, err := sub.Sort()
	require.NoError(t, err)
	assert.Equal(t, []nodeid.ID{"close", "up", "buy"}, ids(order))
}

func contains(sub *dag.Subgraph, id nodeid.ID) bool {
	for _, n := range sub.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}
