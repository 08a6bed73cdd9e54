package routing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/conneccity/access-routing/attr"
	"github.com/conneccity/access-routing/events"
	"github.com/conneccity/access-routing/graph"
	"github.com/conneccity/access-routing/weighting"
)

func TestShortestPathStairsScenario(t *testing.T) {
	g, params := buildStairsGraph()
	assert.Equal(t, 13.0, weighting.EdgeCost(g.GetEdge(2).EdgeAttribs, params))

	route := ShortestPathByID(g, "1", "3", params)
	require.True(t, route.Valid())
	assert.Equal(t, []string{"1", "2", "3"}, route.IDs(g))
	assert.Equal(t, 10.0, route.Cost)
}

func TestShortestPathSameNode(t *testing.T) {
	g, params := buildStairsGraph()
	for i := int32(0); i < int32(g.NodeCount()); i++ {
		route := ShortestPath(g, i, i, params)
		assert.Equal(t, Route{Nodes: []int32{i}, Cost: 0}, route)
	}
}

func TestShortestPathUnreachable(t *testing.T) {
	g, params := buildStairsGraph()
	g.AddNode("5", 0, 0)

	route := ShortestPathByID(g, "3", "1", params)
	assert.False(t, route.Valid())
	assert.Empty(t, route.Nodes)

	assert.False(t, ShortestPathByID(g, "1", "5", params).Valid())
	assert.False(t, ShortestPathByID(g, "1", "unknown", params).Valid())
	assert.False(t, ShortestPath(g, -1, 2, params).Valid())
	assert.False(t, ShortestPath(g, 0, 42, params).Valid())
}

func TestShortestPathTieBreaking(t *testing.T) {
	// two equal cost routes a->b->d and a->c->d, a->c is added last and relaxed first
	g := graph.NewGraph(4, nil)
	a := g.AddNode("a", 0, 0)
	b := g.AddNode("b", 0, 0)
	c := g.AddNode("c", 0, 0)
	d := g.AddNode("d", 0, 0)
	g.AddEdge(b, d, attr.EdgeAttribs{Time: 1})
	g.AddEdge(c, d, attr.EdgeAttribs{Time: 1})
	g.AddEdge(a, b, attr.EdgeAttribs{Time: 1})
	g.AddEdge(a, c, attr.EdgeAttribs{Time: 1})

	route := ShortestPath(g, a, d, weighting.CostParams{})
	assert.Equal(t, []int32{a, c, d}, route.Nodes)
	assert.Equal(t, 2.0, route.Cost)
}

func TestShortestPathParallelEdges(t *testing.T) {
	g := graph.NewGraph(2, nil)
	a := g.AddNode("a", 0, 0)
	b := g.AddNode("b", 0, 0)
	g.AddEdge(a, b, attr.EdgeAttribs{Time: 2, Mode: attr.BUS, Transfer: true})
	g.AddEdge(a, b, attr.EdgeAttribs{Time: 4})

	route := ShortestPath(g, a, b, weighting.CostParams{Transfer: 6})
	assert.Equal(t, 4.0, route.Cost)
	route = ShortestPath(g, a, b, weighting.CostParams{})
	assert.Equal(t, 2.0, route.Cost)
}

func TestShortestPathExclusion(t *testing.T) {
	g, params := buildStairsGraph()
	weight := weighting.NewCostWeighting(g, params)

	exclude := NewExclusion()
	exclude.ExcludeEdge(0, 1)
	d := NewDijkstra(g, weight, 0, 2)
	d.SetExclusion(exclude)
	require.True(t, d.CalcShortestPath())
	assert.Equal(t, Route{Nodes: []int32{0, 3, 2}, Cost: 16}, d.GetShortestPath())

	exclude.ExcludeNode(3)
	d = NewDijkstra(g, weight, 0, 2)
	d.SetExclusion(exclude)
	assert.False(t, d.CalcShortestPath())
	assert.False(t, d.GetShortestPath().Valid())

	exclude.Clear()
	assert.True(t, exclude.IsEmpty())
	assert.Equal(t, 10.0, ShortestPath(g, 0, 2, params).Cost)
}

func TestDijkstraReportsSearch(t *testing.T) {
	g, params := buildStairsGraph()
	counters := &events.Counters{}
	d := NewDijkstra(g, weighting.NewCostWeighting(g, params), 0, 2)
	d.SetObserver(counters)
	require.True(t, d.CalcShortestPath())
	assert.Equal(t, int64(1), counters.Searches.Load())
	assert.Equal(t, 3, d.Visited())
}

func TestShortestPathAgainstOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	params := weighting.DefaultProfiles()[weighting.ACCESSIBLE_PROFILE].Params(true)
	for round := 0; round < 5; round++ {
		g := buildRandomGraph(rng, 30, 90)

		oracle := simple.NewWeightedDirectedGraph(0, math.Inf(1))
		for i := 0; i < g.NodeCount(); i++ {
			oracle.AddNode(simple.Node(i))
		}
		for i := 0; i < g.NodeCount(); i++ {
			g.ForAdjacentEdges(int32(i), func(ref graph.EdgeRef) {
				w := hopCost(g, params, int32(i), ref.OtherID)
				oracle.SetWeightedEdge(oracle.NewWeightedEdge(simple.Node(i), simple.Node(ref.OtherID), w))
			})
		}

		for s := 0; s < g.NodeCount(); s++ {
			tree := path.DijkstraFrom(simple.Node(s), oracle)
			for e := 0; e < g.NodeCount(); e++ {
				route := ShortestPath(g, int32(s), int32(e), params)
				want := tree.WeightTo(int64(e))
				if math.IsInf(want, 1) {
					require.False(t, route.Valid(), "%d->%d", s, e)
					continue
				}
				requireConsistentRoute(t, g, params, route, int32(s), int32(e))
				require.InDelta(t, want, route.Cost, 1e-9, "%d->%d", s, e)
			}
		}
	}
}

func TestShortestPathTreeMatchesDijkstra(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	g := buildRandomGraph(rng, 40, 120)
	params := weighting.DefaultProfiles()[weighting.STANDARD_PROFILE].Params(false)
	weight := weighting.NewCostWeighting(g, params)

	for s := int32(0); s < int32(g.NodeCount()); s++ {
		tree := NewShortestPathTree(g, weight, s)
		tree.CalcShortestPathTree()
		for e := int32(0); e < int32(g.NodeCount()); e++ {
			want := ShortestPath(g, s, e, params)
			got := tree.GetRoute(e)
			require.Equal(t, want.Valid(), got.Valid())
			require.Equal(t, want.Valid(), tree.IsReachable(e))
			if want.Valid() {
				require.Equal(t, want.Nodes, got.Nodes)
				require.InDelta(t, want.Cost, got.Cost, 1e-9)
				require.InDelta(t, want.Cost, tree.GetDistance(e), 1e-9)
			}
		}
		assert.Equal(t, int32(-1), tree.GetPredecessor(s))
	}
}
