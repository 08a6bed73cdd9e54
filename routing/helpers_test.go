package routing

import (
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conneccity/access-routing/attr"
	"github.com/conneccity/access-routing/graph"
	"github.com/conneccity/access-routing/weighting"
)

// 1->2 (5), 2->3 (5), 1->4 (3, stairs), 4->3 (3)
func buildStairsGraph() (*graph.Graph, weighting.CostParams) {
	g := graph.NewGraph(4, nil)
	for _, id := range []string{"1", "2", "3", "4"} {
		g.AddNode(id, 0, 0)
	}
	n := func(id string) int32 {
		i, _ := g.Resolve(id)
		return i
	}
	g.AddEdge(n("1"), n("2"), attr.EdgeAttribs{Time: 5})
	g.AddEdge(n("2"), n("3"), attr.EdgeAttribs{Time: 5})
	g.AddEdge(n("1"), n("4"), attr.EdgeAttribs{Time: 3, Stairs: true})
	g.AddEdge(n("4"), n("3"), attr.EdgeAttribs{Time: 3})
	return g, weighting.CostParams{Stairs: 10}
}

func buildRandomGraph(rng *rand.Rand, nodes, edges int) *graph.Graph {
	g := graph.NewGraph(nodes, nil)
	for i := 0; i < nodes; i++ {
		g.AddNode("n"+strconv.Itoa(i), 0, 0)
	}
	modes := []attr.TravelMode{attr.WALK, attr.BUS, attr.METRO, attr.TRAIN}
	for i := 0; i < edges; i++ {
		a := int32(rng.Intn(nodes))
		b := int32(rng.Intn(nodes))
		if a == b {
			continue
		}
		g.AddEdge(a, b, attr.EdgeAttribs{
			Time:        float64(rng.Intn(20)) + rng.Float64(),
			Transfer:    rng.Intn(4) == 0,
			Stairs:      rng.Intn(4) == 0,
			BadSidewalk: rng.Intn(4) == 0,
			FloodRisk:   rng.Intn(4) == 0,
			Mode:        modes[rng.Intn(len(modes))],
		})
	}
	return g
}

// cost of the cheapest parallel edge, +Inf if there is none
func hopCost(g graph.IGraph, params weighting.CostParams, from, to int32) float64 {
	cost := math.Inf(1)
	g.ForAdjacentEdges(from, func(ref graph.EdgeRef) {
		if ref.OtherID == to {
			cost = math.Min(cost, weighting.EdgeCost(g.GetEdge(ref.EdgeID).EdgeAttribs, params))
		}
	})
	return cost
}

func requireConsistentRoute(t *testing.T, g graph.IGraph, params weighting.CostParams, route Route, source, target int32) {
	t.Helper()
	require.True(t, route.Valid())
	require.Equal(t, source, route.Nodes[0])
	require.Equal(t, target, route.Nodes[len(route.Nodes)-1])
	require.True(t, route.IsSimple(), "route %v repeats a node", route.Nodes)
	sum := 0.0
	for i := 0; i+1 < len(route.Nodes); i++ {
		sum += hopCost(g, params, route.Nodes[i], route.Nodes[i+1])
	}
	require.InDelta(t, sum, route.Cost, 1e-9)
}

// costs of all simple paths from source to target, by depth first enumeration
func enumerateSimplePathCosts(g graph.IGraph, params weighting.CostParams, source, target int32) []float64 {
	costs := []float64{}
	on_path := make([]bool, g.NodeCount())
	var visit func(node int32, cost float64)
	visit = func(node int32, cost float64) {
		if node == target {
			costs = append(costs, cost)
			return
		}
		on_path[node] = true
		seen := map[int32]bool{}
		g.ForAdjacentEdges(node, func(ref graph.EdgeRef) {
			other := ref.OtherID
			if on_path[other] || seen[other] {
				return
			}
			seen[other] = true
			visit(other, cost+hopCost(g, params, node, other))
		})
		on_path[node] = false
	}
	visit(source, 0)
	return costs
}
