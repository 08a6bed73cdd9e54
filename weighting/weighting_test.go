package weighting

import (
	"math/rand"
	"testing"

	"github.com/conneccity/access-routing/attr"
	"github.com/conneccity/access-routing/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeCost(t *testing.T) {
	params := CostParams{Transfer: 6, Stairs: 2, Sidewalk: 1, Flood: 4}
	cases := []struct {
		name  string
		edge  attr.EdgeAttribs
		rain  bool
		value float64
	}{
		{"plain", attr.EdgeAttribs{Time: 5}, false, 5},
		{"stairs", attr.EdgeAttribs{Time: 3, Stairs: true}, false, 5},
		{"all dry", attr.EdgeAttribs{Time: 1, Transfer: true, Stairs: true, BadSidewalk: true, FloodRisk: true}, false, 10},
		{"all rain", attr.EdgeAttribs{Time: 1, Transfer: true, Stairs: true, BadSidewalk: true, FloodRisk: true}, true, 14},
		{"flood dry", attr.EdgeAttribs{Time: 2, FloodRisk: true}, false, 2},
	}
	for _, c := range cases {
		p := params
		p.Rain = c.rain
		assert.Equal(t, c.value, EdgeCost(c.edge, p), c.name)
	}

	// stairs scenario: 3 + 10
	assert.Equal(t, 13.0, EdgeCost(attr.EdgeAttribs{Time: 3, Stairs: true}, CostParams{Stairs: 10}))
}

func TestEdgeCostNotBelowTime(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		edge := attr.EdgeAttribs{
			Time:        rng.Float64() * 20,
			Transfer:    rng.Intn(2) == 1,
			Stairs:      rng.Intn(2) == 1,
			BadSidewalk: rng.Intn(2) == 1,
			FloodRisk:   rng.Intn(2) == 1,
		}
		params := CostParams{
			Transfer: rng.Float64() * 10,
			Stairs:   rng.Float64() * 10,
			Sidewalk: rng.Float64() * 10,
			Flood:    rng.Float64() * 10,
			Rain:     rng.Intn(2) == 1,
		}
		require.GreaterOrEqual(t, EdgeCost(edge, params), edge.Time)
	}
}

func TestPenalty(t *testing.T) {
	params := CostParams{Transfer: 1, Stairs: 2, Sidewalk: 3, Flood: 4}
	assert.Equal(t, 0.0, params.Penalty(attr.FLOOD_RISK))
	params.Rain = true
	assert.Equal(t, 4.0, params.Penalty(attr.FLOOD_RISK))
	assert.Equal(t, 2.0, params.Penalty(attr.STAIRS))
}

func TestWithoutHazard(t *testing.T) {
	g := graph.NewGraph(2, nil)
	a := g.AddNode("a", 0, 0)
	b := g.AddNode("b", 0, 0)
	e1, _ := g.AddEdge(a, b, attr.EdgeAttribs{Time: 3, Stairs: true})
	e2, _ := g.AddEdge(b, a, attr.EdgeAttribs{Time: 3, Stairs: true})

	params := DefaultProfiles()[ACCESSIBLE_PROFILE].Params(false)
	base := NewCostWeighting(g, params)
	free := WithoutHazard(g, params, e1, attr.STAIRS)

	assert.Equal(t, 15.0, base.GetEdgeWeight(e1))
	assert.Equal(t, 3.0, free.GetEdgeWeight(e1))
	assert.Equal(t, 15.0, free.GetEdgeWeight(e2))
	assert.True(t, g.GetEdge(e1).Stairs)
}

func TestProfiles(t *testing.T) {
	profiles := DefaultProfiles()
	assert.Equal(t, []string{"pcd", "standard"}, ProfileNames(profiles))

	std := profiles[STANDARD_PROFILE]
	assert.Equal(t, CostParams{Transfer: 6, Stairs: 2, Sidewalk: 1, Flood: 4, Rain: true}, std.Params(true))
	assert.False(t, std.Accessible)
	assert.True(t, profiles[ACCESSIBLE_PROFILE].Accessible)
	assert.NoError(t, std.Validate())

	std.Stairs = -1
	assert.Error(t, std.Validate())
}
