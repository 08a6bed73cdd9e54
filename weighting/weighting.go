package weighting

import (
	"github.com/conneccity/access-routing/attr"
	"github.com/conneccity/access-routing/graph"
)

//*******************************************
// weighting interface
//*******************************************

type IWeighting interface {
	GetEdgeWeight(edge int32) float64
}

//*******************************************
// cost weighting
//*******************************************

var _ IWeighting = &CostWeighting{}

// Weights the edges of a graph with EdgeCost.
type CostWeighting struct {
	graph  graph.IGraph
	params CostParams
}

func NewCostWeighting(g graph.IGraph, params CostParams) *CostWeighting {
	return &CostWeighting{
		graph:  g,
		params: params,
	}
}

func (self *CostWeighting) GetEdgeWeight(edge int32) float64 {
	return EdgeCost(self.graph.GetEdge(edge).EdgeAttribs, self.params)
}
func (self *CostWeighting) Params() CostParams {
	return self.params
}

//*******************************************
// counterfactual weighting
//*******************************************

var _ IWeighting = &HazardFreeWeighting{}

// Weights a graph as if one edge did not carry the given hazard.
type HazardFreeWeighting struct {
	graph  graph.IGraph
	params CostParams
	edge   int32
	hazard attr.HazardType
}

func WithoutHazard(g graph.IGraph, params CostParams, edge int32, hazard attr.HazardType) *HazardFreeWeighting {
	return &HazardFreeWeighting{
		graph:  g,
		params: params,
		edge:   edge,
		hazard: hazard,
	}
}

func (self *HazardFreeWeighting) GetEdgeWeight(edge int32) float64 {
	attribs := self.graph.GetEdge(edge).EdgeAttribs
	if edge == self.edge {
		attribs = attribs.WithoutHazard(self.hazard)
	}
	return EdgeCost(attribs, self.params)
}
