package weighting

import (
	"github.com/conneccity/access-routing/attr"
)

//*******************************************
// cost params
//*******************************************

// Penalty coefficients per hazard flag and the rain switch.
//
// All coefficients must be >= 0, otherwise shortest path results are undefined.
type CostParams struct {
	Transfer float64 `json:"transfer" yaml:"transfer"`
	Stairs   float64 `json:"stairs" yaml:"stairs"`
	Sidewalk float64 `json:"sidewalk" yaml:"sidewalk"`
	Flood    float64 `json:"flood" yaml:"flood"`
	// flood penalty is only applied while rain is active
	Rain bool `json:"rain" yaml:"rain"`
}

// Returns the coefficient applied for hazard, flood risk is 0 without rain.
func (self CostParams) Penalty(hazard attr.HazardType) float64 {
	switch hazard {
	case attr.TRANSFER:
		return self.Transfer
	case attr.STAIRS:
		return self.Stairs
	case attr.BAD_SIDEWALK:
		return self.Sidewalk
	case attr.FLOOD_RISK:
		if self.Rain {
			return self.Flood
		}
	}
	return 0
}

// Computes the cost of traversing an edge.
//
//	cost = time + transfer*w_t + stairs*w_s + bad_sidewalk*w_b + (rain ? flood*w_f : 0)
func EdgeCost(edge attr.EdgeAttribs, params CostParams) float64 {
	cost := edge.Time
	if edge.Transfer {
		cost += params.Transfer
	}
	if edge.Stairs {
		cost += params.Stairs
	}
	if edge.BadSidewalk {
		cost += params.Sidewalk
	}
	if edge.FloodRisk && params.Rain {
		cost += params.Flood
	}
	return cost
}
