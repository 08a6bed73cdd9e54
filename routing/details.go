package routing

import (
	"github.com/conneccity/access-routing/attr"
	"github.com/conneccity/access-routing/graph"
	. "github.com/conneccity/access-routing/util"
	"github.com/conneccity/access-routing/weighting"
)

//*******************************************
// route details
//*******************************************

type Segment struct {
	From        string          `json:"from"`
	To          string          `json:"to"`
	Time        float64         `json:"time_min"`
	Cost        float64         `json:"cost"`
	Mode        attr.TravelMode `json:"mode"`
	Transfer    bool            `json:"transfer"`
	Stairs      bool            `json:"stairs"`
	BadSidewalk bool            `json:"bad_sidewalk"`
	FloodRisk   bool            `json:"flood_risk"`
}

// Consecutive segments travelled with the same mode.
type Step struct {
	Mode     attr.TravelMode `json:"mode"`
	From     string          `json:"from"`
	To       string          `json:"to"`
	FromName string          `json:"from_name"`
	ToName   string          `json:"to_name"`
	Time     float64         `json:"time_min"`
	Segments int             `json:"segments"`
}

type RouteDetails struct {
	Path      []string          `json:"path"`
	Cost      float64           `json:"cost"`
	TotalTime float64           `json:"total_time_min"`
	Transfers int               `json:"transfers"`
	Modes     []attr.TravelMode `json:"modes"`
	Barriers  []string          `json:"barriers"`
	Segments  []Segment         `json:"segments"`
	Steps     []Step            `json:"steps"`
}

// Describes a route hop by hop.
//
// Every hop uses the cheapest parallel edge under the profile's params, the edge
// a search relaxes. Stairs and bad sidewalks are barriers for accessible profiles
// only, flood risk is a barrier for every profile.
func Describe(g graph.IGraph, route Route, profile weighting.Profile, rain bool) RouteDetails {
	details := RouteDetails{
		Path:     route.IDs(g),
		Cost:     route.Cost,
		Modes:    []attr.TravelMode{},
		Barriers: []string{},
		Segments: []Segment{},
		Steps:    []Step{},
	}
	weight := weighting.NewCostWeighting(g, profile.Params(rain))
	hops := NewList[Tuple[int32, int32]](len(route.Nodes))
	for i := 0; i+1 < len(route.Nodes); i++ {
		from := route.Nodes[i]
		to := route.Nodes[i+1]
		edge_id, cost, ok := _CheapestEdge(g, weight, from, to)
		if !ok {
			continue
		}
		edge := g.GetEdge(edge_id)
		hops.Add(MakeTuple(from, to))
		details.Segments = append(details.Segments, Segment{
			From:        g.GetNode(from).ID,
			To:          g.GetNode(to).ID,
			Time:        edge.Time,
			Cost:        cost,
			Mode:        edge.Mode,
			Transfer:    edge.Transfer,
			Stairs:      edge.Stairs,
			BadSidewalk: edge.BadSidewalk,
			FloodRisk:   edge.FloodRisk,
		})
	}

	for i, seg := range details.Segments {
		details.TotalTime += seg.Time
		if !Contains(details.Modes, seg.Mode) {
			details.Modes = append(details.Modes, seg.Mode)
		}
		if profile.Accessible {
			if seg.Stairs {
				details.Barriers = append(details.Barriers, _Barrier(attr.STAIRS, seg))
			}
			if seg.BadSidewalk {
				details.Barriers = append(details.Barriers, _Barrier(attr.BAD_SIDEWALK, seg))
			}
		}
		if seg.FloodRisk {
			details.Barriers = append(details.Barriers, _Barrier(attr.FLOOD_RISK, seg))
		}

		if i == 0 || details.Segments[i-1].Mode != seg.Mode {
			details.Steps = append(details.Steps, Step{
				Mode:     seg.Mode,
				From:     seg.From,
				FromName: g.GetNode(hops[i].A).Name,
			})
		}
		step := &details.Steps[len(details.Steps)-1]
		step.To = seg.To
		step.ToName = g.GetNode(hops[i].B).Name
		step.Time += seg.Time
		step.Segments += 1
	}
	details.Transfers = CountTransfers(details.Segments)
	return details
}

// Counts mode changes between vehicles.
//
// Changing between two non-walking modes is a transfer. Leaving a vehicle on
// foot counts only if the next segment boards a vehicle again.
func CountTransfers(segments []Segment) int {
	transfers := 0
	for i := 1; i < len(segments); i++ {
		prev := segments[i-1].Mode
		curr := segments[i].Mode
		if prev == curr || prev == attr.WALK {
			continue
		}
		if curr != attr.WALK {
			transfers += 1
		} else if i+1 < len(segments) && segments[i+1].Mode != attr.WALK {
			transfers += 1
		}
	}
	return transfers
}

func _CheapestEdge(g graph.IGraph, weight weighting.IWeighting, from, to int32) (int32, float64, bool) {
	best := int32(-1)
	best_cost := 0.0
	g.ForAdjacentEdges(from, func(ref graph.EdgeRef) {
		if ref.OtherID != to {
			return
		}
		cost := weight.GetEdgeWeight(ref.EdgeID)
		if best == -1 || cost < best_cost {
			best = ref.EdgeID
			best_cost = cost
		}
	})
	return best, best_cost, best != -1
}

func _Barrier(hazard attr.HazardType, seg Segment) string {
	return hazard.String() + "@" + seg.From + "->" + seg.To
}
