package routing

import (
	"math"
	"slices"
	"time"

	"github.com/tidwall/btree"

	"github.com/conneccity/access-routing/events"
	"github.com/conneccity/access-routing/graph"
	"github.com/conneccity/access-routing/weighting"
)

// default bound for the candidate pool of a single search
const DEFAULT_MAX_CANDIDATES = 10000

type YenOptions struct {
	// upper bound on generated candidates, <= 0 uses DEFAULT_MAX_CANDIDATES
	MaxCandidates int
	Observer      events.IObserver
}

type candidate struct {
	route Route
	seq   int
}

func _CandidateLess(a, b candidate) bool {
	if a.route.Cost != b.route.Cost {
		return a.route.Cost < b.route.Cost
	}
	return a.seq < b.seq
}

// K shortest loopless paths after Yen.
//
// Spur searches run on an Exclusion instead of a modified graph: the edges
// leaving the spur node along confirmed routes sharing the root path and the
// root path nodes before the spur node are excluded.
type Yen struct {
	graph    graph.IGraph
	weight   weighting.IWeighting
	start_id int32
	end_id   int32
	k        int

	max_candidates int
	observer       events.IObserver

	confirmed  []Route
	candidates *btree.BTreeG[candidate]
	seen       map[string]struct{}
	seq        int
	limited    bool
	searches   int
}

func NewYen(g graph.IGraph, weight weighting.IWeighting, start, end int32, k int, options YenOptions) *Yen {
	max_candidates := options.MaxCandidates
	if max_candidates <= 0 {
		max_candidates = DEFAULT_MAX_CANDIDATES
	}
	return &Yen{
		graph:          g,
		weight:         weight,
		start_id:       start,
		end_id:         end,
		k:              k,
		max_candidates: max_candidates,
		observer:       events.OrNoop(options.Observer),
	}
}

// Computes up to k routes ordered by non-decreasing cost.
func (self *Yen) CalcRoutes() []Route {
	start := time.Now()
	routes := self._Search()
	self.observer.OnSearch(events.SearchEvent{
		Kind:     events.ALTERNATIVES,
		Visited:  self.searches,
		Routes:   len(routes),
		Duration: time.Since(start),
	})
	return routes
}

func (self *Yen) _Search() []Route {
	self.confirmed = nil
	self.candidates = btree.NewBTreeG[candidate](_CandidateLess)
	self.seen = make(map[string]struct{})
	self.seq = 0
	self.limited = false
	self.searches = 0

	if self.k <= 0 || !self.graph.IsNode(self.start_id) || !self.graph.IsNode(self.end_id) {
		return []Route{}
	}

	first := self._SpurSearch(self.start_id, nil)
	if !first.Valid() {
		return []Route{}
	}
	self._Confirm(first)
	self.seen[_RouteKey(first.Nodes)] = struct{}{}

	exclude := NewExclusion()
	for len(self.confirmed) < self.k {
		last := self.confirmed[len(self.confirmed)-1]
		root_cost := 0.0
		for i := 0; i < len(last.Nodes)-1; i++ {
			if self.limited {
				break
			}
			spur_id := last.Nodes[i]
			root := last.Nodes[:i+1]

			exclude.Clear()
			for _, route := range self.confirmed {
				if len(route.Nodes) > i+1 && slices.Equal(route.Nodes[:i+1], root) {
					exclude.ExcludeEdge(route.Nodes[i], route.Nodes[i+1])
				}
			}
			for _, node := range root[:i] {
				exclude.ExcludeNode(node)
			}

			spur := self._SpurSearch(spur_id, exclude)
			if spur.Valid() {
				nodes := make([]int32, 0, i+len(spur.Nodes))
				nodes = append(nodes, root[:i]...)
				nodes = append(nodes, spur.Nodes...)
				self._AddCandidate(Route{Nodes: nodes, Cost: root_cost + spur.Cost})
			}

			root_cost += self._HopCost(last.Nodes[i], last.Nodes[i+1])
		}

		next, ok := self.candidates.PopMin()
		if !ok {
			break
		}
		self._Confirm(next.route)
	}
	return self.confirmed
}

func (self *Yen) _SpurSearch(spur_id int32, exclude *Exclusion) Route {
	self.searches += 1
	d := NewDijkstra(self.graph, self.weight, spur_id, self.end_id)
	if exclude != nil {
		d.SetExclusion(exclude)
	}
	if !d.CalcShortestPath() {
		return Route{}
	}
	return d.GetShortestPath()
}

func (self *Yen) _AddCandidate(route Route) {
	key := _RouteKey(route.Nodes)
	if _, ok := self.seen[key]; ok {
		return
	}
	if self.candidates.Len() >= self.max_candidates {
		self.limited = true
		self.observer.OnCandidateLimit(self.max_candidates)
		return
	}
	self.seen[key] = struct{}{}
	self.candidates.Set(candidate{route: route, seq: self.seq})
	self.seq += 1
}

func (self *Yen) _Confirm(route Route) {
	self.confirmed = append(self.confirmed, route)
}

// cost of the cheapest edge from -> to
func (self *Yen) _HopCost(from, to int32) float64 {
	cost := math.Inf(1)
	self.graph.ForAdjacentEdges(from, func(ref graph.EdgeRef) {
		if ref.OtherID != to {
			return
		}
		if w := self.weight.GetEdgeWeight(ref.EdgeID); w < cost {
			cost = w
		}
	})
	return cost
}

//*******************************************
// convenience functions
//*******************************************

// Computes up to k loopless routes between two node indices, ordered by cost.
//
// Returns an empty slice for k <= 0, out of range indices or an unreachable target.
func KShortestPaths(g graph.IGraph, source, target int32, params weighting.CostParams, k int) []Route {
	yen := NewYen(g, weighting.NewCostWeighting(g, params), source, target, k, YenOptions{})
	return yen.CalcRoutes()
}

// Like KShortestPaths but resolves the node identifiers first.
func KShortestPathsByID(g *graph.Graph, source_id, target_id string, params weighting.CostParams, k int) []Route {
	source, ok := g.Resolve(source_id)
	if !ok {
		return []Route{}
	}
	target, ok := g.Resolve(target_id)
	if !ok {
		return []Route{}
	}
	return KShortestPaths(g, source, target, params, k)
}
