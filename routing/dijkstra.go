package routing

import (
	"math"
	"time"

	"github.com/conneccity/access-routing/events"
	"github.com/conneccity/access-routing/graph"
	. "github.com/conneccity/access-routing/util"
	"github.com/conneccity/access-routing/weighting"
)

type flag_d struct {
	path_length float64
	prev_node   int32
	visited     bool
}

var _ IShortestPath = &Dijkstra{}

// Single source single target search with early termination.
//
// Edges leaving a node are relaxed most recently added first and only strictly
// shorter paths replace a tentative distance, which fixes tie-breaking.
type Dijkstra struct {
	heap     *IndexedPriorityQueue[float64]
	start_id int32
	end_id   int32
	graph    graph.IGraph
	weight   weighting.IWeighting
	exclude  *Exclusion
	observer events.IObserver
	flags    []flag_d
	visited  int
	found    bool
}

func NewDijkstra(g graph.IGraph, weight weighting.IWeighting, start, end int32) *Dijkstra {
	d := Dijkstra{
		graph:    g,
		weight:   weight,
		start_id: start,
		end_id:   end,
		observer: events.NoopObserver{},
	}
	return &d
}

// Edges and nodes in exclude are skipped during the search.
func (self *Dijkstra) SetExclusion(exclude *Exclusion) {
	self.exclude = exclude
}
func (self *Dijkstra) SetObserver(observer events.IObserver) {
	self.observer = events.OrNoop(observer)
}

// Number of nodes settled by the last search.
func (self *Dijkstra) Visited() int {
	return self.visited
}

func (self *Dijkstra) CalcShortestPath() bool {
	start := time.Now()
	self.found = self._Search()
	self.observer.OnSearch(events.SearchEvent{
		Kind:     events.SHORTEST_PATH,
		Visited:  self.visited,
		Routes:   _BoolToInt(self.found),
		Duration: time.Since(start),
	})
	return self.found
}

func (self *Dijkstra) _Search() bool {
	self.visited = 0
	if !self.graph.IsNode(self.start_id) || !self.graph.IsNode(self.end_id) {
		return false
	}
	if self.start_id == self.end_id {
		return true
	}

	flags := make([]flag_d, self.graph.NodeCount())
	for i := 0; i < len(flags); i++ {
		flags[i].path_length = math.Inf(1)
		flags[i].prev_node = -1
	}
	flags[self.start_id].path_length = 0
	self.flags = flags

	heap := NewIndexedPriorityQueue[float64](self.graph.NodeCount())
	heap.Enqueue(self.start_id, 0)
	self.heap = heap

	for {
		curr_id, _, ok := self.heap.Dequeue()
		if !ok {
			return false
		}
		curr_flag := self.flags[curr_id]
		curr_flag.visited = true
		self.flags[curr_id] = curr_flag
		self.visited += 1
		if curr_id == self.end_id {
			return true
		}
		self.graph.ForAdjacentEdges(curr_id, func(ref graph.EdgeRef) {
			other_id := ref.OtherID
			other_flag := self.flags[other_id]
			if other_flag.visited {
				return
			}
			if self.exclude != nil && (self.exclude.IsNodeExcluded(other_id) || self.exclude.IsEdgeExcluded(curr_id, other_id)) {
				return
			}
			new_length := curr_flag.path_length + self.weight.GetEdgeWeight(ref.EdgeID)
			if new_length < other_flag.path_length {
				other_flag.prev_node = curr_id
				other_flag.path_length = new_length
				self.heap.Enqueue(other_id, new_length)
			}
			self.flags[other_id] = other_flag
		})
	}
}

// Returns the route found by CalcShortestPath or the invalid route.
func (self *Dijkstra) GetShortestPath() Route {
	if !self.found {
		return Route{}
	}
	if self.start_id == self.end_id {
		return Route{Nodes: []int32{self.start_id}, Cost: 0}
	}
	path := make([]int32, 0, 16)
	curr_id := self.end_id
	for curr_id != -1 {
		path = append(path, curr_id)
		curr_id = self.flags[curr_id].prev_node
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return Route{
		Nodes: path,
		Cost:  self.flags[self.end_id].path_length,
	}
}

func _BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

//*******************************************
// convenience functions
//*******************************************

// Computes the least cost route between two node indices.
//
// Returns the invalid route if target is not reachable or an index is out of range.
func ShortestPath(g graph.IGraph, source, target int32, params weighting.CostParams) Route {
	d := NewDijkstra(g, weighting.NewCostWeighting(g, params), source, target)
	if !d.CalcShortestPath() {
		return Route{}
	}
	return d.GetShortestPath()
}

// Like ShortestPath but resolves the node identifiers first.
func ShortestPathByID(g *graph.Graph, source_id, target_id string, params weighting.CostParams) Route {
	source, ok := g.Resolve(source_id)
	if !ok {
		return Route{}
	}
	target, ok := g.Resolve(target_id)
	if !ok {
		return Route{}
	}
	return ShortestPath(g, source, target, params)
}
