package routing

import (
	"math"

	"github.com/conneccity/access-routing/graph"
	. "github.com/conneccity/access-routing/util"
	"github.com/conneccity/access-routing/weighting"
)

type flag_spt struct {
	path_length float64
	prev_node   int32
	visited     bool
}

// Full shortest path tree from one source.
//
// Relaxation order and tie-breaking match Dijkstra, so the tree path to any node
// is the route Dijkstra returns for that target.
type ShortestPathTree struct {
	heap     *IndexedPriorityQueue[float64]
	start_id int32
	graph    graph.IGraph
	weight   weighting.IWeighting
	flags    []flag_spt
	order    List[int32]
}

func NewShortestPathTree(g graph.IGraph, weight weighting.IWeighting, start int32) *ShortestPathTree {
	d := ShortestPathTree{
		graph:    g,
		weight:   weight,
		start_id: start,
	}

	flags := make([]flag_spt, g.NodeCount())
	for i := 0; i < len(flags); i++ {
		flags[i].path_length = math.Inf(1)
		flags[i].prev_node = -1
	}
	d.flags = flags
	d.order = NewList[int32](100)

	d.heap = NewIndexedPriorityQueue[float64](g.NodeCount())

	return &d
}

func (self *ShortestPathTree) CalcShortestPathTree() {
	if !self.graph.IsNode(self.start_id) {
		return
	}
	self.flags[self.start_id].path_length = 0
	self.heap.Enqueue(self.start_id, 0)

	for {
		curr_id, _, ok := self.heap.Dequeue()
		if !ok {
			return
		}
		curr_flag := self.flags[curr_id]
		curr_flag.visited = true
		self.flags[curr_id] = curr_flag
		self.order.Add(curr_id)
		self.graph.ForAdjacentEdges(curr_id, func(ref graph.EdgeRef) {
			other_id := ref.OtherID
			other_flag := self.flags[other_id]
			if other_flag.visited {
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

// Reached nodes in the order they were settled, the root first.
func (self *ShortestPathTree) SettledNodes() []int32 {
	return self.order
}

func (self *ShortestPathTree) IsReachable(node int32) bool {
	return self.flags[node].visited
}
func (self *ShortestPathTree) GetDistance(node int32) float64 {
	return self.flags[node].path_length
}

// Predecessor of node in the tree, -1 for the root and unreached nodes.
func (self *ShortestPathTree) GetPredecessor(node int32) int32 {
	return self.flags[node].prev_node
}

// Route from the tree root to node, invalid if node was not reached.
func (self *ShortestPathTree) GetRoute(node int32) Route {
	if !self.graph.IsNode(node) || !self.IsReachable(node) {
		return Route{}
	}
	path := make([]int32, 0, 16)
	for curr_id := node; curr_id != -1; curr_id = self.flags[curr_id].prev_node {
		path = append(path, curr_id)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return Route{Nodes: path, Cost: self.flags[node].path_length}
}
