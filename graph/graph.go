package graph

import (
	"github.com/conneccity/access-routing/attr"
	"github.com/conneccity/access-routing/events"
	. "github.com/conneccity/access-routing/util"
)

//*******************************************
// graph interfaces
//******************************************

type IGraph interface {
	NodeCount() int
	EdgeCount() int
	IsNode(node int32) bool
	GetNode(node int32) Node
	GetEdge(edge int32) Edge
	// Iterates the outgoing edges of node, most recently added edge first.
	ForAdjacentEdges(node int32, callback func(EdgeRef))
}

//*******************************************
// graph
//******************************************

var _ IGraph = &Graph{}

// Directed multigraph with dense node indices and an identifier index.
//
// Built once by a loader, read-only afterwards. Concurrent reads are safe.
type Graph struct {
	nodes List[Node]
	edges List[Edge]

	// outgoing edge ids per node in insertion order
	topology List[List[int32]]

	index    *IDIndex
	observer events.IObserver
}

// Creates an empty graph, expected is a size hint for the identifier index.
func NewGraph(expected int, observer events.IObserver) *Graph {
	return &Graph{
		nodes:    NewList[Node](expected),
		edges:    NewList[Edge](expected),
		topology: NewList[List[int32]](expected),
		index:    NewIDIndex(expected),
		observer: events.OrNoop(observer),
	}
}

func (self *Graph) NodeCount() int {
	return self.nodes.Length()
}
func (self *Graph) EdgeCount() int {
	return self.edges.Length()
}
func (self *Graph) IsNode(node int32) bool {
	return node >= 0 && int(node) < self.nodes.Length()
}
func (self *Graph) GetNode(node int32) Node {
	return self.nodes[node]
}
func (self *Graph) GetEdge(edge int32) Edge {
	return self.edges[edge]
}

func (self *Graph) ForAdjacentEdges(node int32, callback func(EdgeRef)) {
	adjacency := self.topology[node]
	for i := len(adjacency) - 1; i >= 0; i-- {
		edge_id := adjacency[i]
		callback(EdgeRef{
			EdgeID:  edge_id,
			OtherID: self.edges[edge_id].NodeB,
		})
	}
}

// Returns the index of the node with the given identifier.
func (self *Graph) Resolve(id string) (int32, bool) {
	return self.index.Lookup(id)
}

// Appends a node and indexes its identifier.
//
// The node is always appended. If the identifier is already indexed the
// first index stays resolvable and the duplicate is reported to the observer.
func (self *Graph) AddNode(id string, lat, lon float64) int32 {
	node := int32(self.nodes.Length())
	norm := NormalizeID(id)
	self.nodes.Add(Node{ID: norm, Lat: lat, Lon: lon})
	self.topology.Add(NewList[int32](4))

	grows := self.index.Grows()
	first, res := self.index.Insert(norm, node)
	if self.index.Grows() > grows {
		self.observer.OnIndexGrow(self.index.Capacity())
	}
	switch res {
	case DUPLICATE:
		self.observer.OnDuplicateID(norm, first)
	case FULL:
		self.observer.OnIndexFull(norm)
	}
	return node
}

func (self *Graph) SetNodeAttribs(node int32, attribs attr.NodeAttribs) {
	self.nodes[node].NodeAttribs = attribs
}

// Adds a directed edge, returns false if one of the nodes does not exist.
func (self *Graph) AddEdge(from, to int32, attribs attr.EdgeAttribs) (int32, bool) {
	if !self.IsNode(from) || !self.IsNode(to) {
		return -1, false
	}
	id := int32(self.edges.Length())
	self.edges.Add(Edge{NodeA: from, NodeB: to, EdgeAttribs: attribs})
	self.topology[from].Add(id)
	return id, true
}
