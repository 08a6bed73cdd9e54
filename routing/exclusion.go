package routing

import (
	. "github.com/conneccity/access-routing/util"
)

//*******************************************
// exclusion set
//*******************************************

// Edges and nodes a search must not use.
//
// Excluding from->to excludes every parallel edge between both nodes.
// The graph itself is never modified.
type Exclusion struct {
	edges Dict[Tuple[int32, int32], bool]
	nodes Dict[int32, bool]
}

func NewExclusion() *Exclusion {
	return &Exclusion{
		edges: NewDict[Tuple[int32, int32], bool](8),
		nodes: NewDict[int32, bool](8),
	}
}

func (self *Exclusion) ExcludeEdge(from, to int32) {
	self.edges.Set(MakeTuple(from, to), true)
}
func (self *Exclusion) ExcludeNode(node int32) {
	self.nodes.Set(node, true)
}
func (self *Exclusion) IsEdgeExcluded(from, to int32) bool {
	return self.edges.ContainsKey(MakeTuple(from, to))
}
func (self *Exclusion) IsNodeExcluded(node int32) bool {
	return self.nodes.ContainsKey(node)
}
func (self *Exclusion) Clear() {
	clear(self.edges)
	clear(self.nodes)
}
func (self *Exclusion) IsEmpty() bool {
	return self.edges.Length() == 0 && self.nodes.Length() == 0
}
