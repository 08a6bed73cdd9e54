package routing

import (
	"encoding/binary"
	"slices"

	"github.com/conneccity/access-routing/graph"
)

//*******************************************
// route
//*******************************************

// Node sequence from source to target and its total cost.
//
// The zero value is the unreachable route.
type Route struct {
	Nodes []int32
	Cost  float64
}

func (self Route) Valid() bool {
	return len(self.Nodes) > 0
}

// Reports whether both routes visit the same node sequence.
func (self Route) Equal(other Route) bool {
	return slices.Equal(self.Nodes, other.Nodes)
}

// Returns the identifiers of the route nodes.
func (self Route) IDs(g graph.IGraph) []string {
	ids := make([]string, len(self.Nodes))
	for i, node := range self.Nodes {
		ids[i] = g.GetNode(node).ID
	}
	return ids
}

// Reports whether the route visits no node twice.
func (self Route) IsSimple() bool {
	seen := make(map[int32]struct{}, len(self.Nodes))
	for _, node := range self.Nodes {
		if _, ok := seen[node]; ok {
			return false
		}
		seen[node] = struct{}{}
	}
	return true
}

func _RouteKey(nodes []int32) string {
	buf := make([]byte, 0, 4*len(nodes))
	for _, node := range nodes {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(node))
	}
	return string(buf)
}
