package parser

import (
	"github.com/paulmach/orb"

	"github.com/conneccity/access-routing/attr"
)

//*******************************************
// parser structs
//*******************************************

// OSM node referenced by a walkable way.
type TempNode struct {
	Point orb.Point
	// number of way references, endpoints count twice
	Count int32
	// graph index, -1 while the node is not a junction
	Index int32
}

// Way section between two junctions.
type OSMEdge struct {
	NodeA  int32
	NodeB  int32
	Length float64
	Attr   attr.EdgeAttribs
}
