package graph

import (
	"github.com/conneccity/access-routing/attr"
)

//*******************************************
// graph structs
//*******************************************

type Node struct {
	// normalized external identifier
	ID  string
	Lat float64
	Lon float64
	attr.NodeAttribs
}

type Edge struct {
	NodeA int32
	NodeB int32
	attr.EdgeAttribs
}

//*******************************************
// edgeref struct
//*******************************************

// Reference to an edge as seen from the node it is explored from.
type EdgeRef struct {
	EdgeID  int32
	OtherID int32
}
