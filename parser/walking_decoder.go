package parser

import (
	"github.com/conneccity/access-routing/attr"
	. "github.com/conneccity/access-routing/util"
)

var _ IOSMDecoder = &WalkingDecoder{}

// Decodes pedestrian ways and their accessibility hazards.
type WalkingDecoder struct {
}

func (self *WalkingDecoder) IsValidHighway(tags Dict[string, string]) bool {
	return _IsWalkable(tags)
}
func (self *WalkingDecoder) DecodeNode(tags Dict[string, string]) attr.NodeAttribs {
	category := tags.Get("highway")
	if tags.ContainsKey("public_transport") {
		category = tags.Get("public_transport")
	} else if tags.ContainsKey("railway") {
		category = tags.Get("railway")
	}
	return attr.NodeAttribs{
		Name:     tags.Get("name"),
		Category: category,
	}
}
func (self *WalkingDecoder) DecodeEdge(tags Dict[string, string]) attr.EdgeAttribs {
	e := attr.EdgeAttribs{}
	e.Mode = attr.WALK
	e.Stairs = tags.Get("highway") == "steps"
	e.BadSidewalk = _IsBadSidewalk(tags.Get("surface"), tags.Get("smoothness"))
	e.FloodRisk = _IsYes(tags.Get("flood_prone"))
	return e
}
