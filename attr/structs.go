package attr

//*******************************************
// graph attributes
//*******************************************

type EdgeAttribs struct {
	// base traversal time in minutes, >= 0
	Time        float64
	Transfer    bool
	Stairs      bool
	BadSidewalk bool
	FloodRisk   bool
	Mode        TravelMode
}

func (self EdgeAttribs) HasHazard(hazard HazardType) bool {
	switch hazard {
	case TRANSFER:
		return self.Transfer
	case STAIRS:
		return self.Stairs
	case BAD_SIDEWALK:
		return self.BadSidewalk
	case FLOOD_RISK:
		return self.FloodRisk
	}
	return false
}

// Returns a copy with the given hazard flag cleared.
func (self EdgeAttribs) WithoutHazard(hazard HazardType) EdgeAttribs {
	switch hazard {
	case TRANSFER:
		self.Transfer = false
	case STAIRS:
		self.Stairs = false
	case BAD_SIDEWALK:
		self.BadSidewalk = false
	case FLOOD_RISK:
		self.FloodRisk = false
	}
	return self
}

type NodeAttribs struct {
	Name     string
	Category string
}
