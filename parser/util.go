package parser

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	. "github.com/conneccity/access-routing/util"
)

//*******************************************
// utility methods
//*******************************************

// walking speed in meters per minute
const WALKING_SPEED = 80.0

var walkable_types = Dict[string, bool]{"footway": true, "pedestrian": true, "path": true, "steps": true,
	"living_street": true, "residential": true, "service": true, "unclassified": true, "track": true,
	"tertiary": true, "tertiary_link": true, "secondary": true, "secondary_link": true,
	"primary": true, "primary_link": true, "corridor": true, "cycleway": true, "road": true}

var bad_surfaces = Dict[string, bool]{"unpaved": true, "gravel": true, "fine_gravel": true, "dirt": true,
	"earth": true, "ground": true, "mud": true, "sand": true, "grass": true, "cobblestone": true,
	"sett": true, "unhewn_cobblestone": true, "pebblestone": true, "rocky": true, "stone": true,
	"woodchips": true, "grass_paver": true}

var bad_smoothness = Dict[string, bool]{"bad": true, "very_bad": true, "horrible": true,
	"very_horrible": true, "impassable": true}

func _IsWalkable(tags Dict[string, string]) bool {
	highway := tags.Get("highway")
	if !walkable_types.ContainsKey(highway) {
		return false
	}
	foot := tags.Get("foot")
	if foot == "no" || foot == "private" {
		return false
	}
	access := tags.Get("access")
	if (access == "no" || access == "private") && foot != "yes" && foot != "designated" {
		return false
	}
	return true
}

func _IsBadSidewalk(surface, smoothness string) bool {
	return bad_surfaces.ContainsKey(surface) || bad_smoothness.ContainsKey(smoothness)
}

func _IsYes(value string) bool {
	return value == "yes" || value == "true" || value == "1"
}

// Geodesic length of a polyline in meters.
func _LineLength(points List[orb.Point]) float64 {
	length := 0.0
	for i := 1; i < points.Length(); i++ {
		length += geo.Distance(points[i-1], points[i])
	}
	return length
}

// Walking time in minutes.
func _WalkingTime(length float64) float64 {
	return length / WALKING_SPEED
}
