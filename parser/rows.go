package parser

import (
	"strconv"
	"strings"

	"github.com/conneccity/access-routing/attr"
	"github.com/conneccity/access-routing/graph"
)

//*******************************************
// table rows
//*******************************************

type NodeRow struct {
	ID      string
	Lat     float64
	Lon     float64
	Attribs attr.NodeAttribs
}

type EdgeRow struct {
	From    string
	To      string
	Attribs attr.EdgeAttribs
}

// Parses "id,name,lat,lon,category".
//
// The name may contain commas, so category, lon and lat are split off from the
// right and the id ends at the first remaining comma. Returns a non empty
// reason if the row is malformed.
func ParseNodeRow(line string) (NodeRow, string) {
	rest, category, ok := _CutLast(line)
	if !ok {
		return NodeRow{}, "missing category"
	}
	rest, lon_str, ok := _CutLast(rest)
	if !ok {
		return NodeRow{}, "missing longitude"
	}
	rest, lat_str, ok := _CutLast(rest)
	if !ok {
		return NodeRow{}, "missing latitude"
	}
	id, name, ok := strings.Cut(rest, ",")
	if !ok {
		return NodeRow{}, "missing name"
	}
	if graph.NormalizeID(id) == "" {
		return NodeRow{}, "missing id"
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(lat_str), 64)
	if err != nil {
		return NodeRow{}, "invalid latitude"
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lon_str), 64)
	if err != nil {
		return NodeRow{}, "invalid longitude"
	}
	return NodeRow{
		ID:  id,
		Lat: lat,
		Lon: lon,
		Attribs: attr.NodeAttribs{
			Name:     _Unquote(strings.TrimSpace(name)),
			Category: strings.TrimSpace(category),
		},
	}, ""
}

// Parses "from,to,time,transfer,stairs,bad_sidewalk,flood_risk,mode".
//
// Flags are integers, every non zero value sets the flag. Unknown modes are
// read as walking, rows with more than 8 columns are malformed.
func ParseEdgeRow(line string) (EdgeRow, string) {
	fields := strings.Split(line, ",")
	if len(fields) != 8 {
		return EdgeRow{}, "expected 8 columns"
	}
	if graph.NormalizeID(fields[0]) == "" || graph.NormalizeID(fields[1]) == "" {
		return EdgeRow{}, "missing endpoint"
	}
	time, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return EdgeRow{}, "invalid time"
	}
	var flags [4]bool
	for i := 0; i < 4; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(fields[3+i]))
		if err != nil {
			return EdgeRow{}, "invalid flag"
		}
		flags[i] = v != 0
	}
	mode, err := attr.TravelModeFromString(strings.TrimSpace(fields[7]))
	if err != nil {
		mode = attr.WALK
	}
	return EdgeRow{
		From: fields[0],
		To:   fields[1],
		Attribs: attr.EdgeAttribs{
			Time:        time,
			Transfer:    flags[0],
			Stairs:      flags[1],
			BadSidewalk: flags[2],
			FloodRisk:   flags[3],
			Mode:        mode,
		},
	}, ""
}

func _CutLast(s string) (string, string, bool) {
	i := strings.LastIndexByte(s, ',')
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+1:], true
}

func _Unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return strings.ReplaceAll(s[1:len(s)-1], `""`, `"`)
	}
	return s
}
