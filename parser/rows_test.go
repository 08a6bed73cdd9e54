package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneccity/access-routing/attr"
)

func TestParseNodeRow(t *testing.T) {
	row, reason := ParseNodeRow(`18856,"R. Delsuc Alves De Magalhães, 194",-23.5601,-46.6402,bus`)
	require.Empty(t, reason)
	assert.Equal(t, "18856", row.ID)
	assert.Equal(t, "R. Delsuc Alves De Magalhães, 194", row.Attribs.Name)
	assert.Equal(t, "bus", row.Attribs.Category)
	assert.Equal(t, -23.5601, row.Lat)
	assert.Equal(t, -46.6402, row.Lon)

	row, reason = ParseNodeRow("A,Sé,-23.55,-46.63,metro")
	require.Empty(t, reason)
	assert.Equal(t, "Sé", row.Attribs.Name)
}

func TestParseNodeRowMalformed(t *testing.T) {
	cases := map[string]string{
		"no commas":       "garbage",
		"no name":         "-23.5,-46.6,bus",
		"bad latitude":    "A,name,north,-46.6,bus",
		"bad longitude":   "A,name,-23.5,,bus",
		"empty id":        " ,name,-23.5,-46.6,bus",
		"only three cols": "A,-23.5,bus",
	}
	for name, line := range cases {
		_, reason := ParseNodeRow(line)
		assert.NotEmpty(t, reason, name)
	}
}

func TestParseEdgeRow(t *testing.T) {
	row, reason := ParseEdgeRow("A,B,4.5,1,0,1,0,onibus\r")
	require.Empty(t, reason)
	assert.Equal(t, "A", row.From)
	assert.Equal(t, "B", row.To)
	assert.Equal(t, attr.EdgeAttribs{Time: 4.5, Transfer: true, BadSidewalk: true, Mode: attr.BUS}, row.Attribs)

	row, reason = ParseEdgeRow("A,B,1,0,2,0,1,hovercraft")
	require.Empty(t, reason)
	assert.True(t, row.Attribs.Stairs)
	assert.True(t, row.Attribs.FloodRisk)
	assert.Equal(t, attr.WALK, row.Attribs.Mode)

	row, reason = ParseEdgeRow("A,B,1,0,0,0,0,trem")
	require.Empty(t, reason)
	assert.Equal(t, attr.TRAIN, row.Attribs.Mode)
}

func TestParseEdgeRowMalformed(t *testing.T) {
	cases := map[string]string{
		"too few columns": "A,B,1,0,0,0,metro",
		"extra column":    "A,B,1,0,0,0,0,metro,extra",
		"bad time":        "A,B,fast,0,0,0,0,metro",
		"bad flag":        "A,B,1,yes,0,0,0,metro",
		"empty from":      ",B,1,0,0,0,0,metro",
	}
	for name, line := range cases {
		_, reason := ParseEdgeRow(line)
		assert.NotEmpty(t, reason, name)
	}
}
