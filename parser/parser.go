package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"

	"github.com/conneccity/access-routing/attr"
	"github.com/conneccity/access-routing/events"
	"github.com/conneccity/access-routing/graph"
	. "github.com/conneccity/access-routing/util"
)

type OSMFormat byte

const (
	OSM_PBF OSMFormat = 0
	OSM_XML OSMFormat = 1
)

// Guesses the format from the file extension, ".osm" and ".xml" are read as xml.
func FormatFromFile(file string) OSMFormat {
	if strings.HasSuffix(file, ".osm") || strings.HasSuffix(file, ".xml") {
		return OSM_XML
	}
	return OSM_PBF
}

// Builds a pedestrian graph from an OpenStreetMap extract.
//
// Ways are split at junctions, every section becomes an edge in both directions
// with its walking time as base time.
func ParseOSM(ctx context.Context, file string, decoder IOSMDecoder, observer events.IObserver) (*graph.Graph, LoadStats, error) {
	reader, err := os.Open(file)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("%w %s: %w", ErrOpenOSM, file, err)
	}
	defer reader.Close()
	return ParseOSMFromReader(ctx, reader, FormatFromFile(file), decoder, observer)
}

// Like ParseOSM, the reader is scanned three times.
func ParseOSMFromReader(ctx context.Context, reader io.ReadSeeker, format OSMFormat, decoder IOSMDecoder, observer events.IObserver) (*graph.Graph, LoadStats, error) {
	counters := &events.Counters{}
	obs := events.Multi{counters, events.OrNoop(observer)}

	osm_nodes := NewDict[int64, TempNode](10000)
	if err := _Scan(ctx, reader, format, false, func(object osm.Object) {
		_InitWayHandler(object, decoder, osm_nodes)
	}); err != nil {
		return nil, LoadStats{}, err
	}

	g := graph.NewGraph(osm_nodes.Length()/4, obs)
	if err := _Scan(ctx, reader, format, true, func(object osm.Object) {
		_NodeHandler(object, decoder, osm_nodes, g)
	}); err != nil {
		return nil, LoadStats{}, err
	}

	edges := NewList[OSMEdge](10000)
	if err := _Scan(ctx, reader, format, false, func(object osm.Object) {
		_WayHandler(object, decoder, osm_nodes, &edges)
	}); err != nil {
		return nil, LoadStats{}, err
	}
	for _, e := range edges {
		e.Attr.Time = _WalkingTime(e.Length)
		g.AddEdge(e.NodeA, e.NodeB, e.Attr)
		g.AddEdge(e.NodeB, e.NodeA, e.Attr)
	}
	return g, _StatsFromCounters(g, counters), nil
}

func _Scan(ctx context.Context, reader io.ReadSeeker, format OSMFormat, nodes bool, handler func(osm.Object)) error {
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return err
	}
	var scanner osm.Scanner
	switch format {
	case OSM_XML:
		scanner = osmxml.New(ctx, reader)
	default:
		pbf := osmpbf.New(ctx, reader, runtime.GOMAXPROCS(-1))
		pbf.SkipRelations = true
		pbf.SkipNodes = !nodes
		pbf.SkipWays = nodes
		scanner = pbf
	}
	defer scanner.Close()

	for scanner.Scan() {
		handler(scanner.Object())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanning osm data: %w", err)
	}
	return nil
}

//*******************************************
// osm handler methods
//*******************************************

func _InitWayHandler(object osm.Object, decoder IOSMDecoder, osm_nodes Dict[int64, TempNode]) {
	way, ok := object.(*osm.Way)
	if !ok {
		return
	}
	tags := Dict[string, string](way.TagMap())
	if !decoder.IsValidHighway(tags) {
		return
	}
	nodes := way.Nodes.NodeIDs()
	l := len(nodes)
	if l < 2 {
		return
	}
	for i := 0; i < l; i++ {
		ndref := nodes[i].FeatureID().Ref()
		node, ok := osm_nodes[ndref]
		if !ok {
			node = TempNode{Index: -1}
		}
		node.Count += 1
		osm_nodes[ndref] = node
	}
	// endpoints always become graph nodes
	for _, ndref := range []int64{nodes[0].FeatureID().Ref(), nodes[l-1].FeatureID().Ref()} {
		node := osm_nodes[ndref]
		node.Count += 1
		osm_nodes[ndref] = node
	}
}

func _NodeHandler(object osm.Object, decoder IOSMDecoder, osm_nodes Dict[int64, TempNode], g *graph.Graph) {
	node, ok := object.(*osm.Node)
	if !ok {
		return
	}
	id := node.FeatureID().Ref()
	on, ok := osm_nodes[id]
	if !ok {
		return
	}
	on.Point = orb.Point{node.Lon, node.Lat}
	if on.Count > 1 {
		on.Index = g.AddNode(strconv.FormatInt(id, 10), node.Lat, node.Lon)
		g.SetNodeAttribs(on.Index, decoder.DecodeNode(Dict[string, string](node.TagMap())))
	}
	osm_nodes[id] = on
}

func _WayHandler(object osm.Object, decoder IOSMDecoder, osm_nodes Dict[int64, TempNode], edges *List[OSMEdge]) {
	way, ok := object.(*osm.Way)
	if !ok {
		return
	}
	tags := Dict[string, string](way.TagMap())
	if !decoder.IsValidHighway(tags) {
		return
	}
	nodes := way.Nodes.NodeIDs()
	if len(nodes) < 2 {
		return
	}
	edge_attr := decoder.DecodeEdge(tags)

	start := osm_nodes[nodes[0].FeatureID().Ref()]
	points := NewList[orb.Point](len(nodes))
	points.Add(start.Point)
	for i := 1; i < len(nodes); i++ {
		curr := osm_nodes[nodes[i].FeatureID().Ref()]
		points.Add(curr.Point)
		if curr.Index < 0 {
			continue
		}
		// nodes missing from the extract were never indexed
		if start.Index >= 0 && start.Index != curr.Index {
			edges.Add(OSMEdge{
				NodeA:  start.Index,
				NodeB:  curr.Index,
				Length: _LineLength(points),
				Attr:   edge_attr,
			})
		}
		start = curr
		points = NewList[orb.Point](len(nodes) - i)
		points.Add(curr.Point)
	}
}

//*******************************************
// osm decoder
//*******************************************

type IOSMDecoder interface {
	IsValidHighway(tags Dict[string, string]) bool
	DecodeNode(tags Dict[string, string]) attr.NodeAttribs
	DecodeEdge(tags Dict[string, string]) attr.EdgeAttribs
}
