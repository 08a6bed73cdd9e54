package parser

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/conneccity/access-routing/events"
	"github.com/conneccity/access-routing/graph"
	. "github.com/conneccity/access-routing/util"
)

var (
	ErrOpenNodes = errors.New("cannot open node table")
	ErrOpenEdges = errors.New("cannot open edge table")
	ErrOpenOSM   = errors.New("cannot open osm file")
)

// Counters collected while building a graph.
type LoadStats struct {
	Nodes           int `json:"nodes"`
	Edges           int `json:"edges"`
	SkippedNodeRows int `json:"skipped_node_rows"`
	SkippedEdgeRows int `json:"skipped_edge_rows"`
	DuplicateIDs    int `json:"duplicate_ids"`
	IndexFull       int `json:"index_full"`
	// edges whose endpoints did not resolve
	SkippedEdges int `json:"skipped_edges"`
	MissingFrom  int `json:"missing_from"`
	MissingTo    int `json:"missing_to"`
}

func _StatsFromCounters(g *graph.Graph, counters *events.Counters) LoadStats {
	return LoadStats{
		Nodes:           g.NodeCount(),
		Edges:           g.EdgeCount(),
		SkippedNodeRows: int(counters.SkippedNodeRows.Load()),
		SkippedEdgeRows: int(counters.SkippedEdgeRows.Load()),
		DuplicateIDs:    int(counters.DuplicateIDs.Load()),
		IndexFull:       int(counters.IndexFull.Load()),
		SkippedEdges:    int(counters.SkippedEdges.Load()),
		MissingFrom:     int(counters.MissingFrom.Load()),
		MissingTo:       int(counters.MissingTo.Load()),
	}
}

//*******************************************
// csv tables
//*******************************************

// Loads a graph from a node and an edge table.
//
// Malformed rows and edges with unknown endpoints are skipped and counted. Failing
// to open one of the tables is the only error, no graph is returned in that case.
func LoadGraph(nodes_file, edges_file string, observer events.IObserver) (*graph.Graph, LoadStats, error) {
	nodes, err := os.Open(nodes_file)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("%w %s: %w", ErrOpenNodes, nodes_file, err)
	}
	defer nodes.Close()
	edges, err := os.Open(edges_file)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("%w %s: %w", ErrOpenEdges, edges_file, err)
	}
	defer edges.Close()

	return LoadGraphFromReaders(nodes, edges, observer)
}

// Like LoadGraph, the first line of both readers is a header.
func LoadGraphFromReaders(nodes, edges io.Reader, observer events.IObserver) (*graph.Graph, LoadStats, error) {
	counters := &events.Counters{}
	obs := events.Multi{counters, events.OrNoop(observer)}

	rows, err := _ReadNodeRows(nodes, obs)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("reading node table: %w", err)
	}
	g := graph.NewGraph(rows.Length(), obs)
	for _, row := range rows {
		node := g.AddNode(row.ID, row.Lat, row.Lon)
		g.SetNodeAttribs(node, row.Attribs)
	}

	if err := _ReadEdgeRows(edges, g, obs); err != nil {
		return nil, LoadStats{}, fmt.Errorf("reading edge table: %w", err)
	}
	return g, _StatsFromCounters(g, counters), nil
}

func _ReadNodeRows(reader io.Reader, observer events.IObserver) (List[NodeRow], error) {
	rows := NewList[NodeRow](1024)
	var err error
	for line_no, line := range ReadLines(reader, &err) {
		if line_no == 1 || (len(line.Text) == 0 && !line.TooLong) {
			continue
		}
		if line.TooLong {
			observer.OnRowSkipped(events.NODE_TABLE, line_no, "line too long")
			continue
		}
		row, reason := ParseNodeRow(line.Text)
		if reason != "" {
			observer.OnRowSkipped(events.NODE_TABLE, line_no, reason)
			continue
		}
		rows.Add(row)
	}
	return rows, err
}

func _ReadEdgeRows(reader io.Reader, g *graph.Graph, observer events.IObserver) error {
	var err error
	for line_no, line := range ReadLines(reader, &err) {
		if line_no == 1 || (len(line.Text) == 0 && !line.TooLong) {
			continue
		}
		if line.TooLong {
			observer.OnRowSkipped(events.EDGE_TABLE, line_no, "line too long")
			continue
		}
		row, reason := ParseEdgeRow(line.Text)
		if reason != "" {
			observer.OnRowSkipped(events.EDGE_TABLE, line_no, reason)
			continue
		}
		from, from_ok := g.Resolve(row.From)
		to, to_ok := g.Resolve(row.To)
		if !from_ok || !to_ok {
			observer.OnEdgeSkipped(graph.NormalizeID(row.From), graph.NormalizeID(row.To), !from_ok, !to_ok)
			continue
		}
		g.AddEdge(from, to, row.Attribs)
	}
	return err
}
