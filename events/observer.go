package events

import (
	"time"
)

//*******************************************
// observer interface
//*******************************************

// Hook called by graph building, loading and routing code.
//
// Implementations must be safe for concurrent use, searches may run in parallel.
type IObserver interface {
	// A node identifier was inserted a second time, first is the index that was kept.
	OnDuplicateID(id string, first int32)
	// The identifier index grew to the given capacity.
	OnIndexGrow(capacity int)
	// The identifier index reached its growth bound, id could not be indexed.
	OnIndexFull(id string)
	// A malformed row was skipped while loading.
	OnRowSkipped(table Table, line int, reason string)
	// An edge was skipped because one of its endpoints did not resolve.
	OnEdgeSkipped(from string, to string, from_missing bool, to_missing bool)
	// A search finished.
	OnSearch(event SearchEvent)
	// The candidate pool of an alternative route search reached its bound.
	OnCandidateLimit(limit int)
}

type Table byte

const (
	NODE_TABLE Table = 0
	EDGE_TABLE Table = 1
)

func (self Table) String() string {
	switch self {
	case NODE_TABLE:
		return "nodes"
	case EDGE_TABLE:
		return "edges"
	}
	return ""
}

type SearchKind byte

const (
	SHORTEST_PATH SearchKind = 0
	ALTERNATIVES  SearchKind = 1
)

func (self SearchKind) String() string {
	switch self {
	case SHORTEST_PATH:
		return "dijkstra"
	case ALTERNATIVES:
		return "yen"
	}
	return ""
}

type SearchEvent struct {
	Kind SearchKind
	// settled nodes (dijkstra) or spur searches (yen)
	Visited  int
	Routes   int
	Duration time.Duration
}

//*******************************************
// noop observer
//*******************************************

var _ IObserver = NoopObserver{}

type NoopObserver struct{}

func (self NoopObserver) OnDuplicateID(id string, first int32) {}
func (self NoopObserver) OnIndexGrow(capacity int) {}
func (self NoopObserver) OnIndexFull(id string) {}
func (self NoopObserver) OnRowSkipped(table Table, line int, reason string) {}
func (self NoopObserver) OnEdgeSkipped(from, to string, from_missing, to_missing bool) {}
func (self NoopObserver) OnSearch(event SearchEvent) {}
func (self NoopObserver) OnCandidateLimit(limit int) {}

// Returns observer, or a NoopObserver if observer is nil.
func OrNoop(observer IObserver) IObserver {
	if observer == nil {
		return NoopObserver{}
	}
	return observer
}

//*******************************************
// multi observer
//*******************************************

var _ IObserver = Multi{}

// Fans every event out to all observers.
type Multi []IObserver

func (self Multi) OnDuplicateID(id string, first int32) {
	for _, o := range self {
		o.OnDuplicateID(id, first)
	}
}
func (self Multi) OnIndexGrow(capacity int) {
	for _, o := range self {
		o.OnIndexGrow(capacity)
	}
}
func (self Multi) OnIndexFull(id string) {
	for _, o := range self {
		o.OnIndexFull(id)
	}
}
func (self Multi) OnRowSkipped(table Table, line int, reason string) {
	for _, o := range self {
		o.OnRowSkipped(table, line, reason)
	}
}
func (self Multi) OnEdgeSkipped(from, to string, from_missing, to_missing bool) {
	for _, o := range self {
		o.OnEdgeSkipped(from, to, from_missing, to_missing)
	}
}
func (self Multi) OnSearch(event SearchEvent) {
	for _, o := range self {
		o.OnSearch(event)
	}
}
func (self Multi) OnCandidateLimit(limit int) {
	for _, o := range self {
		o.OnCandidateLimit(limit)
	}
}
