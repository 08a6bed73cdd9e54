package events

import (
	"sync/atomic"
)

var _ IObserver = &Counters{}

// Counts events, safe for concurrent use.
type Counters struct {
	DuplicateIDs     atomic.Int64
	IndexGrows       atomic.Int64
	IndexFull        atomic.Int64
	SkippedNodeRows  atomic.Int64
	SkippedEdgeRows  atomic.Int64
	MissingFrom      atomic.Int64
	MissingTo        atomic.Int64
	SkippedEdges     atomic.Int64
	Searches         atomic.Int64
	CandidateLimited atomic.Int64
}

func (self *Counters) OnDuplicateID(id string, first int32) {
	self.DuplicateIDs.Add(1)
}
func (self *Counters) OnIndexGrow(capacity int) {
	self.IndexGrows.Add(1)
}
func (self *Counters) OnIndexFull(id string) {
	self.IndexFull.Add(1)
}
func (self *Counters) OnRowSkipped(table Table, line int, reason string) {
	switch table {
	case NODE_TABLE:
		self.SkippedNodeRows.Add(1)
	case EDGE_TABLE:
		self.SkippedEdgeRows.Add(1)
	}
}
func (self *Counters) OnEdgeSkipped(from, to string, from_missing, to_missing bool) {
	self.SkippedEdges.Add(1)
	if from_missing {
		self.MissingFrom.Add(1)
	}
	if to_missing {
		self.MissingTo.Add(1)
	}
}
func (self *Counters) OnSearch(event SearchEvent) {
	self.Searches.Add(1)
}
func (self *Counters) OnCandidateLimit(limit int) {
	self.CandidateLimited.Add(1)
}
