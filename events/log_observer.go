package events

import (
	"sync/atomic"

	"golang.org/x/exp/slog"
)

// number of duplicate identifiers that are logged individually
const MAX_LOGGED_DUPLICATES = 5

var _ IObserver = &LogObserver{}

// Writes events as slog records.
type LogObserver struct {
	logger     *slog.Logger
	duplicates atomic.Int64
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (self *LogObserver) OnDuplicateID(id string, first int32) {
	count := self.duplicates.Add(1)
	if count <= MAX_LOGGED_DUPLICATES {
		self.logger.Warn("duplicate node id ignored", "id", id, "kept", first)
	} else if count == MAX_LOGGED_DUPLICATES+1 {
		self.logger.Warn("further duplicate node ids are not logged")
	}
}
func (self *LogObserver) OnIndexGrow(capacity int) {
	self.logger.Debug("id index grown", "capacity", capacity)
}
func (self *LogObserver) OnIndexFull(id string) {
	self.logger.Error("id index full, node not indexed", "id", id)
}
func (self *LogObserver) OnRowSkipped(table Table, line int, reason string) {
	self.logger.Debug("row skipped", "table", table.String(), "line", line, "reason", reason)
}
func (self *LogObserver) OnEdgeSkipped(from, to string, from_missing, to_missing bool) {
	self.logger.Debug("edge skipped", "from", from, "to", to, "from_missing", from_missing, "to_missing", to_missing)
}
func (self *LogObserver) OnSearch(event SearchEvent) {
	self.logger.Debug("search finished", "kind", event.Kind.String(), "visited", event.Visited, "routes", event.Routes, "duration", event.Duration)
}
func (self *LogObserver) OnCandidateLimit(limit int) {
	self.logger.Warn("candidate pool limit reached", "limit", limit)
}
