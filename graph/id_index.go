package graph

import (
	"math/bits"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// maximum length of a normalized identifier in bytes
const MAX_ID_LENGTH = 31

// Normalizes an external identifier.
//
// Only printable ascii bytes (32..126) are kept, surrounding spaces are trimmed
// and the result is truncated to MAX_ID_LENGTH bytes.
func NormalizeID(id string) string {
	var builder strings.Builder
	builder.Grow(len(id))
	for i := 0; i < len(id); i++ {
		c := id[i]
		if c >= 32 && c <= 126 {
			builder.WriteByte(c)
		}
	}
	norm := strings.TrimSpace(builder.String())
	if len(norm) > MAX_ID_LENGTH {
		norm = strings.TrimSpace(norm[:MAX_ID_LENGTH])
	}
	return norm
}

//*******************************************
// identifier index
//*******************************************

type InsertResult byte

const (
	INSERTED  InsertResult = 0
	DUPLICATE InsertResult = 1
	// growth bound reached, the entry was not inserted
	FULL InsertResult = 2
)

func (self InsertResult) String() string {
	switch self {
	case INSERTED:
		return "inserted"
	case DUPLICATE:
		return "duplicate"
	case FULL:
		return "full"
	}
	return ""
}

const (
	LOAD_FACTOR  = 0.7
	MIN_CAPACITY = 16
)

// growth steps allowed on top of the capacity needed for the expected entries
const EXTRA_GROW_STEPS = 16

// Open addressing hash index from normalized identifier to node index.
//
// Uses linear probing on a power of two table. When inserting would exceed
// LOAD_FACTOR the table is doubled and every entry reinserted before the new
// entry is added. The number of growth steps is bounded.
type IDIndex struct {
	keys   []string
	values []int32
	used   []bool
	size   int

	grows     int
	max_grows int
}

// Creates an index sized for expected entries.
func NewIDIndex(expected int) *IDIndex {
	return NewIDIndexWithLimit(expected, EXTRA_GROW_STEPS)
}

// Creates an index sized for expected entries that grows at most max_grows times.
func NewIDIndexWithLimit(expected int, max_grows int) *IDIndex {
	capacity := _CapacityFor(expected)
	return &IDIndex{
		keys:      make([]string, capacity),
		values:    make([]int32, capacity),
		used:      make([]bool, capacity),
		max_grows: max_grows,
	}
}

func _CapacityFor(expected int) int {
	needed := int(float64(expected)/LOAD_FACTOR) + 1
	if needed <= MIN_CAPACITY {
		return MIN_CAPACITY
	}
	return 1 << bits.Len(uint(needed-1))
}

// Inserts the normalized id.
//
// For DUPLICATE the index of the first insertion is returned and kept.
func (self *IDIndex) Insert(id string, index int32) (int32, InsertResult) {
	key := NormalizeID(id)
	if slot, ok := self._Find(key); ok {
		return self.values[slot], DUPLICATE
	}
	for float64(self.size+1) > LOAD_FACTOR*float64(len(self.keys)) {
		if self.grows >= self.max_grows {
			return -1, FULL
		}
		self._Grow()
	}
	self._Put(key, index)
	self.size += 1
	return index, INSERTED
}

// Returns the index stored for id.
func (self *IDIndex) Lookup(id string) (int32, bool) {
	slot, ok := self._Find(NormalizeID(id))
	if !ok {
		return -1, false
	}
	return self.values[slot], true
}

func (self *IDIndex) Size() int {
	return self.size
}
func (self *IDIndex) Capacity() int {
	return len(self.keys)
}

// Number of growth steps performed so far.
func (self *IDIndex) Grows() int {
	return self.grows
}

func (self *IDIndex) _Slot(key string) int {
	return int(xxhash.Sum64String(key) & uint64(len(self.keys)-1))
}
func (self *IDIndex) _Find(key string) (int, bool) {
	mask := len(self.keys) - 1
	slot := self._Slot(key)
	for i := 0; i < len(self.keys); i++ {
		if !self.used[slot] {
			return -1, false
		}
		if self.keys[slot] == key {
			return slot, true
		}
		slot = (slot + 1) & mask
	}
	return -1, false
}

// key must not be contained and a free slot must exist
func (self *IDIndex) _Put(key string, value int32) {
	mask := len(self.keys) - 1
	slot := self._Slot(key)
	for self.used[slot] {
		slot = (slot + 1) & mask
	}
	self.keys[slot] = key
	self.values[slot] = value
	self.used[slot] = true
}

func (self *IDIndex) _Grow() {
	old_keys := self.keys
	old_values := self.values
	old_used := self.used

	capacity := 2 * len(old_keys)
	self.keys = make([]string, capacity)
	self.values = make([]int32, capacity)
	self.used = make([]bool, capacity)
	for i := range old_keys {
		if old_used[i] {
			self._Put(old_keys[i], old_values[i])
		}
	}
	self.grows += 1
}
