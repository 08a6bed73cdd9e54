package util

import (
	"golang.org/x/exp/constraints"
)

//*******************************************
// indexed priority queue
//*******************************************

// Binary min-heap over dense item ids [0, size) supporting decrease-key.
//
// pos[item] is the slot of item in the heap or -1 if the item is not queued.
type IndexedPriorityQueue[P constraints.Ordered] struct {
	heap []int32
	prio []P
	pos  []int32
}

func NewIndexedPriorityQueue[P constraints.Ordered](size int) *IndexedPriorityQueue[P] {
	pos := make([]int32, size)
	for i := range pos {
		pos[i] = -1
	}
	return &IndexedPriorityQueue[P]{
		heap: make([]int32, 0, 64),
		prio: make([]P, size),
		pos:  pos,
	}
}

// Inserts item or, if it is already queued with a larger priority, moves it up.
// Returns false if the item was queued with a priority that is not larger.
func (self *IndexedPriorityQueue[P]) Enqueue(item int32, priority P) bool {
	slot := self.pos[item]
	if slot < 0 {
		self.heap = append(self.heap, item)
		self.prio[item] = priority
		self.pos[item] = int32(len(self.heap) - 1)
		self._Up(len(self.heap) - 1)
		return true
	}
	if priority >= self.prio[item] {
		return false
	}
	self.prio[item] = priority
	self._Up(int(slot))
	return true
}

// Removes and returns the item with the smallest priority.
func (self *IndexedPriorityQueue[P]) Dequeue() (int32, P, bool) {
	if len(self.heap) == 0 {
		var p P
		return -1, p, false
	}
	item := self.heap[0]
	last := len(self.heap) - 1
	self.heap[0] = self.heap[last]
	self.pos[self.heap[0]] = 0
	self.heap = self.heap[:last]
	self.pos[item] = -1
	if len(self.heap) > 0 {
		self._Down(0)
	}
	return item, self.prio[item], true
}

func (self *IndexedPriorityQueue[P]) Length() int {
	return len(self.heap)
}

func (self *IndexedPriorityQueue[P]) _Swap(i, j int) {
	self.heap[i], self.heap[j] = self.heap[j], self.heap[i]
	self.pos[self.heap[i]] = int32(i)
	self.pos[self.heap[j]] = int32(j)
}
func (self *IndexedPriorityQueue[P]) _Up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if self.prio[self.heap[i]] >= self.prio[self.heap[parent]] {
			break
		}
		self._Swap(i, parent)
		i = parent
	}
}
func (self *IndexedPriorityQueue[P]) _Down(i int) {
	n := len(self.heap)
	for {
		left := 2*i + 1
		right := left + 1
		smallest := i
		if left < n && self.prio[self.heap[left]] < self.prio[self.heap[smallest]] {
			smallest = left
		}
		if right < n && self.prio[self.heap[right]] < self.prio[self.heap[smallest]] {
			smallest = right
		}
		if smallest == i {
			return
		}
		self._Swap(i, smallest)
		i = smallest
	}
}
