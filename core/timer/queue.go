// File: core/timer/queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Deadline-ordered queue of pending wake registrations. Bounded: when the
// heap is at capacity an insertion is dropped and counted, never panicked
// over. Callers that need guaranteed delivery under saturation provide
// their own back-pressure.

package timer

import (
	"container/heap"
	"sync/atomic"

	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/internal/spinlock"
)

// DefaultCapacity bounds the timer queue unless configured otherwise.
const DefaultCapacity = 32

type entry struct {
	deadline int64
	seq      uint64
	w        api.Waker
}

type entryHeap []entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].deadline != h[j].deadline {
		return h[i].deadline < h[j].deadline
	}
	return h[i].seq < h[j].seq
}
func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x any) { *h = append(*h, x.(entry)) }
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Queue is a bounded min-heap of (deadline, waker) registrations.
type Queue struct {
	mu      spinlock.SpinLock
	entries entryHeap
	cap     int
	seq     uint64
	dropped atomic.Uint64
}

// NewQueue creates a queue holding at most capacity registrations.
// capacity <= 0 selects DefaultCapacity.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{
		entries: make(entryHeap, 0, capacity),
		cap:     capacity,
	}
}

// Set registers w to be woken at deadline. When the queue is full the
// registration is dropped: the caller's deadline simply never fires.
// Returns false on a drop.
func (q *Queue) Set(deadline int64, w api.Waker) bool {
	q.mu.Lock()
	if len(q.entries) >= q.cap {
		q.mu.Unlock()
		q.dropped.Add(1)
		return false
	}
	q.seq++
	heap.Push(&q.entries, entry{deadline: deadline, seq: q.seq, w: w})
	q.mu.Unlock()
	return true
}

// ExpireOne removes and returns the nearest registration whose deadline is
// at or before now. Each registration is returned exactly once.
func (q *Queue) ExpireOne(now int64) (api.Waker, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) == 0 || q.entries[0].deadline > now {
		return nil, false
	}
	e := heap.Pop(&q.entries).(entry)
	return e.w, true
}

// NextDeadline returns the earliest pending deadline.
func (q *Queue) NextDeadline() (int64, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) == 0 {
		return 0, false
	}
	return q.entries[0].deadline, true
}

// Len returns the number of pending registrations.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Dropped returns how many registrations were rejected at capacity.
func (q *Queue) Dropped() uint64 { return q.dropped.Load() }
