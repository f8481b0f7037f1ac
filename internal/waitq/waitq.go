// File: internal/waitq/waitq.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// FIFO queue of wake handles shared by every async lock primitive and the
// oneshot channel. Backed by a ring-buffer queue under a spin lock so that
// Push and PopOne stay safe against wakes arriving from interrupt-context
// goroutines.

package waitq

import (
	"github.com/eapache/queue"

	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/internal/spinlock"
)

// WaitQueue is a FIFO of parked wakers. The zero value is not usable; call New.
type WaitQueue struct {
	mu spinlock.SpinLock
	q  *queue.Queue
}

// New creates an empty wait queue.
func New() *WaitQueue {
	return &WaitQueue{q: queue.New()}
}

// Push appends w to the back of the queue.
func (wq *WaitQueue) Push(w api.Waker) {
	wq.mu.Lock()
	wq.q.Add(w)
	wq.mu.Unlock()
}

// PopOne removes and returns the oldest waker, or nil if the queue is empty.
// The caller invokes the waker outside the queue lock.
func (wq *WaitQueue) PopOne() api.Waker {
	wq.mu.Lock()
	defer wq.mu.Unlock()
	if wq.q.Length() == 0 {
		return nil
	}
	return wq.q.Remove().(api.Waker)
}

// DrainAll removes and returns every parked waker, oldest first.
func (wq *WaitQueue) DrainAll() []api.Waker {
	wq.mu.Lock()
	defer wq.mu.Unlock()
	n := wq.q.Length()
	if n == 0 {
		return nil
	}
	out := make([]api.Waker, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, wq.q.Remove().(api.Waker))
	}
	return out
}

// Remove deletes the first parked waker that would wake the same task as w.
// Linear in queue length; acquire paths call it only on the narrow
// registered-then-immediately-acquired race.
func (wq *WaitQueue) Remove(w api.Waker) bool {
	wq.mu.Lock()
	defer wq.mu.Unlock()
	n := wq.q.Length()
	removed := false
	for i := 0; i < n; i++ {
		parked := wq.q.Remove().(api.Waker)
		if !removed && parked.WillWake(w) {
			removed = true
			continue
		}
		wq.q.Add(parked)
	}
	return removed
}

// Len returns the number of parked wakers.
func (wq *WaitQueue) Len() int {
	wq.mu.Lock()
	defer wq.mu.Unlock()
	return wq.q.Length()
}
