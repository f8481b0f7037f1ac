// File: core/sched/task.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Task: a spawned computation behind a stable, independently owned cell.
// Wakers reference the cell, never the computation's storage, so a wake
// arriving from another goroutine can only push the task's identity onto
// the ready queue; the scheduler alone ever touches the computation, and it
// locks the cell for exactly the duration of one poll.

package sched

import (
	"sync/atomic"

	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/internal/spinlock"
)

// Task owns one unit-output computation plus its scheduling state.
//
// Lifecycle: created by Spawn, enqueued immediately, popped by Step, polled
// with the coalescing flag cleared, then either discarded (complete) or left
// for its waker to re-enqueue. At most one poll runs at a time; the poll
// lock enforces it even across executor misuse.
type Task struct {
	id   uint64
	exec *Executor

	// woken coalesces wake requests: it is true exactly while the task sits
	// in the ready queue or a wake arrived mid-poll. N wakes between two
	// polls collapse into one requeue.
	woken atomic.Bool
	done  atomic.Bool

	pollMu spinlock.SpinLock
	fut    api.Future[api.Unit]

	// dropFn releases the task's result channel; it runs exactly once, on
	// completion or on abandonment, so join handles always resolve.
	dropFn   func()
	dropOnce atomic.Bool
}

// ID returns the task's executor-unique identity.
func (t *Task) ID() uint64 { return t.id }

// wake implements the wake protocol: first wake since the last poll flags
// and enqueues, every further one is a no-op.
func (t *Task) wake() {
	if t.done.Load() {
		return
	}
	if t.woken.CompareAndSwap(false, true) {
		t.exec.enqueue(t)
	}
}

// poll advances the computation once. Returns true when it completed.
func (t *Task) poll() bool {
	t.pollMu.Lock()
	defer t.pollMu.Unlock()
	if t.fut == nil {
		return true
	}
	_, ready := t.fut.Poll(&taskWaker{task: t})
	if ready {
		t.fut = nil
	}
	return ready
}

// release runs the drop hook once and severs the computation.
func (t *Task) release() {
	t.done.Store(true)
	if t.dropOnce.CompareAndSwap(false, true) && t.dropFn != nil {
		t.dropFn()
	}
	t.pollMu.Lock()
	t.fut = nil
	t.pollMu.Unlock()
}
