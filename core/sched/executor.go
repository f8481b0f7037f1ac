// File: core/sched/executor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cooperative FIFO executor. Owns a ready queue of task cells, polls one
// task per step, and never preempts a poll in progress. Multiple executors
// may coexist (one process-wide default plus per-CPU instances); a task is
// polled only by the executor it was spawned on.

package sched

import (
	"runtime"
	"sync/atomic"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/core/oneshot"
	"github.com/momentics/hioload-async/internal/spinlock"
)

// Config tunes an executor instance.
type Config struct {
	// OnIdle, when set, runs each time BlockOn finds no ready work before
	// yielding the hosting goroutine. The facade runtime hooks timer ticks
	// and reactor polls here.
	OnIdle func()

	// Yield deschedules the hosting goroutine when BlockOn has nothing to
	// do. Defaults to runtime.Gosched.
	Yield func()
}

// Executor runs spawned tasks to completion, one poll at a time.
type Executor struct {
	cfg    Config
	mu     spinlock.SpinLock
	ready  *queue.Queue // of *Task
	nextID atomic.Uint64
	closed atomic.Bool

	// live tracks tasks that have been spawned and not yet finished, so
	// Close can abandon them.
	liveMu spinlock.SpinLock
	live   map[uint64]*Task
}

// New creates an executor.
func New(cfg Config) *Executor {
	if cfg.Yield == nil {
		cfg.Yield = runtime.Gosched
	}
	return &Executor{
		cfg:   cfg,
		ready: queue.New(),
		live:  make(map[uint64]*Task),
	}
}

// Spawn enqueues fut as a new task on e and returns a handle resolving to
// the task's output. The handle is itself a future; dropping it is fine,
// the task still runs.
func Spawn[T any](e *Executor, fut api.Future[T]) *Handle[T] {
	tx, rx := oneshot.New[T]()
	wrapped := api.PollFunc[api.Unit](func(w api.Waker) (api.Unit, bool) {
		v, ready := fut.Poll(w)
		if !ready {
			return api.Unit{}, false
		}
		_ = tx.Send(v)
		return api.Unit{}, true
	})

	t := &Task{
		id:     e.nextID.Add(1),
		exec:   e,
		fut:    wrapped,
		dropFn: tx.Close,
	}
	if e.closed.Load() {
		// Executor already shut down: the task is abandoned immediately.
		t.release()
		return &Handle[T]{rx: rx}
	}
	e.track(t)
	t.woken.Store(true)
	e.enqueue(t)
	return &Handle[T]{rx: rx}
}

// Step pops at most one ready task and polls it once. A completed task is
// discarded; a pending one re-enters the queue only through its waker.
// Returns whether the ready queue is non-empty afterward.
func (e *Executor) Step() bool {
	t := e.dequeue()
	if t == nil {
		return false
	}
	// Clear the coalescing flag before polling so wakes delivered during
	// the poll re-queue the task for another pass.
	t.woken.Store(false)
	if t.done.Load() {
		return e.Pending() > 0
	}
	if t.poll() {
		e.untrack(t)
		t.release()
	}
	return e.Pending() > 0
}

// Run steps until the ready queue drains. Only appropriate when all
// outstanding work is self-contained; tasks parked on external wakes keep
// Run from meaning "everything finished".
func (e *Executor) Run() {
	for e.Step() {
	}
}

// BlockOn polls fut on the calling goroutine, interleaving executor steps
// so spawned work progresses, and yields cooperatively when nothing is
// ready. fut is local to the caller, never spawned.
func BlockOn[T any](e *Executor, fut api.Future[T]) T {
	w := DummyWaker()
	for {
		if v, ready := fut.Poll(w); ready {
			return v
		}
		if e.Step() {
			continue
		}
		if e.cfg.OnIdle != nil {
			e.cfg.OnIdle()
		}
		e.cfg.Yield()
	}
}

// Pending returns the current ready-queue length.
func (e *Executor) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready.Length()
}

// LiveTasks returns the number of spawned, unfinished tasks.
func (e *Executor) LiveTasks() int {
	e.liveMu.Lock()
	defer e.liveMu.Unlock()
	return len(e.live)
}

// Close abandons every unfinished task; their handles resolve to
// api.ErrTaskAbandoned. Further spawns are abandoned on arrival.
func (e *Executor) Close() {
	if !e.closed.CompareAndSwap(false, true) {
		return
	}
	e.liveMu.Lock()
	tasks := make([]*Task, 0, len(e.live))
	for _, t := range e.live {
		tasks = append(tasks, t)
	}
	clear(e.live)
	e.liveMu.Unlock()
	for _, t := range tasks {
		t.release()
	}
	e.mu.Lock()
	for e.ready.Length() > 0 {
		e.ready.Remove()
	}
	e.mu.Unlock()
}

// enqueue appends the task cell to the ready queue. Safe to call from any
// goroutine; wakers invoke it concurrently with Step draining.
func (e *Executor) enqueue(t *Task) {
	if e.closed.Load() {
		return
	}
	e.mu.Lock()
	e.ready.Add(t)
	e.mu.Unlock()
}

func (e *Executor) dequeue() *Task {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ready.Length() == 0 {
		return nil
	}
	return e.ready.Remove().(*Task)
}

func (e *Executor) track(t *Task) {
	e.liveMu.Lock()
	e.live[t.id] = t
	e.liveMu.Unlock()
}

func (e *Executor) untrack(t *Task) {
	e.liveMu.Lock()
	delete(e.live, t.id)
	e.liveMu.Unlock()
}

// Process-wide default executor, initialized lazily behind an atomic
// one-shot flag rather than a mutable static.
var (
	defaultInit atomic.Uint32
	defaultExec atomic.Pointer[Executor]
)

// Default returns the process-wide executor, creating it on first use.
func Default() *Executor {
	if e := defaultExec.Load(); e != nil {
		return e
	}
	if defaultInit.CompareAndSwap(0, 1) {
		defaultExec.Store(New(Config{}))
	}
	for {
		if e := defaultExec.Load(); e != nil {
			return e
		}
		runtime.Gosched()
	}
}
