// File: core/sched/waker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Wake handle implementations. A task's waker carries only the task cell
// reference; cloning it (Go copies of the struct, shared cell) is free and
// any copy may be invoked from any goroutine, including timer and backend
// driver goroutines standing in for interrupt context.

package sched

import "github.com/momentics/hioload-async/api"

// taskWaker wakes one task through its stable cell.
type taskWaker struct {
	task *Task
}

// Wake marks the task ready; duplicate invocations between polls coalesce.
func (w *taskWaker) Wake() { w.task.wake() }

// WillWake reports task-identity equality.
func (w *taskWaker) WillWake(other api.Waker) bool {
	o, ok := other.(*taskWaker)
	return ok && o.task == w.task
}

// SimpleWaker invokes a callback when woken. Used to bridge wake delivery
// into foreign notification schemes (thread unpark, test instrumentation).
type SimpleWaker struct {
	fn func()
}

// NewSimpleWaker creates a waker that calls fn on every Wake.
func NewSimpleWaker(fn func()) *SimpleWaker { return &SimpleWaker{fn: fn} }

// Wake invokes the callback.
func (w *SimpleWaker) Wake() { w.fn() }

// WillWake reports pointer identity; two distinct SimpleWakers never alias.
func (w *SimpleWaker) WillWake(other api.Waker) bool {
	o, ok := other.(*SimpleWaker)
	return ok && o == w
}

type dummyWaker struct{}

func (dummyWaker) Wake() {}
func (dummyWaker) WillWake(other api.Waker) bool {
	_, ok := other.(dummyWaker)
	return ok
}

// DummyWaker returns a no-op waker. BlockOn polls with it because the
// surrounding loop re-polls on every pass; registrations made with it are
// harmless late wakes on nobody.
func DummyWaker() api.Waker { return dummyWaker{} }

// PollOnce polls fut a single time with a no-op waker.
func PollOnce[T any](fut api.Future[T]) (T, bool) {
	return fut.Poll(DummyWaker())
}
