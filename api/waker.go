// File: api/waker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Wake handle contract. A Waker is the capability a suspended future hands
// to whichever subsystem (timer queue, lock wait queue, reactor) will
// eventually resume it.

package api

// Waker requests that exactly one suspended task become eligible for
// re-polling. Implementations must be safe to invoke from any goroutine,
// including timer-interrupt driver goroutines, concurrently with the
// scheduler draining its ready queue. Invoking a Waker more than once
// between two polls of its task is permitted; the task is re-queued once.
type Waker interface {
	// Wake marks the associated task ready. Idempotent per poll cycle.
	Wake()

	// WillWake reports whether this waker and other resume the same task.
	// Wait queues use it to deregister a waker on retry-success paths.
	WillWake(other Waker) bool
}
