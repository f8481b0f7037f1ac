// File: core/timer/driver.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Periodic expiry driver. In a hardware deployment Tick runs from the timer
// interrupt; in tests and the facade runtime it runs from the idle path.
// Wakers are always invoked outside the queue lock, and a reentrancy guard
// keeps a nested tick (interrupt during expiry) from deadlocking.

package timer

import (
	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/internal/spinlock"
)

// Driver expires due registrations against a clock.
type Driver struct {
	queue    *Queue
	clock    api.Clock
	tickGate spinlock.SpinLock
}

// NewDriver binds a queue to a clock.
func NewDriver(q *Queue, clock api.Clock) *Driver {
	return &Driver{queue: q, clock: clock}
}

// Queue returns the driven queue.
func (d *Driver) Queue() *Queue { return d.queue }

// Clock returns the driving clock.
func (d *Driver) Clock() api.Clock { return d.clock }

// Tick expires and wakes every registration due at the current time.
// Returns the number of wakers invoked. If another tick is already in
// progress the call is skipped; the in-progress tick reaches the same
// entries.
func (d *Driver) Tick() int {
	if !d.tickGate.TryLock() {
		return 0
	}
	defer d.tickGate.Unlock()
	fired := 0
	now := d.clock.Now()
	for {
		w, ok := d.queue.ExpireOne(now)
		if !ok {
			return fired
		}
		w.Wake()
		fired++
	}
}

// Attach registers Tick with an interrupt registry under cause.
func (d *Driver) Attach(irq api.IRQRegistry, cause uint) {
	irq.Register(cause, func() { d.Tick() })
}
