// File: core/locks/barrier.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Binary barrier: a capacity-1 semaphore whose permit may be taken in one
// task and released in another, unlike a mutex guard. "Locked" is zero
// permits, "unlocked" is one.

package locks

import "github.com/momentics/hioload-async/api"

// Barrier gates progress behind a single permit.
type Barrier struct {
	sem *Semaphore
}

// NewBarrier creates a barrier; locked selects the initial state.
func NewBarrier(locked bool) *Barrier {
	initial := 1
	if locked {
		initial = 0
	}
	return &Barrier{sem: newSemaphore(initial, 1)}
}

// Acquire returns a future resolving to the barrier guard.
func (b *Barrier) Acquire() api.Future[*BarrierGuard] {
	inner := b.sem.Acquire()
	return api.PollFunc[*BarrierGuard](func(w api.Waker) (*BarrierGuard, bool) {
		p, ready := inner.Poll(w)
		if !ready {
			return nil, false
		}
		return &BarrierGuard{permit: p}, true
	})
}

// TryAcquire takes the barrier immediately if it is released.
func (b *Barrier) TryAcquire() (*BarrierGuard, bool) {
	p, ok := b.sem.TryAcquire()
	if !ok {
		return nil, false
	}
	return &BarrierGuard{permit: p}, true
}

// IsReleased reports whether the permit is currently available.
func (b *Barrier) IsReleased() bool {
	return b.sem.AvailablePermits() > 0
}

// Release makes the permit available without a guard, unlocking a barrier
// constructed locked. A release past capacity is a logic violation caught
// by the semaphore's debug assertion.
func (b *Barrier) Release() {
	(&Permit{s: b.sem}).Release()
}

// BarrierGuard releases the barrier when released; Release is equivalent
// to dropping the guard early.
type BarrierGuard struct {
	permit *Permit
}

// Release reopens the barrier and wakes one waiter.
func (g *BarrierGuard) Release() {
	g.permit.Release()
}
