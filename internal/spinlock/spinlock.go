// File: internal/spinlock/spinlock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Test-and-set spin lock for short critical sections. This is the
// goroutine-world analog of an interrupt-disabling spin lock: every shared
// structure a waker may touch is guarded by one of these, because wakes can
// arrive from timer drivers and backend pollers while the scheduler is
// draining the same queue. Never suspend while holding it.

package spinlock

import (
	"runtime"
	"sync/atomic"
)

// SpinLock is a TAS lock with passive backoff. The zero value is unlocked.
type SpinLock struct {
	state atomic.Uint32
}

const spinsBeforeYield = 64

// Lock acquires the lock, yielding to the Go scheduler periodically under
// contention.
func (l *SpinLock) Lock() {
	spins := 0
	for !l.state.CompareAndSwap(0, 1) {
		spins++
		if spins >= spinsBeforeYield {
			runtime.Gosched()
			spins = 0
		}
	}
}

// TryLock acquires the lock without spinning. Used by reentrancy guards
// such as the timer tick driver.
func (l *SpinLock) TryLock() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Unlock releases the lock.
func (l *SpinLock) Unlock() {
	l.state.Store(0)
}
