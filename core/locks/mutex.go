// File: core/locks/mutex.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Asynchronous mutual exclusion. Contended acquirers suspend instead of
// spinning, so the executor keeps making progress with other tasks. No
// fairness guarantee on the fast path: a concurrently arriving TryLock may
// barge ahead of a task that registered earlier.

package locks

import (
	"sync/atomic"

	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/internal/waitq"
)

// Mutex pairs a locked flag with a FIFO queue of suspended acquirers.
type Mutex struct {
	locked  atomic.Bool
	waiters *waitq.WaitQueue
}

// NewMutex creates an unlocked mutex.
func NewMutex() *Mutex {
	return &Mutex{waiters: waitq.New()}
}

// TryLock attempts the locked false->true transition. On success the
// returned guard releases the mutex.
func (m *Mutex) TryLock() (*MutexGuard, bool) {
	if m.locked.CompareAndSwap(false, true) {
		return &MutexGuard{m: m}, true
	}
	return nil, false
}

// Lock returns a future resolving to a guard once the mutex is acquired.
func (m *Mutex) Lock() api.Future[*MutexGuard] {
	return &lockFuture{m: m}
}

// Waiters reports the number of suspended acquirers.
func (m *Mutex) Waiters() int { return m.waiters.Len() }

type lockFuture struct {
	m *Mutex
}

// Poll follows register-then-retry: fast-path try, register the waker,
// then retry once to close the race against an unlock that happened
// between the try and the registration. A retry success removes the
// just-added registration so no spurious wake targets this acquirer.
func (f *lockFuture) Poll(w api.Waker) (*MutexGuard, bool) {
	if g, ok := f.m.TryLock(); ok {
		return g, true
	}
	f.m.waiters.Push(w)
	if g, ok := f.m.TryLock(); ok {
		f.m.waiters.Remove(w)
		return g, true
	}
	return nil, false
}

// MutexGuard is the RAII surface of a held mutex.
type MutexGuard struct {
	m        *Mutex
	released atomic.Bool
}

// Unlock clears the locked flag and wakes the oldest waiter, if any.
// Calling Unlock twice is a no-op.
func (g *MutexGuard) Unlock() {
	if !g.released.CompareAndSwap(false, true) {
		return
	}
	g.m.locked.Store(false)
	if w := g.m.waiters.PopOne(); w != nil {
		w.Wake()
	}
}
