// File: core/locks/semaphore.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Asynchronous counting semaphore. The permit counter is bounded to
// [0, max]; acquisition never underflows and release past max is a logic
// violation caught by debug assertions.

package locks

import (
	"sync/atomic"

	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/internal/assert"
	"github.com/momentics/hioload-async/internal/waitq"
)

// Semaphore restricts a resource to a fixed number of concurrent holders.
type Semaphore struct {
	permits atomic.Int64
	max     int64
	waiters *waitq.WaitQueue
}

// NewSemaphore creates a semaphore with the given permit count.
func NewSemaphore(permits int) *Semaphore {
	return newSemaphore(permits, permits)
}

func newSemaphore(initial, max int) *Semaphore {
	s := &Semaphore{max: int64(max), waiters: waitq.New()}
	s.permits.Store(int64(initial))
	return s
}

// AvailablePermits returns the current free permit count.
func (s *Semaphore) AvailablePermits() int {
	n := s.permits.Load()
	if n < 0 {
		n = 0
	}
	return int(n)
}

// MaxPermits returns the configured capacity.
func (s *Semaphore) MaxPermits() int { return int(s.max) }

// TryAcquire takes one permit if any is free.
func (s *Semaphore) TryAcquire() (*Permit, bool) {
	for {
		n := s.permits.Load()
		if n <= 0 {
			return nil, false
		}
		if s.permits.CompareAndSwap(n, n-1) {
			return &Permit{s: s}, true
		}
	}
}

// Acquire returns a future resolving to a permit.
func (s *Semaphore) Acquire() api.Future[*Permit] {
	return &acquireFuture{s: s}
}

type acquireFuture struct {
	s *Semaphore
}

func (f *acquireFuture) Poll(w api.Waker) (*Permit, bool) {
	if p, ok := f.s.TryAcquire(); ok {
		return p, true
	}
	f.s.waiters.Push(w)
	if p, ok := f.s.TryAcquire(); ok {
		f.s.waiters.Remove(w)
		return p, true
	}
	return nil, false
}

// Permit is one held unit of the semaphore.
type Permit struct {
	s        *Semaphore
	released atomic.Bool
}

// Release returns the permit and wakes one waiter. Releasing twice is a
// no-op; releasing past the semaphore's capacity is a logic violation.
func (p *Permit) Release() {
	if !p.released.CompareAndSwap(false, true) {
		return
	}
	n := p.s.permits.Add(1)
	assert.That(n <= p.s.max, "semaphore permit over-release")
	if w := p.s.waiters.PopOne(); w != nil {
		w.Wake()
	}
}
