// File: reactor/future.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reactor

import (
	"sync/atomic"

	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/internal/spinlock"
)

const (
	slotPending uint32 = iota
	slotComplete
	slotAbandoned
	slotConsumed
)

// slot is the single-resolution completion cell shared between a future
// and the reactor's pending table; identical in shape to the oneshot inner.
type slot struct {
	state atomic.Uint32
	mu    spinlock.SpinLock
	c     api.Completion
	waker api.Waker
}

func (s *slot) resolve(c api.Completion) bool {
	s.mu.Lock()
	if !s.state.CompareAndSwap(slotPending, slotComplete) {
		s.mu.Unlock()
		return false
	}
	s.c = c
	w := s.waker
	s.waker = nil
	s.mu.Unlock()
	if w != nil {
		w.Wake()
	}
	return true
}

func (s *slot) abandon() {
	s.mu.Lock()
	s.state.CompareAndSwap(slotPending, slotAbandoned)
	s.waker = nil
	s.mu.Unlock()
}

func (s *slot) abandoned() bool {
	return s.state.Load() == slotAbandoned
}

// IoFuture resolves to the completion of one submitted operation.
type IoFuture struct {
	id   api.RequestID
	slot *slot
}

// ID returns the request identifier this future waits on.
func (f *IoFuture) ID() api.RequestID { return f.id }

// Cancel abandons the operation: the future will never resolve and the
// reactor garbage-collects the pending entry on its next poll. Cancelling
// a completed future is a no-op.
func (f *IoFuture) Cancel() { f.slot.abandon() }

// Poll implements api.Future. A failed operation resolves with the
// completion's structured error; a cancelled one with api.ErrTaskAbandoned.
func (f *IoFuture) Poll(w api.Waker) (api.Result[api.Completion], bool) {
	s := f.slot
	switch s.state.Load() {
	case slotComplete:
		s.mu.Lock()
		c := s.c
		s.state.Store(slotConsumed)
		s.mu.Unlock()
		if c.Err != nil {
			return api.Result[api.Completion]{Err: c.Err}, true
		}
		return api.Result[api.Completion]{Value: c}, true
	case slotAbandoned:
		return api.Result[api.Completion]{Err: api.ErrTaskAbandoned}, true
	case slotConsumed:
		return api.Result[api.Completion]{Err: api.ErrConsumed}, true
	}
	s.mu.Lock()
	if s.state.Load() == slotPending {
		s.waker = w
		s.mu.Unlock()
		return api.Result[api.Completion]{}, false
	}
	s.mu.Unlock()
	return f.Poll(w)
}

// errorFuture builds an already-failed IoFuture without touching a backend.
func errorFuture(id api.RequestID, err *api.Error) *IoFuture {
	s := &slot{}
	s.state.Store(slotComplete)
	s.c = api.Completion{Err: err}
	return &IoFuture{id: id, slot: s}
}
