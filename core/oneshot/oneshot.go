// File: core/oneshot/oneshot.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Single-write/single-read result handoff. One Sender, one Receiver, one
// shared inner cell: a value slot written at most once, a state flag, and a
// single last-registered wake handle slot where the latest registration
// wins. Join handles and reactor completion slots are built on this shape.

package oneshot

import (
	"sync/atomic"

	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/internal/assert"
	"github.com/momentics/hioload-async/internal/spinlock"
)

const (
	statePending uint32 = iota
	stateComplete
	stateAbandoned
	stateConsumed
)

type inner[T any] struct {
	state atomic.Uint32
	mu    spinlock.SpinLock // guards value and waker
	value T
	waker api.Waker
}

// Sender is the producing half. Dropping a task that owns a Sender must
// translate into Close so the Receiver observes abandonment.
type Sender[T any] struct {
	inner *inner[T]
}

// Receiver is the consuming half; it is also a Future resolving to
// api.Result[T].
type Receiver[T any] struct {
	inner *inner[T]
}

// New creates a connected sender/receiver pair.
func New[T any]() (*Sender[T], *Receiver[T]) {
	cell := &inner[T]{}
	return &Sender[T]{inner: cell}, &Receiver[T]{inner: cell}
}

// Send stores the value and wakes the registered receiver. A second send,
// or a send after Close, fails with api.ErrAlreadySent and leaves the
// channel untouched; the caller keeps the rejected value.
func (s *Sender[T]) Send(v T) error {
	cell := s.inner
	cell.mu.Lock()
	if !cell.state.CompareAndSwap(statePending, stateComplete) {
		cell.mu.Unlock()
		return api.ErrAlreadySent
	}
	cell.value = v
	w := cell.waker
	cell.waker = nil
	cell.mu.Unlock()
	if w != nil {
		w.Wake()
	}
	return nil
}

// Close marks the channel abandoned when no value was sent. Safe to call
// after a successful Send and safe to call twice.
func (s *Sender[T]) Close() {
	cell := s.inner
	cell.mu.Lock()
	if !cell.state.CompareAndSwap(statePending, stateAbandoned) {
		cell.mu.Unlock()
		return
	}
	w := cell.waker
	cell.waker = nil
	cell.mu.Unlock()
	if w != nil {
		w.Wake()
	}
}

// Poll implements api.Future. Once the channel resolves, the value is taken
// exactly once; abandonment resolves to api.ErrTaskAbandoned. While pending,
// w replaces any previously registered waker.
func (r *Receiver[T]) Poll(w api.Waker) (api.Result[T], bool) {
	cell := r.inner
	switch cell.state.Load() {
	case stateComplete:
		cell.mu.Lock()
		v := cell.value
		var zero T
		cell.value = zero
		cell.state.Store(stateConsumed)
		cell.mu.Unlock()
		return api.Result[T]{Value: v}, true
	case stateAbandoned:
		return api.Result[T]{Err: api.ErrTaskAbandoned}, true
	case stateConsumed:
		assert.That(false, "oneshot polled after value consumed")
		return api.Result[T]{Err: api.ErrConsumed}, true
	}
	cell.mu.Lock()
	// Re-check under the lock: Send may have resolved the channel between
	// the state load and the waker registration.
	if cell.state.Load() == statePending {
		cell.waker = w
		cell.mu.Unlock()
		return api.Result[T]{}, false
	}
	cell.mu.Unlock()
	return r.Poll(w)
}

// TryRecv takes the value without registering a waker. It returns
// api.ErrStillPending while the channel is unresolved.
func (r *Receiver[T]) TryRecv() (T, error) {
	cell := r.inner
	var zero T
	switch cell.state.Load() {
	case stateComplete:
		cell.mu.Lock()
		v := cell.value
		cell.value = zero
		cell.state.Store(stateConsumed)
		cell.mu.Unlock()
		return v, nil
	case stateAbandoned:
		return zero, api.ErrTaskAbandoned
	case stateConsumed:
		return zero, api.ErrConsumed
	}
	return zero, api.ErrStillPending
}
