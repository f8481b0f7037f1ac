// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Operation submission/completion broker. Request identifiers are assigned
// monotonically per reactor; each identifier yields at most one completion.

package reactor

import (
	"sync/atomic"

	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/internal/spinlock"
)

// Reactor decouples async I/O call sites from a pluggable backend.
type Reactor struct {
	backend api.Backend
	nextID  atomic.Uint64

	mu      spinlock.SpinLock
	pending map[api.RequestID]*slot
}

// New creates a reactor over the injected backend.
func New(backend api.Backend) *Reactor {
	return &Reactor{
		backend: backend,
		pending: make(map[api.RequestID]*slot),
	}
}

// SubmitOperation assigns a fresh request identifier, records the
// completion slot, and forwards the operation to the backend. The returned
// future resolves when the backend reports the matching completion.
func (r *Reactor) SubmitOperation(op api.Operation) *IoFuture {
	id := api.RequestID(r.nextID.Add(1))
	s := &slot{}
	f := &IoFuture{id: id, slot: s}

	r.mu.Lock()
	r.pending[id] = s
	r.mu.Unlock()

	r.backend.Submit(id, op)
	return f
}

// Poll drains every currently available completion from the backend,
// resolves the matching live slots, then sweeps entries whose future was
// cancelled so the pending table cannot grow without bound.
func (r *Reactor) Poll() {
	completions := r.backend.Poll()

	r.mu.Lock()
	for _, entry := range completions {
		s, ok := r.pending[entry.ID]
		if !ok {
			// Unknown or already-resolved identifier; at-most-one
			// completion per id makes this a late duplicate to ignore.
			continue
		}
		delete(r.pending, entry.ID)
		if s.abandoned() {
			continue
		}
		// Resolve outside the table lock; the slot has its own.
		r.mu.Unlock()
		s.resolve(entry.C)
		r.mu.Lock()
	}
	for id, s := range r.pending {
		if s.abandoned() {
			delete(r.pending, id)
		}
	}
	r.mu.Unlock()
}

// PendingOperations returns the current pending-table size.
func (r *Reactor) PendingOperations() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
