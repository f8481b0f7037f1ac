// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"sync"

	"github.com/momentics/hioload-async/api"
)

// Backend is a purely software reactor backend: submissions are held until
// the test completes them explicitly, so completion timing is fully
// controlled.
type Backend struct {
	mu        sync.Mutex
	submitted []api.RequestID
	ops       map[api.RequestID]api.Operation
	done      []api.CompletionEntry
}

// NewBackend creates an empty backend.
func NewBackend() *Backend {
	return &Backend{ops: make(map[api.RequestID]api.Operation)}
}

// Submit implements api.Backend; the operation is parked.
func (b *Backend) Submit(id api.RequestID, op api.Operation) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.submitted = append(b.submitted, id)
	b.ops[id] = op
}

// Poll implements api.Backend; it drains completions queued by Complete.
func (b *Backend) Poll() []api.CompletionEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.done
	b.done = nil
	return out
}

// Complete resolves a previously submitted id with c on the next Poll.
// Returns false when the id was never submitted.
func (b *Backend) Complete(id api.RequestID, c api.Completion) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.ops[id]; !ok {
		return false
	}
	delete(b.ops, id)
	b.done = append(b.done, api.CompletionEntry{ID: id, C: c})
	return true
}

// Submitted returns every id submitted so far, in order.
func (b *Backend) Submitted() []api.RequestID {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]api.RequestID, len(b.submitted))
	copy(out, b.submitted)
	return out
}

// Operation returns the parked operation for id.
func (b *Backend) Operation(id api.RequestID) (api.Operation, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	op, ok := b.ops[id]
	return op, ok
}

// PendingCount returns how many submissions await completion.
func (b *Backend) PendingCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.ops)
}
