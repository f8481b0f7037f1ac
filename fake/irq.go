// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import "sync"

// IRQ is a software interrupt registry. Trigger dispatches handlers
// synchronously on the calling goroutine, which stands in for interrupt
// context in tests.
type IRQ struct {
	mu       sync.Mutex
	handlers map[uint][]func()
}

// NewIRQ creates an empty registry.
func NewIRQ() *IRQ {
	return &IRQ{handlers: make(map[uint][]func())}
}

// Register implements api.IRQRegistry.
func (r *IRQ) Register(cause uint, fn func()) {
	r.mu.Lock()
	r.handlers[cause] = append(r.handlers[cause], fn)
	r.mu.Unlock()
}

// Trigger implements api.IRQRegistry.
func (r *IRQ) Trigger(cause uint) {
	r.mu.Lock()
	fns := make([]func(), len(r.handlers[cause]))
	copy(fns, r.handlers[cause])
	r.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
