// File: core/locks/rwlock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Asynchronous reader-writer lock. A single counter encodes the whole
// state: 0 free, writerSentinel write-held, anything else a live reader
// count. Writers are woken in preference to readers on write release, which
// prevents writer starvation under a steady reader stream.

package locks

import (
	"sync/atomic"

	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/internal/assert"
	"github.com/momentics/hioload-async/internal/waitq"
)

const writerSentinel = ^uint64(0)

// RwLock allows many readers or one writer.
type RwLock struct {
	state        atomic.Uint64
	readWaiters  *waitq.WaitQueue
	writeWaiters *waitq.WaitQueue
}

// NewRwLock creates a free lock.
func NewRwLock() *RwLock {
	return &RwLock{
		readWaiters:  waitq.New(),
		writeWaiters: waitq.New(),
	}
}

// TryRead acquires shared access unless the lock is write-held.
func (l *RwLock) TryRead() (*ReadGuard, bool) {
	for {
		state := l.state.Load()
		if state == writerSentinel {
			return nil, false
		}
		assert.That(state+1 != writerSentinel, "reader count overflow")
		if l.state.CompareAndSwap(state, state+1) {
			return &ReadGuard{l: l}, true
		}
	}
}

// TryWrite acquires exclusive access iff the lock is free.
func (l *RwLock) TryWrite() (*WriteGuard, bool) {
	if l.state.CompareAndSwap(0, writerSentinel) {
		return &WriteGuard{l: l}, true
	}
	return nil, false
}

// Read returns a future resolving to a shared guard.
func (l *RwLock) Read() api.Future[*ReadGuard] {
	return &readFuture{l: l}
}

// Write returns a future resolving to an exclusive guard.
func (l *RwLock) Write() api.Future[*WriteGuard] {
	return &writeFuture{l: l}
}

type readFuture struct {
	l *RwLock
}

func (f *readFuture) Poll(w api.Waker) (*ReadGuard, bool) {
	if g, ok := f.l.TryRead(); ok {
		return g, true
	}
	f.l.readWaiters.Push(w)
	if g, ok := f.l.TryRead(); ok {
		f.l.readWaiters.Remove(w)
		return g, true
	}
	return nil, false
}

type writeFuture struct {
	l *RwLock
}

func (f *writeFuture) Poll(w api.Waker) (*WriteGuard, bool) {
	if g, ok := f.l.TryWrite(); ok {
		return g, true
	}
	f.l.writeWaiters.Push(w)
	if g, ok := f.l.TryWrite(); ok {
		f.l.writeWaiters.Remove(w)
		return g, true
	}
	return nil, false
}

// ReadGuard is one reader's hold on the lock.
type ReadGuard struct {
	l        *RwLock
	released atomic.Bool
}

// Unlock drops the reader count; the last reader out wakes one waiting
// writer.
func (g *ReadGuard) Unlock() {
	if !g.released.CompareAndSwap(false, true) {
		return
	}
	prev := g.l.state.Add(^uint64(0)) + 1
	assert.That(prev != 0 && prev != writerSentinel, "read unlock of non-read-held lock")
	if prev == 1 {
		if w := g.l.writeWaiters.PopOne(); w != nil {
			w.Wake()
		}
	}
}

// WriteGuard is the writer's exclusive hold.
type WriteGuard struct {
	l        *RwLock
	released atomic.Bool
}

// Unlock frees the lock. A waiting writer, if any, is woken alone;
// otherwise every waiting reader is woken to race for shared access.
func (g *WriteGuard) Unlock() {
	if !g.released.CompareAndSwap(false, true) {
		return
	}
	old := g.l.state.Swap(0)
	assert.That(old == writerSentinel, "write unlock of non-write-held lock")
	if w := g.l.writeWaiters.PopOne(); w != nil {
		w.Wake()
		return
	}
	for _, w := range g.l.readWaiters.DrainAll() {
		w.Wake()
	}
}
