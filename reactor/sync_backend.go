// File: reactor/sync_backend.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Synchronous device backend: performs each operation immediately against
// the target connection's blocking primitives and queues the result for the
// next reactor poll. The hardware-interrupt-driven equivalent satisfies the
// same api.Backend contract.

package reactor

import (
	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/internal/spinlock"
)

// SyncBackend executes operations inline on Submit.
type SyncBackend struct {
	mu     spinlock.SpinLock
	done   []api.CompletionEntry
	closed bool
}

// NewSyncBackend creates an empty synchronous backend.
func NewSyncBackend() *SyncBackend {
	return &SyncBackend{}
}

// Submit performs op against its connection and queues the completion.
func (b *SyncBackend) Submit(id api.RequestID, op api.Operation) {
	b.enqueue(id, perform(op))
}

// Poll returns everything completed since the previous poll.
func (b *SyncBackend) Poll() []api.CompletionEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.done
	b.done = nil
	return out
}

// Close rejects all further submissions.
func (b *SyncBackend) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}

func (b *SyncBackend) enqueue(id api.RequestID, c api.Completion) {
	b.mu.Lock()
	if b.closed {
		c = api.Completion{Kind: c.Kind, Err: api.WrapError(api.ErrBackendClosed)}
	}
	b.done = append(b.done, api.CompletionEntry{ID: id, C: c})
	b.mu.Unlock()
}

// perform runs one operation against the connection's synchronous surface.
func perform(op api.Operation) api.Completion {
	if op.Conn == nil {
		return api.Completion{
			Kind: op.Kind,
			Err:  api.NewError(api.ErrCodeInvalidInput, "operation without connection"),
		}
	}
	c := api.Completion{Kind: op.Kind}
	var err error
	switch op.Kind {
	case api.OpRead:
		c.N, err = op.Conn.Read(op.Buf)
	case api.OpWrite:
		c.N, err = op.Conn.Write(op.Buf)
	case api.OpConnect:
		err = op.Conn.Connect(op.Addr)
	case api.OpAccept:
		c.Conn, err = op.Conn.Accept()
	case api.OpSend:
		c.N, err = op.Conn.Send(op.Buf)
	case api.OpRecv:
		c.N, err = op.Conn.Recv(op.Buf)
	case api.OpSendTo:
		c.N, err = op.Conn.SendTo(op.Buf, op.Addr)
	case api.OpRecvFrom:
		c.N, c.Addr, err = op.Conn.RecvFrom(op.Buf)
	default:
		err = api.NewError(api.ErrCodeInvalidInput, "unknown operation kind")
	}
	if err != nil {
		c.Err = api.WrapError(err)
	}
	return c
}
