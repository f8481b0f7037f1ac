// File: core/iox/conn.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Async wrapping of the synchronous socket surface. The protocol state
// machine underneath stays external; AsyncConn only translates calls into
// reactor operations and completions back into typed results.

package iox

import (
	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/reactor"
)

// AsyncConn lifts an api.Conn onto a reactor.
type AsyncConn struct {
	conn api.Conn
	r    *reactor.Reactor
}

// NewAsyncConn wraps conn so its operations run through r.
func NewAsyncConn(r *reactor.Reactor, conn api.Conn) *AsyncConn {
	return &AsyncConn{conn: conn, r: r}
}

// Raw returns the wrapped connection.
func (c *AsyncConn) Raw() api.Conn { return c.conn }

// Read implements Reader.
func (c *AsyncConn) Read(p []byte) api.Future[api.Result[int]] {
	return c.count(api.Operation{Kind: api.OpRead, Conn: c.conn, Buf: p})
}

// Write implements Writer.
func (c *AsyncConn) Write(p []byte) api.Future[api.Result[int]] {
	return c.count(api.Operation{Kind: api.OpWrite, Conn: c.conn, Buf: p})
}

// Send transmits p on a connected socket.
func (c *AsyncConn) Send(p []byte) api.Future[api.Result[int]] {
	return c.count(api.Operation{Kind: api.OpSend, Conn: c.conn, Buf: p})
}

// Recv receives into p from a connected socket.
func (c *AsyncConn) Recv(p []byte) api.Future[api.Result[int]] {
	return c.count(api.Operation{Kind: api.OpRecv, Conn: c.conn, Buf: p})
}

// SendTo transmits p toward addr.
func (c *AsyncConn) SendTo(p []byte, addr api.SockAddr) api.Future[api.Result[int]] {
	return c.count(api.Operation{Kind: api.OpSendTo, Conn: c.conn, Buf: p, Addr: addr})
}

// RecvFrom receives into p and resolves with the source address.
func (c *AsyncConn) RecvFrom(p []byte) api.Future[api.Result[RecvFromOutcome]] {
	fut := c.r.SubmitOperation(api.Operation{Kind: api.OpRecvFrom, Conn: c.conn, Buf: p})
	return api.PollFunc[api.Result[RecvFromOutcome]](func(w api.Waker) (api.Result[RecvFromOutcome], bool) {
		res, ready := fut.Poll(w)
		if !ready {
			return api.Result[RecvFromOutcome]{}, false
		}
		if res.Err != nil {
			return api.Result[RecvFromOutcome]{Err: res.Err}, true
		}
		return api.Result[RecvFromOutcome]{
			Value: RecvFromOutcome{N: res.Value.N, Addr: res.Value.Addr},
		}, true
	})
}

// Connect establishes the connection toward addr.
func (c *AsyncConn) Connect(addr api.SockAddr) api.Future[api.Result[api.Unit]] {
	fut := c.r.SubmitOperation(api.Operation{Kind: api.OpConnect, Conn: c.conn, Addr: addr})
	return api.PollFunc[api.Result[api.Unit]](func(w api.Waker) (api.Result[api.Unit], bool) {
		res, ready := fut.Poll(w)
		if !ready {
			return api.Result[api.Unit]{}, false
		}
		return api.Result[api.Unit]{Err: res.Err}, true
	})
}

// Accept resolves with the next inbound connection, wrapped on the same
// reactor.
func (c *AsyncConn) Accept() api.Future[api.Result[*AsyncConn]] {
	fut := c.r.SubmitOperation(api.Operation{Kind: api.OpAccept, Conn: c.conn})
	return api.PollFunc[api.Result[*AsyncConn]](func(w api.Waker) (api.Result[*AsyncConn], bool) {
		res, ready := fut.Poll(w)
		if !ready {
			return api.Result[*AsyncConn]{}, false
		}
		if res.Err != nil {
			return api.Result[*AsyncConn]{Err: res.Err}, true
		}
		return api.Result[*AsyncConn]{Value: NewAsyncConn(c.r, res.Value.Conn)}, true
	})
}

// RecvFromOutcome pairs received bytes with their source.
type RecvFromOutcome struct {
	N    int
	Addr api.SockAddr
}

func (c *AsyncConn) count(op api.Operation) api.Future[api.Result[int]] {
	fut := c.r.SubmitOperation(op)
	return api.PollFunc[api.Result[int]](func(w api.Waker) (api.Result[int], bool) {
		res, ready := fut.Poll(w)
		if !ready {
			return api.Result[int]{}, false
		}
		if res.Err != nil {
			return api.Result[int]{Err: res.Err}, true
		}
		return api.Result[int]{Value: res.Value.N}, true
	})
}
